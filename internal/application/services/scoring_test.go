package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreHospital(t *testing.T) {
	assert.Equal(t, 6.0, scoreHospital(2, 20, 1))
	assert.Equal(t, 5.5, scoreHospital(5, 5, 0))
}

func TestScoreHospital_MonotoneInEachTerm(t *testing.T) {
	base := scoreHospital(3, 30, 2)

	assert.Greater(t, scoreHospital(4, 30, 2), base)
	assert.Greater(t, scoreHospital(3, 40, 2), base)
	assert.Greater(t, scoreHospital(3, 30, 3), base)
}

func TestGroupCost_WeighsDistanceHeavier(t *testing.T) {
	assert.Equal(t, 3.0, groupCost(2, 0, 0))
	assert.Equal(t, 6.0, groupCost(2, 10, 1))

	base := groupCost(3, 30, 2)
	assert.Greater(t, groupCost(4, 30, 2), base)
	assert.Greater(t, groupCost(3, 40, 2), base)
	assert.Greater(t, groupCost(3, 30, 3), base)
}
