package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{45.4642, 9.1900, 45.4781, 9.2257},
		{0, 0, 10, 10},
		{-33.8688, 151.2093, 51.5074, -0.1278},
	}

	for _, p := range pairs {
		ab := Distance(p[0], p[1], p[2], p[3])
		ba := Distance(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestDistance_SamePointIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Distance(45.4642, 9.1900, 45.4642, 9.1900))
}

func TestDistance_KnownValue(t *testing.T) {
	// Milan Duomo to Milan Central Station, roughly 3 km.
	d := Distance(45.4642, 9.1900, 45.4861, 9.2050)
	assert.InDelta(t, 2.7, d, 0.3)
}
