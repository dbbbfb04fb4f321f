package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_AggregationCutoff(t *testing.T) {
	os.Setenv("AGGREGATION_CUTOFF", "2025-03-10")
	defer os.Unsetenv("AGGREGATION_CUTOFF")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), cfg.Aggregation.Cutoff)
}

func TestLoad_AggregationCutoffInvalid(t *testing.T) {
	os.Setenv("AGGREGATION_CUTOFF", "not-a-date")
	defer os.Unsetenv("AGGREGATION_CUTOFF")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("AGGREGATION_CUTOFF")
	os.Unsetenv("DB_NAME")
	os.Unsetenv("SIMULATOR_INTERVAL")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "time_to_care", cfg.Database.Database)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), cfg.Aggregation.Cutoff)
	assert.Equal(t, time.Minute, cfg.Simulator.Interval)
}
