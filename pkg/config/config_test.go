package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Capacity.FleetSize)
	assert.Equal(t, 30, cfg.Capacity.PeriodDays)
	assert.Equal(t, 8, cfg.Capacity.HoursPerDay)
	assert.Equal(t, 10, cfg.Sheets.MaxHeaderScan)
	assert.Equal(t, 4.0, cfg.Rules.HalfDayMaxHours)
	assert.NotEmpty(t, cfg.Sheets.BookingHints)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yamlContent := `
capacity:
  fleet_size: 12
  period_days: 31
  hours_per_day: 9
sheets:
  booking_hints:
    - booking
rules:
  half_day_max_hours: 5
store:
  db_path: out/test.db
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	t.Setenv("FLEET_SIZE", "20")

	cfg, err := Load(path)
	require.NoError(t, err)

	// Env overrides YAML; the rest comes from the file.
	assert.Equal(t, 20, cfg.Capacity.FleetSize)
	assert.Equal(t, 31, cfg.Capacity.PeriodDays)
	assert.Equal(t, 9, cfg.Capacity.HoursPerDay)
	assert.Equal(t, []string{"booking"}, cfg.Sheets.BookingHints)
	assert.Equal(t, 5.0, cfg.Rules.HalfDayMaxHours)
	assert.Equal(t, "out/test.db", cfg.Store.DBPath)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  half_day_max_hours: -1\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
