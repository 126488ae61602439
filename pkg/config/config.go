package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the reconciliation pipeline.
// Values come from a YAML file with environment variable overrides;
// environment variables always win for fields that support both.
type Config struct {
	Env string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`

	Capacity CapacityConfig `yaml:"capacity"`
	Sheets   SheetConfig    `yaml:"sheets"`
	Rules    RuleConfig     `yaml:"rules"`
	Store    StoreConfig    `yaml:"store"`
}

// CapacityConfig holds the denominator inputs for the occupancy rate.
type CapacityConfig struct {
	// FleetSize is the number of vehicles in the fleet. When zero, the
	// engine falls back to the count of distinct normalized plates
	// observed in the filtered record set.
	FleetSize   int `yaml:"fleet_size" env:"FLEET_SIZE" env-default:"0"`
	PeriodDays  int `yaml:"period_days" env:"PERIOD_DAYS" env-default:"30"`
	HoursPerDay int `yaml:"hours_per_day" env:"HOURS_PER_DAY" env-default:"8"`
}

// SheetConfig controls workbook sheet discovery and header location.
// Hints are matched case-insensitively (diacritics folded) against sheet
// names; fallback rows are used when the header scan finds nothing.
type SheetConfig struct {
	BookingHints   []string `yaml:"booking_hints" env:"BOOKING_SHEET_HINTS" env-default:"booking,đăng ký,dang ky xe"`
	RegistryHints  []string `yaml:"registry_hints" env:"REGISTRY_SHEET_HINTS" env-default:"xe,tài xế,driver,vehicle"`
	PersonnelHints []string `yaml:"personnel_hints" env:"PERSONNEL_SHEET_HINTS" env-default:"nhân viên,nhan su,staff,personnel"`

	// MaxHeaderScan bounds how many leading rows the locator inspects.
	MaxHeaderScan      int `yaml:"max_header_scan" env:"MAX_HEADER_SCAN" env-default:"10"`
	BookingHeaderRow   int `yaml:"booking_header_row" env:"BOOKING_HEADER_ROW" env-default:"0"`
	RegistryHeaderRow  int `yaml:"registry_header_row" env:"REGISTRY_HEADER_ROW" env-default:"0"`
	PersonnelHeaderRow int `yaml:"personnel_header_row" env:"PERSONNEL_HEADER_ROW" env-default:"0"`
}

// RuleConfig holds record-classification thresholds.
type RuleConfig struct {
	// HalfDayMaxHours is the inclusive upper bound for a HalfDay session.
	HalfDayMaxHours float64 `yaml:"half_day_max_hours" env:"HALF_DAY_MAX_HOURS" env-default:"4"`
	// IntercityKeywords classify a route as Intercity when any keyword
	// appears in the route text (folded, case-insensitive).
	IntercityKeywords []string `yaml:"intercity_keywords" env:"INTERCITY_KEYWORDS" env-default:"liên tỉnh,ngoại tỉnh,intercity,long trip"`
}

// StoreConfig holds result persistence settings.
type StoreConfig struct {
	DBPath string `yaml:"db_path" env:"DB_PATH" env-default:"data/fleetlens.db"`
}

// Load reads configuration from the given YAML file with environment
// variable overrides. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Capacity.PeriodDays < 0 {
		return fmt.Errorf("capacity.period_days must not be negative, got %d", c.Capacity.PeriodDays)
	}
	if c.Capacity.HoursPerDay < 0 {
		return fmt.Errorf("capacity.hours_per_day must not be negative, got %d", c.Capacity.HoursPerDay)
	}
	if c.Rules.HalfDayMaxHours <= 0 {
		return fmt.Errorf("rules.half_day_max_hours must be positive, got %v", c.Rules.HalfDayMaxHours)
	}
	if c.Sheets.MaxHeaderScan <= 0 {
		return fmt.Errorf("sheets.max_header_scan must be positive, got %d", c.Sheets.MaxHeaderScan)
	}
	return nil
}
