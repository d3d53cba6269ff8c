package env

import (
	"errors"
	"fmt"
	"os"

	"roulette_lab/internal/config"
	"roulette_lab/internal/roulette"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const labConfigPathEnvName = "LAB_CONFIG"

var defaultChips = []int64{1, 2, 5, 10, 25, 50, 100}

// labFile - структура config.yaml
type labFile struct {
	Lab struct {
		Chips              []decimal.Decimal `yaml:"chips"`
		MaxSimulationSpins int               `yaml:"max_simulation_spins"`
		DefaultVariant     string            `yaml:"default_variant"`
		RecentSpins        int               `yaml:"recent_spins"`
	} `yaml:"lab"`
	House struct {
		WindowSize    int             `yaml:"window_size"`
		EdgeTolerance decimal.Decimal `yaml:"edge_tolerance"`
	} `yaml:"house"`
}

type labConfig struct {
	chips              []decimal.Decimal
	maxSimulationSpins int
	defaultVariant     roulette.Variant
	recentSpins        int
}

type houseConfig struct {
	windowSize    int
	edgeTolerance decimal.Decimal
}

// LabConfigPath - путь к yaml из LAB_CONFIG, по умолчанию config.yaml
func LabConfigPath() string {
	if p := os.Getenv(labConfigPathEnvName); p != "" {
		return p
	}
	return "config.yaml"
}

func readLabFile(path string) (*labFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var f labFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

// NewLabConfigFromYAML читает секцию lab. Пустые поля получают значения по умолчанию.
func NewLabConfigFromYAML(path string) (config.LabConfig, error) {
	f, err := readLabFile(path)
	if err != nil {
		return nil, err
	}
	return newLabConfig(f)
}

func newLabConfig(f *labFile) (config.LabConfig, error) {
	cfg := &labConfig{
		chips:              f.Lab.Chips,
		maxSimulationSpins: f.Lab.MaxSimulationSpins,
		defaultVariant:     roulette.European,
		recentSpins:        f.Lab.RecentSpins,
	}

	if len(cfg.chips) == 0 {
		for _, c := range defaultChips {
			cfg.chips = append(cfg.chips, decimal.NewFromInt(c))
		}
	}
	for _, c := range cfg.chips {
		if !c.IsPositive() {
			return nil, fmt.Errorf("chip denomination must be positive, got %s", c)
		}
	}

	if cfg.maxSimulationSpins == 0 {
		cfg.maxSimulationSpins = roulette.MaxSimulationSpins
	}
	if cfg.maxSimulationSpins < 1 || cfg.maxSimulationSpins > roulette.MaxSimulationSpins {
		return nil, fmt.Errorf("max_simulation_spins must be in [1, %d]", roulette.MaxSimulationSpins)
	}

	if f.Lab.DefaultVariant != "" {
		v, err := roulette.ParseVariant(f.Lab.DefaultVariant)
		if err != nil {
			return nil, err
		}
		cfg.defaultVariant = v
	}

	if cfg.recentSpins == 0 {
		cfg.recentSpins = roulette.DefaultRecentSpins
	}
	if cfg.recentSpins < 0 {
		return nil, errors.New("recent_spins must not be negative")
	}

	return cfg, nil
}

func (c *labConfig) Chips() []decimal.Decimal {
	return c.chips
}

func (c *labConfig) MaxSimulationSpins() int {
	return c.maxSimulationSpins
}

func (c *labConfig) DefaultVariant() roulette.Variant {
	return c.defaultVariant
}

func (c *labConfig) RecentSpins() int {
	return c.recentSpins
}

// NewHouseConfigFromYAML читает секцию house того же файла
func NewHouseConfigFromYAML(path string) (config.HouseConfig, error) {
	f, err := readLabFile(path)
	if err != nil {
		return nil, err
	}
	return newHouseConfig(f)
}

func newHouseConfig(f *labFile) (config.HouseConfig, error) {
	cfg := &houseConfig{
		windowSize:    f.House.WindowSize,
		edgeTolerance: f.House.EdgeTolerance,
	}
	if cfg.windowSize == 0 {
		cfg.windowSize = 5000
	}
	if cfg.windowSize < 0 {
		return nil, errors.New("house window_size must not be negative")
	}
	if cfg.edgeTolerance.IsZero() {
		cfg.edgeTolerance = decimal.RequireFromString("0.02")
	}
	if cfg.edgeTolerance.IsNegative() {
		return nil, errors.New("house edge_tolerance must not be negative")
	}
	return cfg, nil
}

func (c *houseConfig) WindowSize() int {
	return c.windowSize
}

func (c *houseConfig) EdgeTolerance() decimal.Decimal {
	return c.edgeTolerance
}
