package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/talgya/hexfront/internal/movement"
	"github.com/talgya/hexfront/internal/turn"
	"github.com/talgya/hexfront/internal/visibility"
	"github.com/talgya/hexfront/internal/world"
)

// FileName is the config file looked up in the config directory.
const FileName = "hexfront.cfg.json"

// MapConfig holds world generation settings
type MapConfig struct {
	Radius        int     `json:"radius" mapstructure:"radius"`
	Seed          int64   `json:"seed" mapstructure:"seed"`
	SeaLevel      float64 `json:"seaLevel" mapstructure:"seaLevel"`
	MountainLevel float64 `json:"mountainLevel" mapstructure:"mountainLevel"`
}

// VisionConfig holds sight rules
type VisionConfig struct {
	UnitRadius int  `json:"unitRadius" mapstructure:"unitRadius"`
	HillBonus  bool `json:"hillBonus" mapstructure:"hillBonus"`
	Occlusion  bool `json:"occlusion" mapstructure:"occlusion"`
}

// MovementConfig holds movement rules
type MovementConfig struct {
	Overspend string `json:"overspend" mapstructure:"overspend"`
	Machinery bool   `json:"machinery" mapstructure:"machinery"`
}

// GameConfig holds match setup
type GameConfig struct {
	Civilizations int `json:"civilizations" mapstructure:"civilizations"`
	MaxPathTurns  int `json:"maxPathTurns" mapstructure:"maxPathTurns"`
}

// DBConfig holds journal settings
type DBConfig struct {
	Path    string `json:"path" mapstructure:"path"`
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
}

// Settings is the full decoded configuration.
type Settings struct {
	LogLevel string         `json:"logLevel" mapstructure:"logLevel"`
	Map      MapConfig      `json:"map" mapstructure:"map"`
	Vision   VisionConfig   `json:"vision" mapstructure:"vision"`
	Movement MovementConfig `json:"movement" mapstructure:"movement"`
	Game     GameConfig     `json:"game" mapstructure:"game"`
	DB       DBConfig       `json:"db" mapstructure:"db"`
}

// Load sets default values and reads the JSON config file from configDir if
// there is one. Every key has a default, so a missing file is not an error.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("map.radius", 10)
	viper.SetDefault("map.seed", 42)
	viper.SetDefault("map.seaLevel", 0.25)
	viper.SetDefault("map.mountainLevel", 0.72)

	viper.SetDefault("vision.unitRadius", visibility.DefaultUnitRadius)
	viper.SetDefault("vision.hillBonus", true)
	viper.SetDefault("vision.occlusion", false)

	viper.SetDefault("movement.overspend", "final-step")
	viper.SetDefault("movement.machinery", false)

	viper.SetDefault("game.civilizations", 2)
	viper.SetDefault("game.maxPathTurns", 50)

	viper.SetDefault("db.path", "data/hexfront.db")
	viper.SetDefault("db.enabled", true)

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Debug("no config file, using defaults", "dir", configDir)
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// Current decodes the loaded configuration.
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// GenConfig returns the world generation parameters.
func (s Settings) GenConfig() world.GenConfig {
	return world.GenConfig{
		Radius:      s.Map.Radius,
		Seed:        s.Map.Seed,
		SeaLevel:    s.Map.SeaLevel,
		MountainLvl: s.Map.MountainLevel,
	}
}

// GameSettings returns the rule set a game is created with.
func (s Settings) GameSettings() (turn.Settings, error) {
	policy, err := ParsePolicy(s.Movement.Overspend)
	if err != nil {
		return turn.Settings{}, err
	}
	return turn.Settings{
		Vision: visibility.Config{
			UnitRadius: s.Vision.UnitRadius,
			HillBonus:  s.Vision.HillBonus,
			Occlusion:  s.Vision.Occlusion,
		},
		Policy:       policy,
		Machinery:    s.Movement.Machinery,
		MaxPathTurns: s.Game.MaxPathTurns,
	}, nil
}

// ParsePolicy maps a movement.overspend value to a movement policy.
func ParsePolicy(name string) (movement.Policy, error) {
	switch strings.ToLower(name) {
	case "", "final-step":
		return movement.FinalStep, nil
	case "strict":
		return movement.Strict, nil
	default:
		return 0, fmt.Errorf("unknown movement.overspend %q", name)
	}
}

// ParseLevel maps a logLevel value to a slog level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
