package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type validator interface {
	Validate() error
}

// load resolves one game's configuration.
// Search order: customPath -> ~/.arcade/configs/<name> -> ./configs/<name> -> embedded -> defaults.
// Files only need to set the keys they change; everything else keeps the default.
func load[T validator](name, customPath string, embedded []byte, defaults func() T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := defaults()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return defaults(), fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(name), filepath.Join("configs", name)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, ok := tryFile(path, defaults); ok {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := defaults()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil || cfg.Validate() != nil {
		return defaults(), nil // Fallback to hardcoded if embed is broken
	}
	return cfg, nil
}

// tryFile reads an optional config file; unreadable or invalid files are skipped.
func tryFile[T validator](path string, defaults func() T) (T, bool) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// LoadBreakout loads Breakout configuration.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	return load("breakout.yaml", customPath, defaultBreakoutYAML, DefaultBreakoutConfig)
}

// LoadSnake loads Snake configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake.yaml", customPath, defaultSnakeYAML, DefaultSnakeConfig)
}

// LoadInvaders loads Space Invaders configuration.
func LoadInvaders(customPath string) (InvadersConfig, error) {
	return load("invaders.yaml", customPath, defaultInvadersYAML, DefaultInvadersConfig)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyBreakoutPreset adjusts lives and paddle size for a difficulty preset.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Rules.Lives += 2
		cfg.Paddle.Width *= 1.3
	case DifficultyHard:
		cfg.Rules.Lives = max(1, cfg.Rules.Lives-1)
		cfg.Paddle.Width *= 0.8
		cfg.Ball.Speed += 1
	}
}

// ApplySnakePreset adjusts the starting move interval for a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.StartMs += 30
	case DifficultyHard:
		cfg.Speed.StartMs = max(cfg.Speed.MinMs, cfg.Speed.StartMs-30)
	}
}

// ApplyInvadersPreset adjusts fire cadences for a difficulty preset.
func ApplyInvadersPreset(cfg *InvadersConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Bullets.CooldownMs = cfg.Bullets.CooldownMs * 7 / 10
		cfg.Timing.EnemyFireMs = cfg.Timing.EnemyFireMs * 14 / 10
	case DifficultyHard:
		cfg.Bullets.CooldownMs = cfg.Bullets.CooldownMs * 13 / 10
		cfg.Timing.EnemyFireMs = cfg.Timing.EnemyFireMs * 7 / 10
	}
}
