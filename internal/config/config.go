package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"tarneeb/internal/domain"
)

// GameConfig tunes table rules and bot pacing.
type GameConfig struct {
	// TargetScore ends the game once a team reaches it. Default 31.
	TargetScore int `json:"target_score"`
	// BotMinDelaySeconds / BotMaxDelaySeconds bound the simulated thinking
	// pause before a bot acts. The pause lives in the host tick loop, never
	// inside the rules engine.
	BotMinDelaySeconds int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds int `json:"bot_max_delay_seconds"`
	// BotIdentitiesPath optionally points at a JSON bot identity pool.
	BotIdentitiesPath string `json:"bot_identities_path"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration with defaults filled in.
func GetGameConfig() GameConfig {
	out := GameConfig{}
	if cfg != nil {
		out = *cfg
	}
	if out.TargetScore <= 0 {
		out.TargetScore = domain.DefaultTargetScore
	}
	if out.BotMinDelaySeconds <= 0 {
		out.BotMinDelaySeconds = 1
	}
	if out.BotMaxDelaySeconds < out.BotMinDelaySeconds {
		out.BotMaxDelaySeconds = out.BotMinDelaySeconds + 2
	}
	return out
}
