package bot

import (
	"fmt"
	"math/rand"
)

// NewBrain creates a new AI brain for the specified level.
func NewBrain(level BotLevel, rng *rand.Rand) (Brain, error) {
	switch level {
	case BotLevelRandom:
		return NewRandomBot(rng), nil
	case BotLevelStandard:
		return NewStandardBot(rng), nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// LevelForDifficulty maps an identity difficulty string to a bot level.
// Unknown values get the standard strategy.
func LevelForDifficulty(difficulty string) BotLevel {
	switch difficulty {
	case "easy":
		return BotLevelRandom
	default:
		return BotLevelStandard
	}
}
