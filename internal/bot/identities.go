package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// BotIdentity is one entry of the configurable AI seat pool.
type BotIdentity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "medium", "hard"
}

// botIDPrefix marks synthetic user ids for AI seats.
const botIDPrefix = "bot-"

// defaultIdentities seat AI players when no pool file is configured.
var defaultIdentities = []BotIdentity{
	{UserID: "bot-0", Username: "ahmad", DisplayName: "Ahmad", Difficulty: "medium"},
	{UserID: "bot-1", Username: "sara", DisplayName: "Sara", Difficulty: "medium"},
	{UserID: "bot-2", Username: "omar", DisplayName: "Omar", Difficulty: "medium"},
	{UserID: "bot-3", Username: "layla", DisplayName: "Layla", Difficulty: "medium"},
}

var (
	botIdentities []BotIdentity
	botConfigMap  map[string]BotIdentity
	loadOnce      sync.Once
	loadErr       error
)

func init() {
	applyIdentities(defaultIdentities)
}

func applyIdentities(identities []BotIdentity) {
	botIdentities = identities
	botConfigMap = make(map[string]BotIdentity, len(identities))
	for _, identity := range identities {
		if identity.UserID != "" {
			botConfigMap[identity.UserID] = identity
		}
	}
}

// LoadIdentities replaces the default bot pool with profiles from the given
// path. Safe to call when the file is absent; the defaults stay in place.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var identities []BotIdentity
		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		if len(identities) > 0 {
			applyIdentities(identities)
		}
	})
	return loadErr
}

// GetBotConfig returns the identity configuration for a given bot id.
func GetBotConfig(userID string) (BotIdentity, bool) {
	config, ok := botConfigMap[userID]
	return config, ok
}

// GetBotIdentity returns an identity for a bot by seat index (mod pool size).
func GetBotIdentity(index int) BotIdentity {
	if len(botIdentities) == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("%s%d", botIDPrefix, index),
			DisplayName: fmt.Sprintf("AI Player %d", index),
		}
	}
	return botIdentities[index%len(botIdentities)]
}

// GetBotDisplayName returns the display name for a bot id, or "" if unknown.
func GetBotDisplayName(userID string) string {
	if identity, ok := botConfigMap[userID]; ok {
		if identity.DisplayName != "" {
			return identity.DisplayName
		}
		return identity.Username
	}
	return ""
}

// IsBot reports whether the given user id belongs to an AI seat.
func IsBot(userID string) bool {
	if _, ok := botConfigMap[userID]; ok {
		return true
	}
	return strings.HasPrefix(userID, botIDPrefix)
}
