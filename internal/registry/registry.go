// Package registry maps a room identifier to at most one active game and
// dispatches over the closed set of supported game types. Embedded hosts
// (the CLI, tests) drive games through it; the Nakama port does not need it
// because Nakama's match registry already enforces one state per match.
package registry

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"tarneeb/internal/app"
	"tarneeb/internal/domain"
)

var (
	ErrUnknownGameType   = errors.New("unknown game type")
	ErrGameAlreadyExists = errors.New("a game already exists in this room")
	ErrGameNotFound      = errors.New("no game in this room")
)

// GameType tags a supported game variant.
type GameType string

// GameTypeTarneeb is the only variant currently registered.
const GameTypeTarneeb GameType = "tarneeb"

// Table is the capability surface every game type exposes to its host.
type Table interface {
	Join(userID, name string) ([]app.Event, error)
	Start(actorID string) ([]app.Event, error)
	Apply(userID string, act app.Action) ([]app.Event, error)
	RunBots() ([]app.Event, error)
	Describe() app.Snapshot
	HandOf(userID string) ([]domain.Card, bool)
	Finished() bool
}

// Session is one active game bound to a room.
type Session struct {
	ID        string
	RoomID    string
	Type      GameType
	CreatorID string
	CreatedAt time.Time
	Table     Table
}

type constructor func(creatorID string, rng *rand.Rand, targetScore int) Table

// Registry holds the active games, one per room. Create it at process start
// and share it; all methods are safe for concurrent use. Actions within one
// session are serialized by the session's table.
type Registry struct {
	mu           sync.Mutex
	sessions     map[string]*Session
	constructors map[GameType]constructor
	rng          *rand.Rand
	targetScore  int
}

// NewRegistry constructs a registry with the provided rng or a time-seeded
// default. The rng only seeds each table's private source.
// targetScore <= 0 selects the standard 31-point game.
func NewRegistry(rng *rand.Rand, targetScore int) *Registry {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Registry{
		sessions: make(map[string]*Session),
		constructors: map[GameType]constructor{
			GameTypeTarneeb: newTarneebTable,
		},
		rng:         rng,
		targetScore: targetScore,
	}
}

// Create starts a new game in the room and seats the creator. Fails when the
// room is occupied or the game type is unknown.
func (r *Registry) Create(roomID string, gameType GameType, creatorID, creatorName string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[roomID]; exists {
		return nil, ErrGameAlreadyExists
	}
	build, ok := r.constructors[gameType]
	if !ok {
		return nil, ErrUnknownGameType
	}

	// Each table gets its own source, seeded under the registry lock; rooms
	// share no mutable state and may run concurrently.
	tableRng := rand.New(rand.NewSource(r.rng.Int63()))
	table := build(creatorID, tableRng, r.targetScore)
	if _, err := table.Join(creatorID, creatorName); err != nil {
		return nil, err
	}

	session := &Session{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		Type:      gameType,
		CreatorID: creatorID,
		CreatedAt: time.Now(),
		Table:     table,
	}
	r.sessions[roomID] = session
	return session, nil
}

// Get returns the active session for the room, if any.
func (r *Registry) Get(roomID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[roomID]
	return session, ok
}

// End removes the room's game. The caller is responsible for having ended it
// via the table first if farewell events are wanted.
func (r *Registry) End(roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[roomID]; !ok {
		return false
	}
	delete(r.sessions, roomID)
	return true
}

// CleanupFinished removes all sessions whose game reached the terminal
// phase, returning how many were removed.
func (r *Registry) CleanupFinished() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for roomID, session := range r.sessions {
		if session.Table.Finished() {
			delete(r.sessions, roomID)
			removed++
		}
	}
	return removed
}

// Stats summarizes the active sessions.
type Stats struct {
	TotalGames   int
	GamesByType  map[GameType]int
	GamesByPhase map[domain.Phase]int
}

// GetStats counts the active sessions by type and phase.
func (r *Registry) GetStats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := Stats{
		TotalGames:   len(r.sessions),
		GamesByType:  make(map[GameType]int),
		GamesByPhase: make(map[domain.Phase]int),
	}
	for _, session := range r.sessions {
		stats.GamesByType[session.Type]++
		stats.GamesByPhase[session.Table.Describe().Phase]++
	}
	return stats
}
