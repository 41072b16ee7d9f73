package registry

import (
	"math/rand"
	"sync"

	"tarneeb/internal/app"
	"tarneeb/internal/domain"
)

// tarneebTable binds one Tarneeb game to its service behind the Table
// capability surface. A mutex serializes actions per table; different rooms
// proceed independently.
type tarneebTable struct {
	mu   sync.Mutex
	svc  *app.Service
	game *domain.Game
}

func newTarneebTable(creatorID string, rng *rand.Rand, targetScore int) Table {
	return &tarneebTable{
		svc:  app.NewService(rng),
		game: domain.NewGame(creatorID, targetScore),
	}
}

func (t *tarneebTable) Join(userID, name string) ([]app.Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.svc.Join(t.game, userID, name)
}

func (t *tarneebTable) Start(actorID string) ([]app.Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.svc.StartGame(t.game, actorID)
}

func (t *tarneebTable) Apply(userID string, act app.Action) ([]app.Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.svc.Apply(t.game, userID, act)
}

func (t *tarneebTable) RunBots() ([]app.Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.svc.RunBots(t.game)
}

func (t *tarneebTable) Describe() app.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return app.BuildSnapshot(t.game)
}

func (t *tarneebTable) HandOf(userID string) ([]domain.Card, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.HandOf(userID)
}

func (t *tarneebTable) Finished() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.Finished()
}
