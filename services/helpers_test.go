package services

import (
	"path/filepath"
	"sync"
	"testing"

	"mealplanner/config"
	"mealplanner/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mealplanner.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "open db")
	require.NoError(t, config.Migrate(db), "migrate")
	return db
}

var alice = models.Session{UserID: "uid-alice", Email: "alice@example.com", TokenID: "jti-alice"}
var bob = models.Session{UserID: "uid-bob", Email: "bob@example.com", TokenID: "jti-bob"}

type recordedEvent struct {
	UserID string
	Event  Event
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *fakePublisher) Publish(userID string, ev Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{UserID: userID, Event: ev})
}

func (p *fakePublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event.Kind)
	}
	return out
}
