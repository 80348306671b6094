package engine

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/feedsync/internal/connectivity"
	"github.com/iudanet/feedsync/internal/models"
	"github.com/iudanet/feedsync/internal/remote"
	"github.com/iudanet/feedsync/internal/storage/boltdb"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEngine wires an engine over a real bolt-backed storage in a
// temp dir and the given service mock.
func newTestEngine(t *testing.T, svc *remote.ServiceMock, online bool, cfg Config) (*Engine, *boltdb.Storage, *connectivity.Monitor) {
	t.Helper()

	store := boltdb.Open(filepath.Join(t.TempDir(), "engine_test.db"), testLogger())
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	monitor := connectivity.New(context.Background(), func(context.Context) bool {
		return online
	}, testLogger())

	return New(store, store, monitor, svc, testLogger(), cfg), store, monitor
}

func seedItem(t *testing.T, store *boltdb.Storage, id string) *models.FeedItem {
	t.Helper()
	item := &models.FeedItem{
		ID:        id,
		AuthorID:  "author-1",
		Content:   "original content",
		Likes:     5,
		Comments:  0,
		Revision:  1,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Put(context.Background(), item))
	return item
}

func pendingActions(t *testing.T, store *boltdb.Storage) []*models.PendingAction {
	t.Helper()
	actions, err := store.Pending(context.Background())
	require.NoError(t, err)
	return actions
}
