package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "storeops/internal/core/context"
	"storeops/pkg/logger"
)

func newTestRegistry(cfg Config, now *time.Time) *Registry {
	factory := func(sess *appctx.Session) *Workspace {
		return &Workspace{StoreID: sess.StoreID}
	}
	r := NewRegistry(Config{MaxWorkspaces: cfg.MaxWorkspaces}, factory, logger.NewNop())
	r.config = cfg
	r.now = func() time.Time { return *now }
	return r
}

func TestRegistry_AcquireReusesWorkspace(t *testing.T) {
	now := time.Now()
	r := newTestRegistry(Config{}, &now)
	defer r.Close()

	sess := &appctx.Session{SessionID: "s1", StoreID: "7"}
	a, release := r.Acquire(sess)
	release()
	b, release := r.Acquire(sess)
	release()

	assert.Same(t, a, b)
	assert.Equal(t, 1, r.Len())

	other, release := r.Acquire(&appctx.Session{SessionID: "s1", StoreID: "9"})
	release()
	assert.NotSame(t, a, other)
	assert.Equal(t, "9", other.StoreID)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_EvictIdleKeepsHeldWorkspaces(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	r := newTestRegistry(Config{IdleTimeout: time.Minute}, &now)
	defer r.Close()

	idle := &appctx.Session{SessionID: "idle", StoreID: "7"}
	busy := &appctx.Session{SessionID: "busy", StoreID: "7"}

	_, releaseIdle := r.Acquire(idle)
	releaseIdle()
	_, releaseBusy := r.Acquire(busy)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, r.EvictIdle())
	assert.Equal(t, 1, r.Len())

	releaseBusy()
	releaseBusy() // second call is a no-op
	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, r.EvictIdle())
	assert.Zero(t, r.Len())
}

func TestRegistry_MaxWorkspacesDropsLeastRecent(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	r := newTestRegistry(Config{MaxWorkspaces: 2}, &now)
	defer r.Close()

	first, release := r.Acquire(&appctx.Session{SessionID: "a", StoreID: "7"})
	release()
	now = now.Add(time.Second)
	_, release = r.Acquire(&appctx.Session{SessionID: "b", StoreID: "7"})
	release()
	now = now.Add(time.Second)
	_, release = r.Acquire(&appctx.Session{SessionID: "c", StoreID: "7"})
	release()

	require.Equal(t, 2, r.Len())
	again, release := r.Acquire(&appctx.Session{SessionID: "a", StoreID: "7"})
	release()
	assert.NotSame(t, first, again)
}

func TestRegistry_Drop(t *testing.T) {
	now := time.Now()
	r := newTestRegistry(Config{}, &now)
	defer r.Close()

	sess := &appctx.Session{UserID: "u1", StoreID: "7"}
	ws, release := r.Acquire(sess)
	release()
	assert.Equal(t, "user:u1|7", ws.Key)

	r.Drop(sess)
	assert.Zero(t, r.Len())
}

func TestNewFactory(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC) }
	ws := NewFactory(nil, nil, nil, now)(&appctx.Session{StoreID: "7"})

	require.NotNil(t, ws.Ledger)
	require.NotNil(t, ws.Transfers)
	assert.Equal(t, "2024-03-10", ws.Ledger.Window().ToDate())
}

func TestWorkspace_StockChangedToleratesMissingParts(t *testing.T) {
	assert.NotPanics(t, func() { (&Workspace{}).StockChanged() })

	ws := NewFactory(nil, nil, nil, nil)(&appctx.Session{StoreID: "7"})
	assert.NotPanics(t, ws.StockChanged)
	assert.False(t, ws.Ledger.Loaded())
}
