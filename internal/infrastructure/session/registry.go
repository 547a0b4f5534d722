// Package session keeps per-session console workspaces: the ledger view and
// the transfer stock snapshot that survive between requests of one session.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	appctx "storeops/internal/core/context"
	"storeops/internal/domain/ledger"
	"storeops/internal/domain/transfer"
	"storeops/pkg/logger"
)

// Config configures Registry behavior.
type Config struct {
	IdleTimeout   time.Duration // drop a workspace after inactivity (0 = never)
	MaxWorkspaces int           // soft cap; least recently used idle workspaces are dropped first (0 = unlimited)
}

// DefaultConfig returns defaults.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:   30 * time.Minute,
		MaxWorkspaces: 5000,
	}
}

// Workspace is the state of one console session for one store.
type Workspace struct {
	Key       string
	StoreID   string
	Ledger    *ledger.View
	Transfers *transfer.Ledger

	lastUsed atomic.Int64 // unix nanoseconds
	refCount atomic.Int32
}

func (w *Workspace) touch(now time.Time) {
	w.lastUsed.Store(now.UnixNano())
}

// LastUsed returns when the workspace was last acquired.
func (w *Workspace) LastUsed() time.Time {
	return time.Unix(0, w.lastUsed.Load())
}

// InvalidateLedger makes the next ledger read go to the backend.
func (w *Workspace) InvalidateLedger() {
	if w.Ledger != nil {
		w.Ledger.Invalidate()
	}
}

// StockChanged is called after a write that moved stock outside the transfer
// ledger. Both the ledger view and the stock snapshot are reloaded on next use.
func (w *Workspace) StockChanged() {
	w.InvalidateLedger()
	if w.Transfers != nil {
		w.Transfers.DropSnapshot()
	}
}

// Factory builds a fresh workspace for a session.
type Factory func(sess *appctx.Session) *Workspace

// NewFactory returns a Factory wiring the ledger and transfer repositories.
func NewFactory(ledgerRepo ledger.Repository, transferRepo transfer.Repository, stores transfer.StoreResolver, now func() time.Time) Factory {
	if now == nil {
		now = time.Now
	}
	return func(sess *appctx.Session) *Workspace {
		return &Workspace{
			StoreID:   sess.StoreID,
			Ledger:    ledger.NewView(ledgerRepo, ledger.DefaultWindow(now())),
			Transfers: transfer.NewLedger(transferRepo, stores),
		}
	}
}

// Registry maps sessions to workspaces. Safe for concurrent use.
type Registry struct {
	config  Config
	factory Factory
	now     func() time.Time

	spaces sync.Map // map[key]*Workspace
	count  atomic.Int32
	mu     sync.Mutex // serializes creation and eviction

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	log    *logger.Logger
}

// NewRegistry creates a registry and starts idle eviction.
func NewRegistry(cfg Config, factory Factory, log *logger.Logger) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Registry{
		config:  cfg,
		factory: factory,
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
		log:     log.WithComponent("session-registry"),
	}

	if cfg.IdleTimeout > 0 {
		r.wg.Add(1)
		go r.evictionLoop()
	}
	return r
}

// workspaceKey scopes a workspace to session and store; switching store starts a new one.
func workspaceKey(sess *appctx.Session) string {
	sid := sess.SessionID
	if sid == "" {
		sid = "user:" + sess.UserID
	}
	return sid + "|" + sess.StoreID
}

// Acquire returns the session's workspace, creating it if needed. The
// returned release func must be called when the request is done.
func (r *Registry) Acquire(sess *appctx.Session) (*Workspace, func()) {
	key := workspaceKey(sess)

	if val, ok := r.spaces.Load(key); ok {
		ws := val.(*Workspace)
		return r.hold(ws)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if val, ok := r.spaces.Load(key); ok {
		return r.hold(val.(*Workspace))
	}
	if r.config.MaxWorkspaces > 0 && int(r.count.Load()) >= r.config.MaxWorkspaces {
		r.evictLeastRecentLocked()
	}

	ws := r.factory(sess)
	ws.Key = key
	r.spaces.Store(key, ws)
	r.count.Add(1)
	r.log.Debugw("workspace created", "key", key, "total", r.count.Load())
	return r.hold(ws)
}

func (r *Registry) hold(ws *Workspace) (*Workspace, func()) {
	ws.refCount.Add(1)
	ws.touch(r.now())
	var once sync.Once
	return ws, func() {
		once.Do(func() { ws.refCount.Add(-1) })
	}
}

// Drop removes the workspace of sess, if any.
func (r *Registry) Drop(sess *appctx.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := workspaceKey(sess)
	if _, ok := r.spaces.LoadAndDelete(key); ok {
		r.count.Add(-1)
	}
}

// Len returns the number of live workspaces.
func (r *Registry) Len() int {
	return int(r.count.Load())
}

func (r *Registry) evictionLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.IdleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.EvictIdle()
		}
	}
}

// EvictIdle drops workspaces unused for longer than the idle timeout.
// Workspaces held by an in-flight request are kept.
func (r *Registry) EvictIdle() int {
	if r.config.IdleTimeout <= 0 {
		return 0
	}
	threshold := r.now().Add(-r.config.IdleTimeout).UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	r.spaces.Range(func(key, value any) bool {
		ws := value.(*Workspace)
		if ws.refCount.Load() > 0 {
			return true
		}
		if ws.lastUsed.Load() < threshold {
			r.spaces.Delete(key)
			r.count.Add(-1)
			evicted++
		}
		return true
	})
	if evicted > 0 {
		r.log.Infow("idle workspaces evicted", "evicted", evicted, "total", r.count.Load())
	}
	return evicted
}

// evictLeastRecentLocked drops the least recently used unheld workspace. r.mu must be held.
func (r *Registry) evictLeastRecentLocked() {
	var (
		oldestKey any
		oldest    int64
	)
	r.spaces.Range(func(key, value any) bool {
		ws := value.(*Workspace)
		if ws.refCount.Load() > 0 {
			return true
		}
		if used := ws.lastUsed.Load(); oldestKey == nil || used < oldest {
			oldestKey, oldest = key, used
		}
		return true
	})
	if oldestKey != nil {
		r.spaces.Delete(oldestKey)
		r.count.Add(-1)
	}
}

// Close stops background eviction.
func (r *Registry) Close() {
	r.cancel()
	r.wg.Wait()
	r.log.Infow("session registry closed", "workspaces", r.count.Load())
}
