package registry

import (
	"context"
	"sync/atomic"

	"github.com/mox-nexus/x.uma"
	"github.com/mox-nexus/x.uma/config"
)

// Manager holds an atomically-swappable *xuma.Matcher[Ctx, A]. It is an
// operational convenience outside the core evaluation engine: Reload
// builds a brand new immutable Matcher from an updated config and swaps
// the pointer a reader holds in a single atomic store, so Current() never
// observes a partially-built tree. A previously returned Matcher is never
// mutated — readers that captured it via Current() keep using it safely
// even after a Reload.
//
// Manager backs cmd/xumactl serve; the core engine has no
// equivalent concept, by design (re-loading in place would break the
// "Matcher is immutable" invariant).
type Manager[Ctx any, A any] struct {
	registry     *Registry[Ctx]
	decodeAction ActionDecoder[A]
	current      atomic.Pointer[xuma.Matcher[Ctx, A]]
}

// NewManager builds a Manager backed by registry, loading initial from cfg.
func NewManager[Ctx any, A any](ctx context.Context, registry *Registry[Ctx], cfg config.MatcherConfig, decodeAction ActionDecoder[A]) (*Manager[Ctx, A], error) {
	m := &Manager[Ctx, A]{registry: registry, decodeAction: decodeAction}
	if err := m.Reload(ctx, cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// Current returns the most recently loaded Matcher. Safe to call
// concurrently with Reload.
func (m *Manager[Ctx, A]) Current() *xuma.Matcher[Ctx, A] {
	return m.current.Load()
}

// Reload builds a new Matcher from cfg and atomically swaps it in. On
// error the previous Matcher (if any) remains current and is returned
// unchanged by subsequent Current() calls.
func (m *Manager[Ctx, A]) Reload(ctx context.Context, cfg config.MatcherConfig) error {
	next, err := Load(ctx, m.registry, cfg, m.decodeAction)
	if err != nil {
		return err
	}
	m.current.Store(next)
	return nil
}
