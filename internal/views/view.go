package views

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var (
	ErrClosed     = errors.New("görünüm kapatıldı")
	ErrSuperseded = errors.New("daha yeni bir yükleme başladı")
)

// Task fills its own part of the next snapshot. Tasks of one View run
// concurrently, so each must write only the fields it owns.
type Task[S any] func(ctx context.Context, next *S) error

// Snapshot is one fully loaded state. It is never modified after it is
// published; a reload publishes a new one.
type Snapshot[S any] struct {
	Data     S
	Version  uint64
	LoadedAt time.Time
}

// View runs its tasks together and publishes their combined result only
// when all of them succeed. Results of a load that was overtaken by a newer
// Load, or that finished after Close, are dropped.
type View[S any] struct {
	name  string
	tasks []Task[S]
	Now   func() time.Time

	current atomic.Pointer[Snapshot[S]]
	gen     atomic.Uint64

	mu      sync.Mutex
	version uint64
	lastErr error
	closed  bool

	life context.Context
	stop context.CancelFunc
}

func NewView[S any](name string, tasks ...Task[S]) *View[S] {
	life, stop := context.WithCancel(context.Background())
	return &View[S]{name: name, tasks: tasks, life: life, stop: stop}
}

func (v *View[S]) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

// Load fetches everything again. On failure the previous snapshot stays in
// place and the error is kept for Err.
func (v *View[S]) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	v.mu.Unlock()
	gen := v.gen.Add(1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	unlink := context.AfterFunc(v.life, cancel)
	defer unlink()

	var next S
	g, gctx := errgroup.WithContext(ctx)
	for _, task := range v.tasks {
		g.Go(func() error { return task(gctx, &next) })
	}
	err := g.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	switch {
	case v.closed:
		return ErrClosed
	case v.gen.Load() != gen:
		return ErrSuperseded
	case err != nil:
		v.lastErr = err
		log.Warn().Err(err).Str("view", v.name).Msg("view load failed")
		return err
	}
	v.version++
	v.lastErr = nil
	v.current.Store(&Snapshot[S]{Data: next, Version: v.version, LoadedAt: v.now()})
	return nil
}

// Snapshot returns the last published state; ok is false before the first
// successful Load.
func (v *View[S]) Snapshot() (Snapshot[S], bool) {
	s := v.current.Load()
	if s == nil {
		return Snapshot[S]{}, false
	}
	return *s, true
}

// Err is the error of the most recent load, nil once a load succeeds.
func (v *View[S]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

// Close cancels loads in flight and makes later ones fail with ErrClosed.
func (v *View[S]) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	v.gen.Add(1)
	v.stop()
}
