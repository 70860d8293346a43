package views

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"adminhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

type pair struct {
	A string
	B string
}

func setA(v string) Task[pair] {
	return func(ctx context.Context, next *pair) error {
		next.A = v
		return nil
	}
}

func setB(v string) Task[pair] {
	return func(ctx context.Context, next *pair) error {
		next.B = v
		return nil
	}
}

func TestViewPublishesAllTasksTogether(t *testing.T) {
	v := NewView("pair", setA("a"), setB("b"))
	defer v.Close()
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	v.Now = func() time.Time { return fixed }

	_, ok := v.Snapshot()
	assert.False(t, ok)

	require.NoError(t, v.Load(context.Background()))
	s, ok := v.Snapshot()
	require.True(t, ok)
	assert.Equal(t, pair{A: "a", B: "b"}, s.Data)
	assert.Equal(t, uint64(1), s.Version)
	assert.Equal(t, fixed, s.LoadedAt)
	assert.NoError(t, v.Err())
}

func TestViewFailureKeepsPreviousSnapshot(t *testing.T) {
	var fail atomic.Bool
	boom := errors.New("boom")
	v := NewView("pair", setA("a"), func(ctx context.Context, next *pair) error {
		if fail.Load() {
			return boom
		}
		next.B = "b"
		return nil
	})
	defer v.Close()

	require.NoError(t, v.Load(context.Background()))
	fail.Store(true)
	err := v.Load(context.Background())
	require.ErrorIs(t, err, boom)

	s, _ := v.Snapshot()
	assert.Equal(t, pair{A: "a", B: "b"}, s.Data)
	assert.Equal(t, uint64(1), s.Version)
	assert.ErrorIs(t, v.Err(), boom)

	fail.Store(false)
	require.NoError(t, v.Load(context.Background()))
	assert.NoError(t, v.Err())
}

func TestViewCloseDropsLoadInFlight(t *testing.T) {
	started := make(chan struct{})
	v := NewView("pair", func(ctx context.Context, next *pair) error {
		close(started)
		<-ctx.Done()
		next.A = "late"
		return ctx.Err()
	})

	done := make(chan error, 1)
	go func() { done <- v.Load(context.Background()) }()
	<-started
	v.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("load did not stop after Close")
	}
	_, ok := v.Snapshot()
	assert.False(t, ok)
	assert.ErrorIs(t, v.Load(context.Background()), ErrClosed)
}

func TestViewSupersededLoadIsDropped(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	v := NewView("pair", func(ctx context.Context, next *pair) error {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			next.A = "stale"
			return nil
		}
		next.A = "fresh"
		return nil
	})
	defer v.Close()

	first := make(chan error, 1)
	go func() { first <- v.Load(context.Background()) }()
	<-started

	require.NoError(t, v.Load(context.Background()))
	close(release)
	assert.ErrorIs(t, <-first, ErrSuperseded)

	s, _ := v.Snapshot()
	assert.Equal(t, "fresh", s.Data.A)
	assert.Equal(t, uint64(1), s.Version)
}

func TestDispatcher(t *testing.T) {
	boom := errors.New("boom")
	inUse := domain.ConflictError{Resource: "kategori", Msg: "kullanımda"}
	yes := ConfirmFunc(func(string) bool { return true })
	no := ConfirmFunc(func(string) bool { return false })

	tests := []struct {
		name       string
		confirmer  Confirmer
		prompt     string
		guardErr   error
		doErr      error
		refreshErr error
		want       Result
		wantDo     bool
		wantReload bool
	}{
		{name: "declined prompt", confirmer: no, prompt: "sil?",
			want: Result{Cancelled: true}},
		{name: "prompt without confirmer", prompt: "sil?",
			want: Result{Cancelled: true}},
		{name: "guard blocks request", confirmer: yes, guardErr: inUse,
			want: Result{Err: inUse}},
		{name: "request fails", confirmer: yes, doErr: boom, wantDo: true,
			want: Result{Err: boom}},
		{name: "success reloads", confirmer: yes, prompt: "sil?", wantDo: true, wantReload: true,
			want: Result{OK: true, Refreshed: true}},
		{name: "reload fails after write", refreshErr: boom, wantDo: true, wantReload: true,
			want: Result{OK: true, Err: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var did, reloaded bool
			d := Dispatcher{
				Confirmer: tt.confirmer,
				Refresh: func(context.Context) error {
					reloaded = true
					return tt.refreshErr
				},
			}
			res := d.Dispatch(context.Background(), Mutation{
				Action: "test",
				Prompt: tt.prompt,
				Guard:  func() error { return tt.guardErr },
				Do: func(context.Context) error {
					did = true
					return tt.doErr
				},
			})
			assert.Equal(t, tt.want.OK, res.OK)
			assert.Equal(t, tt.want.Cancelled, res.Cancelled)
			assert.Equal(t, tt.want.Refreshed, res.Refreshed)
			assert.Equal(t, tt.want.Err, res.Err)
			assert.NotEmpty(t, res.Message)
			assert.Equal(t, tt.wantDo, did)
			assert.Equal(t, tt.wantReload, reloaded)
		})
	}
}
