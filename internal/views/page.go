package views

import (
	"context"

	"adminhub/internal/client"
	"adminhub/internal/domain"
	"adminhub/internal/listing"
)

// page is what every screen shares: the View it renders from, the caller's
// capabilities and a Dispatcher that reloads the View after each write.
type page[S any] struct {
	*View[S]
	Caps   Capabilities
	caller domain.RequestContext
	api    *client.Client
	disp   Dispatcher
}

func newPage[S any](name string, api *client.Client, rc domain.RequestContext, confirm Confirmer, tasks ...Task[S]) page[S] {
	v := NewView(name, tasks...)
	return page[S]{
		View:   v,
		Caps:   CapabilitiesFor(rc.Role),
		caller: rc,
		api:    api,
		disp:   Dispatcher{Confirmer: confirm, Refresh: v.Load},
	}
}

// guard combines the role check, request validation and any page-specific
// checks into one Mutation.Guard.
func (p page[S]) guard(a domain.Action, req any, extra ...func() error) func() error {
	return func() error {
		if err := p.Caps.Require(a); err != nil {
			return err
		}
		if req != nil {
			if err := checkRequest(req); err != nil {
				return err
			}
		}
		for _, f := range extra {
			if err := f(); err != nil {
				return err
			}
		}
		return nil
	}
}

// data returns the current snapshot, or the zero value before the first load.
func (p page[S]) data() (S, uint64) {
	s, _ := p.Snapshot()
	return s.Data, s.Version
}

// collection is the filter-and-memo part of a list.
type collection[T any] struct {
	spec listing.Spec[T]
	memo listing.Memo[T]
}

func (c *collection[T]) filter(version uint64, items []T, cr listing.Criteria) []T {
	return c.memo.Get(version, cr, func() []T { return listing.Filter(items, c.spec, cr) })
}

// listTask loads a whole collection into the field of the next snapshot.
func listTask[S, T any](fetch func(context.Context, listing.Criteria) ([]T, error), field func(*S) *[]T) Task[S] {
	return func(ctx context.Context, next *S) error {
		items, err := fetch(ctx, listing.Criteria{})
		if err != nil {
			return err
		}
		*field(next) = items
		return nil
	}
}

func find[T any](items []T, id domain.ID, idOf func(T) domain.ID) (T, bool) {
	return listing.First(items, func(it T) bool { return idOf(it) == id })
}

func ignore[T any](_ T, err error) error { return err }

// transition checks a status move against the shared table when the record
// is in the current snapshot; unknown records are left to the server.
func transition[T comparable](enum *domain.Enum[T], from T, known bool, to T) func() error {
	return func() error {
		if !known {
			return nil
		}
		return enum.CheckTransition(from, to)
	}
}

// nextStatuses is what a status picker offers for a record in the snapshot.
func nextStatuses[T comparable](enum *domain.Enum[T], current T, known bool) []T {
	if !known {
		return nil
	}
	return enum.Next(current)
}
