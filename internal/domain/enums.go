package domain

import "fmt"

// Display is what list pages render for an enum value.
type Display struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var unknownDisplay = Display{Label: "Bilinmiyor", Color: "gray"}

// EnumEntry declares one member of a closed enum together with its display
// data and the statuses it may move to.
type EnumEntry[T comparable] struct {
	Value   T
	Display Display
	Next    []T
}

// Enum is the single shared table for a closed enum. Every page renders labels
// and colors from it instead of re-declaring switch chains.
type Enum[T comparable] struct {
	name    string
	order   []T
	entries map[T]EnumEntry[T]
	free    bool
}

func NewEnum[T comparable](name string, entries ...EnumEntry[T]) *Enum[T] {
	e := &Enum[T]{
		name:    name,
		order:   make([]T, 0, len(entries)),
		entries: make(map[T]EnumEntry[T], len(entries)),
	}
	for _, en := range entries {
		if _, dup := e.entries[en.Value]; dup {
			panic(fmt.Sprintf("enum %s: duplicate value %v", name, en.Value))
		}
		e.order = append(e.order, en.Value)
		e.entries[en.Value] = en
	}
	return e
}

// AnyTransition marks every valid value as reachable from every other one.
func (e *Enum[T]) AnyTransition() *Enum[T] {
	e.free = true
	return e
}

func (e *Enum[T]) Name() string { return e.name }

// Values returns the members in declaration order.
func (e *Enum[T]) Values() []T {
	out := make([]T, len(e.order))
	copy(out, e.order)
	return out
}

func (e *Enum[T]) Valid(v T) bool {
	_, ok := e.entries[v]
	return ok
}

func (e *Enum[T]) Display(v T) Display {
	if en, ok := e.entries[v]; ok {
		return en.Display
	}
	return unknownDisplay
}

func (e *Enum[T]) Label(v T) string { return e.Display(v).Label }

func (e *Enum[T]) Color(v T) string { return e.Display(v).Color }

// Next lists the statuses reachable from current, in declaration order.
func (e *Enum[T]) Next(current T) []T {
	if !e.Valid(current) {
		return nil
	}
	out := []T{}
	for _, v := range e.order {
		if v != current && e.CanTransition(current, v) {
			out = append(out, v)
		}
	}
	return out
}

// CanTransition reports whether from -> to is legal. Staying on the same
// valid value is always legal.
func (e *Enum[T]) CanTransition(from, to T) bool {
	if !e.Valid(from) || !e.Valid(to) {
		return false
	}
	if from == to || e.free {
		return true
	}
	for _, n := range e.entries[from].Next {
		if n == to {
			return true
		}
	}
	return false
}

// CheckTransition returns a ValidationError for unknown targets and a
// ConflictError for illegal moves.
func (e *Enum[T]) CheckTransition(from, to T) error {
	if !e.Valid(to) {
		return ValidationError{Field: "status", Msg: fmt.Sprintf("geçersiz %s değeri: %v", e.name, to)}
	}
	if !e.CanTransition(from, to) {
		return ConflictError{
			Resource: e.name,
			Msg:      fmt.Sprintf("%s durumundan %s durumuna geçilemez", e.Label(from), e.Label(to)),
		}
	}
	return nil
}
