// Package tracker keeps a list of values in sparse form: only the indices
// where a value differs from its predecessor are stored, ordered by index.
// Point updates touch at most the two transitions around the index and
// report exactly what changed, so dependent penalties can be maintained
// without rescanning the list.
package tracker

import (
	"fmt"

	"github.com/google/btree"
)

const degree = 16

// Change is a transition at Index from the value of Index-1 to the value
// at Index.
type Change[V comparable] struct {
	Index int
	From  V
	To    V
}

// DeltaKind tells whether a transition appeared or disappeared.
type DeltaKind int

const (
	Added DeltaKind = iota
	Removed
)

func (k DeltaKind) String() string {
	if k == Added {
		return "added"
	}
	return "removed"
}

// Delta is one transition added to or removed from a tracker.
type Delta[V comparable] struct {
	Kind DeltaKind
	Change[V]
}

// Tracker is a fixed-length list of values stored as its transitions.
// It is not safe for concurrent use.
type Tracker[V comparable] struct {
	length  int
	initial V
	changes *btree.BTreeG[Change[V]]
}

func byIndex[V comparable](a, b Change[V]) bool {
	return a.Index < b.Index
}

// New returns a tracker holding values.
func New[V comparable](values []V) *Tracker[V] {
	t := &Tracker[V]{
		length:  len(values),
		changes: btree.NewG[Change[V]](degree, byIndex[V]),
	}
	if len(values) == 0 {
		return t
	}
	t.initial = values[0]
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1] {
			t.changes.ReplaceOrInsert(Change[V]{Index: i, From: values[i-1], To: values[i]})
		}
	}
	return t
}

// Filled returns a tracker of n copies of v.
func Filled[V comparable](n int, v V) *Tracker[V] {
	return &Tracker[V]{
		length:  n,
		initial: v,
		changes: btree.NewG[Change[V]](degree, byIndex[V]),
	}
}

// Len returns the length of the list.
func (t *Tracker[V]) Len() int { return t.length }

// Transitions returns how many adjacent pairs differ.
func (t *Tracker[V]) Transitions() int { return t.changes.Len() }

func (t *Tracker[V]) check(index int) {
	if index < 0 || index >= t.length {
		panic(fmt.Sprintf("tracker: index %d out of range [0,%d)", index, t.length))
	}
}

// Value returns the value at index.
func (t *Tracker[V]) Value(index int) V {
	t.check(index)
	if c, ok := t.atOrBefore(index); ok {
		return c.To
	}
	return t.initial
}

func (t *Tracker[V]) atOrBefore(index int) (Change[V], bool) {
	var (
		found Change[V]
		ok    bool
	)
	t.changes.DescendLessOrEqual(Change[V]{Index: index}, func(c Change[V]) bool {
		found, ok = c, true
		return false
	})
	return found, ok
}

func (t *Tracker[V]) after(index int) (Change[V], bool) {
	var (
		found Change[V]
		ok    bool
	)
	t.changes.AscendGreaterOrEqual(Change[V]{Index: index + 1}, func(c Change[V]) bool {
		found, ok = c, true
		return false
	})
	return found, ok
}

// Update sets the value at index and returns the transitions that were
// removed and added as a result. Setting the current value is a no-op.
func (t *Tracker[V]) Update(index int, value V) []Delta[V] {
	t.check(index)
	old := t.Value(index)
	if old == value {
		return nil
	}

	var deltas []Delta[V]
	if index == 0 {
		t.initial = value
	} else {
		deltas = t.setBoundary(deltas, index, t.Value(index-1), value)
	}
	if index+1 < t.length {
		// the value after index does not depend on the value at index
		next := t.valueAfterUpdate(index+1, old)
		deltas = t.setBoundary(deltas, index+1, value, next)
	}
	return deltas
}

// valueAfterUpdate returns the value at index when the entry before it was
// just rewritten and used to hold prev.
func (t *Tracker[V]) valueAfterUpdate(index int, prev V) V {
	if c, ok := t.changes.Get(Change[V]{Index: index}); ok {
		return c.To
	}
	return prev
}

// setBoundary makes the transition at index match from -> to, dropping it
// when the values are equal, and appends what it did to deltas.
func (t *Tracker[V]) setBoundary(deltas []Delta[V], index int, from, to V) []Delta[V] {
	existing, had := t.changes.Get(Change[V]{Index: index})
	want := Change[V]{Index: index, From: from, To: to}
	if had && existing == want {
		return deltas
	}
	if had {
		t.changes.Delete(existing)
		deltas = append(deltas, Delta[V]{Kind: Removed, Change: existing})
	}
	if from != to {
		t.changes.ReplaceOrInsert(want)
		deltas = append(deltas, Delta[V]{Kind: Added, Change: want})
	}
	return deltas
}

// Reset reverts index to its predecessor's value, or to its successor's for
// the first entry. A single-entry list is reset to the zero value.
func (t *Tracker[V]) Reset(index int) []Delta[V] {
	t.check(index)
	switch {
	case index > 0:
		return t.Update(index, t.Value(index-1))
	case t.length > 1:
		return t.Update(0, t.Value(1))
	default:
		var zero V
		t.initial = zero
		return nil
	}
}

// Changes returns every transition in index order.
func (t *Tracker[V]) Changes() []Change[V] {
	out := make([]Change[V], 0, t.changes.Len())
	t.changes.Ascend(func(c Change[V]) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Materialize expands the tracker back into a plain list.
func (t *Tracker[V]) Materialize() []V {
	out := make([]V, t.length)
	if t.length == 0 {
		return out
	}
	current := t.initial
	next := 0
	changes := t.Changes()
	for i := range out {
		if next < len(changes) && changes[next].Index == i {
			current = changes[next].To
			next++
		}
		out[i] = current
	}
	return out
}
