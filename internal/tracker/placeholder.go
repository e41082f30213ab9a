package tracker

// Slot is a raw entry of a PlaceholderTracker; unset slots carry no value.
type Slot[V comparable] struct {
	Value V
	Set   bool
}

// PlaceholderTracker is a tracker whose entries may be unset. An unset entry
// resolves to the nearest set value before it, or after it when there is
// none before, so unset runs never introduce transitions of their own.
//
// Transitions of the resolved list only ever sit on set indices. The raw
// slots are kept in a second tracker so the set neighbours of an index can
// be found in logarithmic time.
type PlaceholderTracker[V comparable] struct {
	raw      *Tracker[Slot[V]]
	resolved *Tracker[V]
}

// NewPlaceholder returns a tracker of n unset entries.
func NewPlaceholder[V comparable](n int) *PlaceholderTracker[V] {
	var zero V
	return &PlaceholderTracker[V]{
		raw:      Filled(n, Slot[V]{}),
		resolved: Filled(n, zero),
	}
}

// Len returns the length of the list.
func (p *PlaceholderTracker[V]) Len() int { return p.raw.Len() }

// Transitions returns the number of transitions of the resolved list.
func (p *PlaceholderTracker[V]) Transitions() int { return p.resolved.Transitions() }

// Value returns the resolved value at index.
func (p *PlaceholderTracker[V]) Value(index int) V { return p.resolved.Value(index) }

// IsSet reports whether index holds a value of its own.
func (p *PlaceholderTracker[V]) IsSet(index int) bool { return p.raw.Value(index).Set }

// Changes returns the transitions of the resolved list.
func (p *PlaceholderTracker[V]) Changes() []Change[V] { return p.resolved.Changes() }

// Materialize returns the resolved list.
func (p *PlaceholderTracker[V]) Materialize() []V { return p.resolved.Materialize() }

// Raw returns the raw slots.
func (p *PlaceholderTracker[V]) Raw() []Slot[V] { return p.raw.Materialize() }

// Set gives index its own value and returns the resolved transitions that
// changed.
func (p *PlaceholderTracker[V]) Set(index int, value V) []Delta[V] {
	p.raw.Update(index, Slot[V]{Value: value, Set: true})

	prev, hasPrev := p.prevSet(index)
	next, hasNext := p.nextSet(index)

	var deltas []Delta[V]
	if hasPrev {
		deltas = p.resolved.setBoundary(deltas, index, prev.Value, value)
	} else {
		deltas = p.resolved.setBoundary(deltas, index, value, value)
		p.resolved.initial = value
	}
	if hasNext {
		deltas = p.resolved.setBoundary(deltas, next.Index, value, next.Value)
	}
	return deltas
}

// Unset clears index and returns the resolved transitions that changed.
func (p *PlaceholderTracker[V]) Unset(index int) []Delta[V] {
	p.raw.Update(index, Slot[V]{})

	prev, hasPrev := p.prevSet(index)
	next, hasNext := p.nextSet(index)

	var zero V
	deltas := p.resolved.setBoundary(nil, index, zero, zero)
	switch {
	case hasNext && hasPrev:
		deltas = p.resolved.setBoundary(deltas, next.Index, prev.Value, next.Value)
	case hasNext:
		deltas = p.resolved.setBoundary(deltas, next.Index, next.Value, next.Value)
		p.resolved.initial = next.Value
	case !hasPrev:
		p.resolved.initial = zero
	}
	return deltas
}

type setEntry[V comparable] struct {
	Index int
	Value V
}

// prevSet finds the nearest set slot before index.
func (p *PlaceholderTracker[V]) prevSet(index int) (setEntry[V], bool) {
	if index == 0 {
		return setEntry[V]{}, false
	}
	if s := p.raw.Value(index - 1); s.Set {
		return setEntry[V]{Index: index - 1, Value: s.Value}, true
	}
	// index-1 closes a run of unset slots; the slot before the run is set
	c, ok := p.raw.atOrBefore(index - 1)
	if !ok || c.Index == 0 {
		return setEntry[V]{}, false
	}
	return setEntry[V]{Index: c.Index - 1, Value: c.From.Value}, c.From.Set
}

// nextSet finds the nearest set slot after index.
func (p *PlaceholderTracker[V]) nextSet(index int) (setEntry[V], bool) {
	if index+1 >= p.raw.Len() {
		return setEntry[V]{}, false
	}
	if s := p.raw.Value(index + 1); s.Set {
		return setEntry[V]{Index: index + 1, Value: s.Value}, true
	}
	// index+1 opens a run of unset slots; the run ends at the next transition
	c, ok := p.raw.after(index + 1)
	if !ok {
		return setEntry[V]{}, false
	}
	return setEntry[V]{Index: c.Index, Value: c.To.Value}, c.To.Set
}
