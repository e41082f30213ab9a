package constraint

import (
	"github.com/Isinlor/guitar/pkg/models"
)

// FretFinger is the (fret, finger) part of a fingering.
type FretFinger struct {
	Fret, Finger int
}

// Key extractors for the counting constraints.
func fretOf(f models.Fingering) int                    { return f.Fret }
func fingerOf(f models.Fingering) int                  { return f.Finger }
func stringOf(f models.Fingering) int                  { return f.String }
func fretFingerOf(f models.Fingering) FretFinger       { return FretFinger{f.Fret, f.Finger} }
func fingeringOf(f models.Fingering) models.Fingering { return f }

// UniqueCount penalises the number of distinct keys used by an assignment.
type UniqueCount[K comparable] struct {
	name    string
	key     func(models.Fingering) K
	counter *Counter[K]
}

// NewUniqueCount counts distinct key(f) over initial.
func NewUniqueCount[K comparable](name string, key func(models.Fingering) K, initial []models.Fingering) *UniqueCount[K] {
	u := &UniqueCount[K]{name: name, key: key, counter: NewCounter[K]()}
	for _, f := range initial {
		u.counter.Add(key(f))
	}
	return u
}

// Name implements SoftConstraint.
func (u *UniqueCount[K]) Name() string { return u.name }

// Apply implements SoftConstraint.
func (u *UniqueCount[K]) Apply(_ int, from, to models.Fingering) {
	u.counter.Remove(u.key(from))
	u.counter.Add(u.key(to))
}

// Penalty implements SoftConstraint.
func (u *UniqueCount[K]) Penalty() int { return u.counter.Unique() }

// DistinctSum penalises the sum of the distinct values in use, so that the
// same high fret played twice costs as much as once.
type DistinctSum struct {
	name    string
	key     func(models.Fingering) int
	counter *Counter[int]
	sum     int
}

// NewDistinctSum sums the distinct key(f) over initial.
func NewDistinctSum(name string, key func(models.Fingering) int, initial []models.Fingering) *DistinctSum {
	d := &DistinctSum{name: name, key: key, counter: NewCounter[int]()}
	for _, f := range initial {
		d.add(f)
	}
	return d
}

func (d *DistinctSum) add(f models.Fingering) {
	k := d.key(f)
	if d.counter.Add(k) {
		d.sum += k
	}
}

// Name implements SoftConstraint.
func (d *DistinctSum) Name() string { return d.name }

// Apply implements SoftConstraint.
func (d *DistinctSum) Apply(_ int, from, to models.Fingering) {
	k := d.key(from)
	if d.counter.Remove(k) {
		d.sum -= k
	}
	d.add(to)
}

// Penalty implements SoftConstraint.
func (d *DistinctSum) Penalty() int { return d.sum }

// tally counts the fingerings used for one pitch. histogram[c] is the number
// of fingerings used exactly c times, which lets the most used count be
// maintained without a scan.
type tally struct {
	counts    map[models.Fingering]int
	histogram map[int]int
	total     int
	max       int
}

func (t *tally) penalty() int { return t.total - t.max }

func (t *tally) add(f models.Fingering) {
	c := t.counts[f]
	if c > 0 {
		t.histogram[c]--
	}
	t.counts[f] = c + 1
	t.histogram[c+1]++
	t.total++
	t.max = max(t.max, c+1)
}

func (t *tally) remove(f models.Fingering) {
	c := t.counts[f]
	if c == 0 {
		return
	}
	t.histogram[c]--
	if c == 1 {
		delete(t.counts, f)
	} else {
		t.counts[f] = c - 1
		t.histogram[c-1]++
	}
	t.total--
	if c == t.max && t.histogram[c] == 0 {
		t.max = c - 1
	}
}

// LessUsedFingeringsPerNote penalises, for every pitch, each occurrence of
// a fingering other than the pitch's most used one.
type LessUsedFingeringsPerNote struct {
	pitches []models.Pitch
	tallies map[models.Pitch]*tally
	penalty int
}

// NewLessUsedFingeringsPerNote builds the constraint for a track.
func NewLessUsedFingeringsPerNote(notes []models.NoteEvent, initial []models.Fingering) *LessUsedFingeringsPerNote {
	l := &LessUsedFingeringsPerNote{
		pitches: models.Pitches(notes),
		tallies: make(map[models.Pitch]*tally),
	}
	for i, f := range initial {
		l.tally(l.pitches[i]).add(f)
	}
	for _, t := range l.tallies {
		l.penalty += t.penalty()
	}
	return l
}

func (l *LessUsedFingeringsPerNote) tally(p models.Pitch) *tally {
	t, ok := l.tallies[p]
	if !ok {
		t = &tally{counts: make(map[models.Fingering]int), histogram: make(map[int]int)}
		l.tallies[p] = t
	}
	return t
}

// Name implements SoftConstraint.
func (l *LessUsedFingeringsPerNote) Name() string { return MetricLessUsedFingeringsPerNote }

// Apply implements SoftConstraint.
func (l *LessUsedFingeringsPerNote) Apply(index int, from, to models.Fingering) {
	t := l.tally(l.pitches[index])
	before := t.penalty()
	t.remove(from)
	t.add(to)
	l.penalty += t.penalty() - before
}

// Penalty implements SoftConstraint.
func (l *LessUsedFingeringsPerNote) Penalty() int { return l.penalty }
