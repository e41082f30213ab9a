package constraint

import (
	"fmt"

	"github.com/Isinlor/guitar/pkg/models"
)

type journalEntry struct {
	index int
	from  models.Fingering
}

// Store owns the assignment of a track and is the only way to change it.
// Every change is fanned out to the registered constraint, so the two never
// drift apart. Changes made after Mark can be undone with Rollback, in
// reverse order; marks nest.
type Store struct {
	notes      []models.NoteEvent
	assignment []models.Fingering
	constraint SoftConstraint

	journal []journalEntry
	open    int
}

// NewStore returns a store over a copy of initial scored with weights.
func NewStore(notes []models.NoteEvent, initial []models.Fingering, weights Weights) *Store {
	if len(notes) != len(initial) {
		panic(fmt.Sprintf("constraint: %d notes but %d fingerings", len(notes), len(initial)))
	}
	assignment := append([]models.Fingering(nil), initial...)
	return &Store{
		notes:      notes,
		assignment: assignment,
		constraint: Build(notes, assignment, weights),
	}
}

// Len returns the number of notes.
func (s *Store) Len() int { return len(s.assignment) }

// Notes returns the track the store scores.
func (s *Store) Notes() []models.NoteEvent { return s.notes }

// Fingering returns the fingering of note i.
func (s *Store) Fingering(i int) models.Fingering { return s.assignment[i] }

// Assignment returns a copy of the current assignment.
func (s *Store) Assignment() []models.Fingering {
	return append([]models.Fingering(nil), s.assignment...)
}

// Penalty returns the current total penalty.
func (s *Store) Penalty() int { return s.constraint.Penalty() }

// Constraint returns the composite the store feeds.
func (s *Store) Constraint() SoftConstraint { return s.constraint }

// Set refingers note i.
func (s *Store) Set(i int, f models.Fingering) {
	from := s.assignment[i]
	if from == f {
		return
	}
	if s.open > 0 {
		s.journal = append(s.journal, journalEntry{index: i, from: from})
	}
	s.assignment[i] = f
	s.constraint.Apply(i, from, f)
}

// Load refingers every note that differs from a.
func (s *Store) Load(a []models.Fingering) {
	for i, f := range a {
		s.Set(i, f)
	}
}

// Mark opens a checkpoint and returns it.
func (s *Store) Mark() int {
	s.open++
	return len(s.journal)
}

// Rollback undoes every change made since mark, most recent first, and
// closes the checkpoint.
func (s *Store) Rollback(mark int) {
	for j := len(s.journal) - 1; j >= mark; j-- {
		e := s.journal[j]
		current := s.assignment[e.index]
		s.assignment[e.index] = e.from
		s.constraint.Apply(e.index, current, e.from)
	}
	s.journal = s.journal[:mark]
	s.close()
}

// Commit keeps the changes made since mark and closes the checkpoint. The
// changes stay revertible by enclosing checkpoints.
func (s *Store) Commit(mark int) {
	if mark > len(s.journal) {
		panic(fmt.Sprintf("constraint: commit of unknown checkpoint %d", mark))
	}
	s.close()
}

func (s *Store) close() {
	if s.open == 0 {
		panic("constraint: checkpoint closed twice")
	}
	s.open--
	if s.open == 0 {
		s.journal = s.journal[:0]
	}
}
