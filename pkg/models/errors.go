package models

import (
	"errors"
	"fmt"
)

// Error taxonomy of the fingering engine. Callers match with errors.Is;
// the typed errors below unwrap to these sentinels.
var (
	// ErrInvalidInput is returned for malformed or empty input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnreachablePitch is returned when no string/fret produces a pitch.
	ErrUnreachablePitch = errors.New("unreachable pitch")
	// ErrNoViableFretRange is returned when no fret window covers a pitch set.
	ErrNoViableFretRange = errors.New("no viable fret range")
	// ErrNoFingeringAlternatives signals a defect in candidate generation.
	ErrNoFingeringAlternatives = errors.New("no fingering alternatives")
	// ErrUnknownInstrument is returned by instrument lookups.
	ErrUnknownInstrument = errors.New("unknown instrument")
)

// UnreachablePitchError reports a pitch outside an instrument's reach.
type UnreachablePitchError struct {
	Instrument string
	Pitch      Pitch
}

func (e *UnreachablePitchError) Error() string {
	return fmt.Sprintf("unreachable pitch: %d (%s) cannot be played on the %s", e.Pitch, e.Pitch.Name(), e.Instrument)
}

func (e *UnreachablePitchError) Unwrap() error { return ErrUnreachablePitch }

// NoViableFretRangeError reports a pitch set no single fret window can host.
type NoViableFretRangeError struct {
	Instrument string
	Pitches    []Pitch
}

func (e *NoViableFretRangeError) Error() string {
	return fmt.Sprintf("no viable fret range: pitches %v on the %s", e.Pitches, e.Instrument)
}

func (e *NoViableFretRangeError) Unwrap() error { return ErrNoViableFretRange }

// NoFingeringAlternativesError reports a pitch left without candidates.
type NoFingeringAlternativesError struct {
	Instrument string
	Pitch      Pitch
	Lo, Hi     int
	Fingers    []int
}

func (e *NoFingeringAlternativesError) Error() string {
	return fmt.Sprintf("no fingering alternatives: pitch %d with fingers %v in frets %d-%d on the %s",
		e.Pitch, e.Fingers, e.Lo, e.Hi, e.Instrument)
}

func (e *NoFingeringAlternativesError) Unwrap() error { return ErrNoFingeringAlternatives }

// UnknownInstrumentError reports a lookup of an unregistered instrument.
type UnknownInstrumentError struct {
	Name string
}

func (e *UnknownInstrumentError) Error() string {
	return fmt.Sprintf("unknown instrument: %q", e.Name)
}

func (e *UnknownInstrumentError) Unwrap() error { return ErrUnknownInstrument }
