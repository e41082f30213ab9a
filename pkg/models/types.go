package models

import (
	"fmt"
	"math"
	"sort"
)

// Pitch identifies a note in 12-tone equal temperament; 69 is A4 at 440 Hz.
type Pitch int

const (
	// ReferencePitch is the pitch of the reference frequency.
	ReferencePitch Pitch = 69
	// ReferenceFrequency is the tuning reference in Hz.
	ReferenceFrequency = 440.0
	// MaxPitch is the highest pitch accepted on input.
	MaxPitch Pitch = 127
	// MaxFinger is the highest fretting finger, the pinky.
	MaxFinger = 4
)

// NoteEvent is a single note of an input track.
type NoteEvent struct {
	Pitch       Pitch `json:"pitch"`
	StartTimeMs int64 `json:"startTimeMs"`
	DurationMs  int64 `json:"durationMs"`
}

// Position is a physical location on the fretboard. Strings are 1-indexed
// with 1 being the thinnest; fret 0 is the open string.
type Position struct {
	String int `json:"string"`
	Fret   int `json:"fret"`
}

// Open reports whether the position is an open string.
func (p Position) Open() bool {
	return p.Fret == 0
}

// Fingering is a position plus the finger pressing it. Finger 0 means no
// finger (open string); 1-4 are the fretting fingers from index to pinky.
type Fingering struct {
	String int `json:"string"`
	Fret   int `json:"fret"`
	Finger int `json:"finger"`
}

// Position drops the finger.
func (f Fingering) Position() Position {
	return Position{String: f.String, Fret: f.Fret}
}

// Open reports whether the fingering is on an open string.
func (f Fingering) Open() bool {
	return f.Fret == 0
}

// HandPosition is the fret under the index finger implied by this
// fingering: fret - finger + 1.
func (f Fingering) HandPosition() int {
	return f.Fret - f.Finger + 1
}

// FingeredNote is a note event together with the fingering chosen for it.
type FingeredNote struct {
	NoteEvent
	Fingering Fingering `json:"fingering"`
}

// Validate checks a note event is within the accepted input domain.
func (e NoteEvent) Validate() error {
	if e.Pitch < 0 || e.Pitch > MaxPitch {
		return fmt.Errorf("%w: pitch %d outside 0-%d", ErrInvalidInput, e.Pitch, MaxPitch)
	}
	if e.StartTimeMs < 0 {
		return fmt.Errorf("%w: negative start time %d", ErrInvalidInput, e.StartTimeMs)
	}
	if e.DurationMs < 0 {
		return fmt.Errorf("%w: negative duration %d", ErrInvalidInput, e.DurationMs)
	}
	return nil
}

// ValidateTrack validates every event of a track.
func ValidateTrack(events []NoteEvent) error {
	for i, e := range events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("note %d: %w", i, err)
		}
	}
	return nil
}

// Pitches returns the pitch of every event, in track order.
func Pitches(events []NoteEvent) []Pitch {
	pitches := make([]Pitch, len(events))
	for i, e := range events {
		pitches[i] = e.Pitch
	}
	return pitches
}

// UniquePitches returns the distinct pitches, ascending.
func UniquePitches(pitches []Pitch) []Pitch {
	seen := make(map[Pitch]struct{}, len(pitches))
	unique := make([]Pitch, 0, len(pitches))
	for _, p := range pitches {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })
	return unique
}

// Transpose returns a copy of events shifted by semitones.
func Transpose(events []NoteEvent, semitones int) []NoteEvent {
	out := make([]NoteEvent, len(events))
	for i, e := range events {
		e.Pitch += Pitch(semitones)
		out[i] = e
	}
	return out
}

// FrequencyFromPitch returns the equal-tempered frequency of a pitch.
func FrequencyFromPitch(p Pitch) float64 {
	return ReferenceFrequency * math.Pow(2, float64(p-ReferencePitch)/12)
}

// PitchFromFrequency returns the nearest pitch to a frequency.
func PitchFromFrequency(freq float64) Pitch {
	return Pitch(math.Round(12*math.Log2(freq/ReferenceFrequency))) + ReferencePitch
}

// CentsOff returns how far freq is from the exact frequency of p, in cents.
func CentsOff(freq float64, p Pitch) int {
	return int(math.Floor(1200 * math.Log2(freq/FrequencyFromPitch(p))))
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Name returns the scientific pitch name, e.g. "E2" for 40.
func (p Pitch) Name() string {
	octave := int(p)/12 - 1
	return fmt.Sprintf("%s%d", noteNames[int(p)%12], octave)
}
