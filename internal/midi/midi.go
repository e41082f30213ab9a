// Package midi converts between Standard MIDI Files and note events.
package midi

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Isinlor/guitar/pkg/models"
)

// Parameters of written files.
const (
	TicksPerQuarter = 960
	TempoBPM        = 120
	Velocity        = 100
)

// Track holds the notes of one MIDI track.
type Track struct {
	Number int
	Notes  []models.NoteEvent
}

type noteKey struct {
	channel uint8
	key     uint8
}

// Read decodes every track of a Standard MIDI File. Note-on and note-off
// messages are paired per channel and key, first in first out; notes still
// sounding at the end of a track are dropped. Notes of a track are ordered
// by start time.
func Read(r io.Reader) ([]Track, error) {
	var (
		tracks  []Track
		current = -1
		open    map[noteKey][]int64
	)
	rd := smf.ReadTracksFrom(r).Do(func(ev smf.TrackEvent) {
		if ev.TrackNo != current {
			current = ev.TrackNo
			open = make(map[noteKey][]int64)
			tracks = append(tracks, Track{Number: ev.TrackNo})
		}
		t := &tracks[len(tracks)-1]

		msg := midi.Message(ev.Message)
		var channel, key, velocity uint8
		switch {
		case msg.GetNoteStart(&channel, &key, &velocity):
			k := noteKey{channel, key}
			open[k] = append(open[k], ev.AbsMicroSeconds)
		case msg.GetNoteEnd(&channel, &key):
			k := noteKey{channel, key}
			starts := open[k]
			if len(starts) == 0 {
				return
			}
			start := starts[0]
			open[k] = starts[1:]
			startMs := roundMs(start)
			t.Notes = append(t.Notes, models.NoteEvent{
				Pitch:       models.Pitch(key),
				StartTimeMs: startMs,
				DurationMs:  roundMs(ev.AbsMicroSeconds) - startMs,
			})
		}
	})
	if err := rd.Error(); err != nil {
		return nil, fmt.Errorf("failed to read MIDI file: %w", err)
	}

	for i := range tracks {
		slices.SortStableFunc(tracks[i].Notes, func(a, b models.NoteEvent) int {
			return cmp.Compare(a.StartTimeMs, b.StartTimeMs)
		})
	}
	return tracks, nil
}

// ReadFile decodes the MIDI file at path.
func ReadFile(path string) ([]Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read MIDI file: %w", err)
	}
	return Read(bytes.NewReader(data))
}

// SelectTrack returns the track with the given number, or the first track
// with notes when number is negative.
func SelectTrack(tracks []Track, number int) (Track, error) {
	for _, t := range tracks {
		if number < 0 && len(t.Notes) > 0 || number >= 0 && t.Number == number {
			if len(t.Notes) == 0 {
				return Track{}, fmt.Errorf("%w: track %d has no notes", models.ErrInvalidInput, number)
			}
			return t, nil
		}
	}
	if number < 0 {
		return Track{}, fmt.Errorf("%w: no track with notes", models.ErrInvalidInput)
	}
	return Track{}, fmt.Errorf("%w: no track %d", models.ErrInvalidInput, number)
}

func roundMs(us int64) int64 {
	return int64(math.Round(float64(us) / 1000))
}

// event ordering at equal ticks: releases, then attacks, then releases of
// zero-length notes so they follow their own attack.
const (
	orderRelease = iota
	orderAttack
	orderZeroRelease
)

type event struct {
	tick  int64
	order int
	msg   midi.Message
}

func ticks(ms int64) int64 {
	return int64(math.Round(float64(ms) * TicksPerQuarter * TempoBPM / 60000))
}

// Write encodes notes as a format 1 Standard MIDI File: a tempo track and a
// single note track on channel 0.
func Write(w io.Writer, notes []models.NoteEvent) error {
	if err := models.ValidateTrack(notes); err != nil {
		return err
	}

	events := make([]event, 0, 2*len(notes))
	for _, n := range notes {
		key := uint8(n.Pitch)
		release := orderRelease
		if n.DurationMs == 0 {
			release = orderZeroRelease
		}
		events = append(events,
			event{tick: ticks(n.StartTimeMs), order: orderAttack, msg: midi.NoteOn(0, key, Velocity)},
			event{tick: ticks(n.StartTimeMs + n.DurationMs), order: release, msg: midi.NoteOff(0, key)},
		)
	}
	slices.SortStableFunc(events, func(a, b event) int {
		if c := cmp.Compare(a.tick, b.tick); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})

	var tempo smf.Track
	tempo.Add(0, smf.MetaMeter(4, 4))
	tempo.Add(0, smf.MetaTempo(TempoBPM))
	tempo.Close(0)

	var track smf.Track
	var last int64
	for _, e := range events {
		track.Add(uint32(e.tick-last), e.msg)
		last = e.tick
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)
	if err := s.Add(tempo); err != nil {
		return fmt.Errorf("failed to add tempo track: %w", err)
	}
	if err := s.Add(track); err != nil {
		return fmt.Errorf("failed to add note track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write MIDI file: %w", err)
	}
	return nil
}

// WriteFile encodes notes to a new MIDI file at path.
func WriteFile(path string, notes []models.NoteEvent) error {
	var buf bytes.Buffer
	if err := Write(&buf, notes); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write MIDI file: %w", err)
	}
	return nil
}
