// Package fretboard models fretted (and unfretted) string instruments:
// the mapping between physical positions and pitches, the fret windows a
// set of pitches can be played in, the candidate fingerings per pitch and
// the transpositions that make a track most compact on the neck.
//
// Instruments are immutable values. Every derived table is computed once at
// construction, so an *Instrument may be shared freely between goroutines.
package fretboard
