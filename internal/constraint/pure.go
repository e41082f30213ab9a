package constraint

import (
	"github.com/Isinlor/guitar/pkg/models"
	"github.com/Isinlor/guitar/pkg/utils"
)

func uniqueCount[K comparable](a []models.Fingering, key func(models.Fingering) K) int {
	seen := make(map[K]struct{}, len(a))
	for _, f := range a {
		seen[key(f)] = struct{}{}
	}
	return len(seen)
}

func distinctSum(a []models.Fingering, key func(models.Fingering) int) int {
	seen := make(map[int]struct{}, len(a))
	sum := 0
	for _, f := range a {
		k := key(f)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			sum += k
		}
	}
	return sum
}

// LessUsedFingeringsPerNotePenalty counts, per pitch, the notes not played
// with that pitch's most used fingering.
func LessUsedFingeringsPerNotePenalty(notes []models.NoteEvent, a []models.Fingering) int {
	counts := make(map[models.Pitch]map[models.Fingering]int)
	for i, f := range a {
		p := notes[i].Pitch
		if counts[p] == nil {
			counts[p] = make(map[models.Fingering]int)
		}
		counts[p][f]++
	}
	penalty := 0
	for _, perFingering := range counts {
		total, most := 0, 0
		for _, c := range perFingering {
			total += c
			most = max(most, c)
		}
		penalty += total - most
	}
	return penalty
}

// FingerCrossingPenalty counts adjacent pairs where fret and finger move in
// different directions.
func FingerCrossingPenalty(a []models.Fingering) int {
	penalty := 0
	for i := 0; i+1 < len(a); i++ {
		penalty += crossingPenalty(a[i], a[i+1])
	}
	return penalty
}

// FingerVelocityPenalty sums the velocity of a finger sliding between
// consecutive fretted notes.
func FingerVelocityPenalty(notes []models.NoteEvent, a []models.Fingering) int {
	penalty := 0
	for i := 0; i+1 < len(a); i++ {
		penalty += velocityPenalty(a[i], a[i+1], notes[i+1].StartTimeMs-notes[i].StartTimeMs)
	}
	return penalty
}

// FingerStringJumpingPenalty sums, for every fretting finger, the string
// distance between consecutive uses of that finger.
func FingerStringJumpingPenalty(a []models.Fingering) int {
	var last [models.MaxFinger + 1]int
	penalty := 0
	for _, f := range a {
		if !fretting(f.Finger) {
			continue
		}
		if last[f.Finger] != 0 {
			penalty += utils.Abs(f.String - last[f.Finger])
		}
		last[f.Finger] = f.String
	}
	return penalty
}

// HandMovementPenalty scores the hand shifts between consecutive fretted
// notes, skipping open strings, plus the number of shifts to the fourth.
func HandMovementPenalty(a []models.Fingering) int {
	penalty, shifts := 0, 0
	previous, seen := 0, false
	for _, f := range a {
		if f.Open() {
			continue
		}
		position := f.HandPosition()
		if seen && position != previous {
			penalty += handShiftCost(previous, position)
			shifts++
		}
		previous, seen = position, true
	}
	return penalty + utils.IntPow(shifts, 4)
}
