// Package tab renders fingered tracks as plain-text tablature.
package tab

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Isinlor/guitar/internal/fretboard"
	"github.com/Isinlor/guitar/pkg/models"
)

// slot is the width every note occupies on every row.
const slot = "--"

// Lines renders one row per string, highest string first. Each row is
// prefixed with the string number and holds one slot per note: the fret
// number padded with '-' on the note's string, "--" elsewhere.
func Lines(in *fretboard.Instrument, notes []models.FingeredNote) []string {
	strs := in.Strings()
	rows := make([]strings.Builder, len(strs))
	for i, s := range strs {
		rows[i].WriteString(strconv.Itoa(s))
		rows[i].WriteByte('|')
	}
	for _, n := range notes {
		for i, s := range strs {
			if s != n.Fingering.String {
				rows[i].WriteString(slot)
				continue
			}
			fret := strconv.Itoa(n.Fingering.Fret)
			rows[i].WriteString(fret)
			if pad := len(slot) - len(fret); pad > 0 {
				rows[i].WriteString(strings.Repeat("-", pad))
			}
		}
	}

	out := make([]string, len(rows))
	for i := range rows {
		out[i] = rows[i].String()
	}
	return out
}

// Format renders the tablature as a single newline separated string.
func Format(in *fretboard.Instrument, notes []models.FingeredNote) string {
	return strings.Join(Lines(in, notes), "\n")
}

// Write prints the tablature to w, followed by a newline.
func Write(w io.Writer, in *fretboard.Instrument, notes []models.FingeredNote) error {
	_, err := fmt.Fprintln(w, Format(in, notes))
	return err
}
