package tab

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isinlor/guitar/internal/fretboard"
	"github.com/Isinlor/guitar/pkg/models"
)

func note(pitch models.Pitch, str, fret, finger int) models.FingeredNote {
	return models.FingeredNote{
		NoteEvent: models.NoteEvent{Pitch: pitch, DurationMs: 500},
		Fingering: models.Fingering{String: str, Fret: fret, Finger: finger},
	}
}

func TestFormatOpenStrings(t *testing.T) {
	got := Format(fretboard.Guitar(), []models.FingeredNote{
		note(40, 6, 0, 0),
		note(45, 5, 0, 0),
	})
	assert.Equal(t, "1|----\n2|----\n3|----\n4|----\n5|--0-\n6|0---", got)
}

func TestLinesTwoDigitFrets(t *testing.T) {
	got := Lines(fretboard.Ukulele(), []models.FingeredNote{
		note(81, 1, 12, 4),
		note(67, 4, 0, 0),
		note(62, 3, 2, 1),
	})
	assert.Equal(t, []string{
		"1|12----",
		"2|------",
		"3|----2-",
		"4|--0---",
	}, got)
}

func TestLinesEmptyTrack(t *testing.T) {
	assert.Equal(t, []string{"1|", "2|", "3|", "4|"}, Lines(fretboard.Ukulele(), nil))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fretboard.Ukulele(), []models.FingeredNote{note(69, 1, 0, 0)}))
	assert.Equal(t, "1|0-\n2|--\n3|--\n4|--\n", buf.String())
}
