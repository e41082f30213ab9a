package server

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/Isinlor/guitar/internal/fretboard"
	"github.com/Isinlor/guitar/pkg/models"
)

// FingerTrackRequest asks for the fingering of a track.
type FingerTrackRequest struct {
	InstrumentName string             `json:"instrumentName"`
	NoteEvents     []models.NoteEvent `json:"noteEvents"`
	// Seed replays a run. Zero lets the server choose.
	Seed int64 `json:"seed,omitempty"`
}

// FingerTrackResponse is the fingering computed for a track.
type FingerTrackResponse struct {
	RunID          string                `json:"runId"`
	InstrumentName string                `json:"instrumentName"`
	Transposition  int                   `json:"transposition"`
	Complexity     int                   `json:"complexity"`
	Notes          []models.FingeredNote `json:"notes"`
	Seed           int64                 `json:"seed"`
}

// InstrumentInfo describes a registered instrument.
type InstrumentInfo struct {
	Name         string       `json:"name"`
	Strings      int          `json:"strings"`
	Frets        int          `json:"frets"`
	LowestPitch  models.Pitch `json:"lowestPitch"`
	HighestPitch models.Pitch `json:"highestPitch"`
}

// NewInstrumentInfo summarises an instrument.
func NewInstrumentInfo(in *fretboard.Instrument) InstrumentInfo {
	r := in.Range()
	return InstrumentInfo{
		Name:         in.Name(),
		Strings:      len(in.Strings()),
		Frets:        in.Frets(),
		LowestPitch:  r.Lowest,
		HighestPitch: r.Highest,
	}
}

func field(m protoreflect.Message, name string) protoreflect.FieldDescriptor {
	fd := m.Descriptor().Fields().ByName(protoreflect.Name(name))
	if fd == nil {
		panic(fmt.Sprintf("server: %s has no field %s", m.Descriptor().FullName(), name))
	}
	return fd
}

func setInt32(m protoreflect.Message, name string, v int64) error {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return fmt.Errorf("%w: %s %d out of range", models.ErrInvalidInput, name, v)
	}
	m.Set(field(m, name), protoreflect.ValueOfInt32(int32(v)))
	return nil
}

// setSmall sets an int32 field from a value known to fit, such as a
// string, fret or pitch number.
func setSmall(m protoreflect.Message, name string, v int) {
	m.Set(field(m, name), protoreflect.ValueOfInt32(int32(v)))
}

func getInt(m protoreflect.Message, name string) int64 {
	return m.Get(field(m, name)).Int()
}

func setString(m protoreflect.Message, name, v string) {
	m.Set(field(m, name), protoreflect.ValueOfString(v))
}

func getString(m protoreflect.Message, name string) string {
	return m.Get(field(m, name)).String()
}

func appendMessage(m protoreflect.Message, name string, fill func(protoreflect.Message) error) error {
	list := m.Mutable(field(m, name)).List()
	elem := list.NewElement()
	if err := fill(elem.Message()); err != nil {
		return err
	}
	list.Append(elem)
	return nil
}

func eachMessage(m protoreflect.Message, name string, fn func(protoreflect.Message)) {
	list := m.Get(field(m, name)).List()
	for i := 0; i < list.Len(); i++ {
		fn(list.Get(i).Message())
	}
}

func fillNoteEvent(m protoreflect.Message, e models.NoteEvent) error {
	if err := setInt32(m, "pitch", int64(e.Pitch)); err != nil {
		return err
	}
	if err := setInt32(m, "start_time_ms", e.StartTimeMs); err != nil {
		return err
	}
	return setInt32(m, "duration_ms", e.DurationMs)
}

func readNoteEvent(m protoreflect.Message) models.NoteEvent {
	return models.NoteEvent{
		Pitch:       models.Pitch(getInt(m, "pitch")),
		StartTimeMs: getInt(m, "start_time_ms"),
		DurationMs:  getInt(m, "duration_ms"),
	}
}

// EncodeFingerTrackRequest builds the wire message of a request.
func EncodeFingerTrackRequest(req *FingerTrackRequest) (*dynamicpb.Message, error) {
	m := dynamicpb.NewMessage(schema.FingerTrackRequest)
	setString(m, "instrument_name", req.InstrumentName)
	m.Set(field(m, "seed"), protoreflect.ValueOfInt64(req.Seed))
	for _, e := range req.NoteEvents {
		if err := appendMessage(m, "note_events", func(em protoreflect.Message) error {
			return fillNoteEvent(em, e)
		}); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DecodeFingerTrackRequest reads a request from its wire message.
func DecodeFingerTrackRequest(m protoreflect.Message) *FingerTrackRequest {
	req := &FingerTrackRequest{
		InstrumentName: getString(m, "instrument_name"),
		Seed:           getInt(m, "seed"),
	}
	eachMessage(m, "note_events", func(em protoreflect.Message) {
		req.NoteEvents = append(req.NoteEvents, readNoteEvent(em))
	})
	return req
}

// EncodeFingerTrackResponse builds the wire message of a response.
// Complexity is int64 on the wire: the hand movement term grows with the
// fourth power of the position changes. Errors are not wrapped as invalid
// input: the response was produced by the server.
func EncodeFingerTrackResponse(resp *FingerTrackResponse) (*dynamicpb.Message, error) {
	m, err := encodeFingerTrackResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response %s: %v", resp.RunID, err)
	}
	return m, nil
}

func encodeFingerTrackResponse(resp *FingerTrackResponse) (*dynamicpb.Message, error) {
	m := dynamicpb.NewMessage(schema.FingerTrackResponse)
	setString(m, "run_id", resp.RunID)
	setString(m, "instrument_name", resp.InstrumentName)
	if err := setInt32(m, "transposition", int64(resp.Transposition)); err != nil {
		return nil, err
	}
	m.Set(field(m, "complexity"), protoreflect.ValueOfInt64(int64(resp.Complexity)))
	m.Set(field(m, "seed"), protoreflect.ValueOfInt64(resp.Seed))
	for _, n := range resp.Notes {
		err := appendMessage(m, "notes", func(nm protoreflect.Message) error {
			if err := fillNoteEvent(nm, n.NoteEvent); err != nil {
				return err
			}
			fm := nm.Mutable(field(nm, "fingering")).Message()
			setSmall(fm, "string", n.Fingering.String)
			setSmall(fm, "fret", n.Fingering.Fret)
			setSmall(fm, "finger", n.Fingering.Finger)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DecodeFingerTrackResponse reads a response from its wire message.
func DecodeFingerTrackResponse(m protoreflect.Message) *FingerTrackResponse {
	resp := &FingerTrackResponse{
		RunID:          getString(m, "run_id"),
		InstrumentName: getString(m, "instrument_name"),
		Transposition:  int(getInt(m, "transposition")),
		Complexity:     int(getInt(m, "complexity")),
		Seed:           getInt(m, "seed"),
	}
	eachMessage(m, "notes", func(nm protoreflect.Message) {
		fm := nm.Get(field(nm, "fingering")).Message()
		resp.Notes = append(resp.Notes, models.FingeredNote{
			NoteEvent: readNoteEvent(nm),
			Fingering: models.Fingering{
				String: int(getInt(fm, "string")),
				Fret:   int(getInt(fm, "fret")),
				Finger: int(getInt(fm, "finger")),
			},
		})
	})
	return resp
}

func encodeGetFingeringRequest(runID string) *dynamicpb.Message {
	m := dynamicpb.NewMessage(schema.GetFingeringRequest)
	setString(m, "run_id", runID)
	return m
}

// EncodeInstruments builds a ListInstrumentsResponse.
func EncodeInstruments(infos []InstrumentInfo) *dynamicpb.Message {
	m := dynamicpb.NewMessage(schema.ListInstrumentsResponse)
	for _, info := range infos {
		_ = appendMessage(m, "instruments", func(im protoreflect.Message) error {
			setString(im, "name", info.Name)
			setSmall(im, "strings", info.Strings)
			setSmall(im, "frets", info.Frets)
			setSmall(im, "lowest_pitch", int(info.LowestPitch))
			setSmall(im, "highest_pitch", int(info.HighestPitch))
			return nil
		})
	}
	return m
}

// DecodeInstruments reads a ListInstrumentsResponse.
func DecodeInstruments(m protoreflect.Message) []InstrumentInfo {
	var out []InstrumentInfo
	eachMessage(m, "instruments", func(im protoreflect.Message) {
		out = append(out, InstrumentInfo{
			Name:         getString(im, "name"),
			Strings:      int(getInt(im, "strings")),
			Frets:        int(getInt(im, "frets")),
			LowestPitch:  models.Pitch(getInt(im, "lowest_pitch")),
			HighestPitch: models.Pitch(getInt(im, "highest_pitch")),
		})
	})
	return out
}
