package server

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Names of the fingering service and its methods.
const (
	ProtoPackage = "guitar.v1"
	ServiceName  = ProtoPackage + ".FingeringService"

	FingerTrackMethod     = "/" + ServiceName + "/FingerTrack"
	GetFingeringMethod    = "/" + ServiceName + "/GetFingering"
	ListInstrumentsMethod = "/" + ServiceName + "/ListInstruments"
)

// Schema holds the message descriptors of the fingering service. The schema
// is declared in code and built at start-up; messages are dynamic.
type Schema struct {
	File    protoreflect.FileDescriptor
	Service protoreflect.ServiceDescriptor

	NoteEvent               protoreflect.MessageDescriptor
	Fingering               protoreflect.MessageDescriptor
	FingeredNote            protoreflect.MessageDescriptor
	Instrument              protoreflect.MessageDescriptor
	FingerTrackRequest      protoreflect.MessageDescriptor
	FingerTrackResponse     protoreflect.MessageDescriptor
	GetFingeringRequest     protoreflect.MessageDescriptor
	ListInstrumentsRequest  protoreflect.MessageDescriptor
	ListInstrumentsResponse protoreflect.MessageDescriptor
}

var schema = mustBuildSchema()

const (
	typeInt32   = descriptorpb.FieldDescriptorProto_TYPE_INT32
	typeInt64   = descriptorpb.FieldDescriptorProto_TYPE_INT64
	typeString  = descriptorpb.FieldDescriptorProto_TYPE_STRING
	typeMessage = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE

	labelOptional = descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	labelRepeated = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
)

func scalar(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Type:   typ.Enum(),
		Label:  labelOptional.Enum(),
	}
}

func message(name string, number int32, msg string, label descriptorpb.FieldDescriptorProto_Label) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(number),
		Type:     typeMessage.Enum(),
		Label:    label.Enum(),
		TypeName: proto.String("." + ProtoPackage + "." + msg),
	}
}

func method(name, in, out string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String("." + ProtoPackage + "." + in),
		OutputType: proto.String("." + ProtoPackage + "." + out),
	}
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	msg := func(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
		return &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
	}
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("guitar/v1/fingering.proto"),
		Package: proto.String(ProtoPackage),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			msg("NoteEvent",
				scalar("pitch", 1, typeInt32),
				scalar("start_time_ms", 2, typeInt32),
				scalar("duration_ms", 3, typeInt32),
			),
			msg("Fingering",
				scalar("string", 1, typeInt32),
				scalar("fret", 2, typeInt32),
				scalar("finger", 3, typeInt32),
			),
			msg("FingeredNote",
				scalar("pitch", 1, typeInt32),
				scalar("start_time_ms", 2, typeInt32),
				scalar("duration_ms", 3, typeInt32),
				message("fingering", 4, "Fingering", labelOptional),
			),
			msg("Instrument",
				scalar("name", 1, typeString),
				scalar("strings", 2, typeInt32),
				scalar("frets", 3, typeInt32),
				scalar("lowest_pitch", 4, typeInt32),
				scalar("highest_pitch", 5, typeInt32),
			),
			msg("FingerTrackRequest",
				scalar("instrument_name", 1, typeString),
				message("note_events", 2, "NoteEvent", labelRepeated),
				scalar("seed", 3, typeInt64),
			),
			msg("FingerTrackResponse",
				scalar("run_id", 1, typeString),
				scalar("instrument_name", 2, typeString),
				scalar("transposition", 3, typeInt32),
				scalar("complexity", 4, typeInt64),
				message("notes", 5, "FingeredNote", labelRepeated),
				scalar("seed", 6, typeInt64),
			),
			msg("GetFingeringRequest",
				scalar("run_id", 1, typeString),
			),
			msg("ListInstrumentsRequest"),
			msg("ListInstrumentsResponse",
				message("instruments", 1, "Instrument", labelRepeated),
			),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("FingeringService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("FingerTrack", "FingerTrackRequest", "FingerTrackResponse"),
				method("GetFingering", "GetFingeringRequest", "FingerTrackResponse"),
				method("ListInstruments", "ListInstrumentsRequest", "ListInstrumentsResponse"),
			},
		}},
	}
}

func buildSchema() (*Schema, error) {
	fd, err := protodesc.NewFile(fileDescriptorProto(), new(protoregistry.Files))
	if err != nil {
		return nil, fmt.Errorf("failed to build fingering schema: %w", err)
	}
	messages := fd.Messages()
	return &Schema{
		File:                    fd,
		Service:                 fd.Services().ByName("FingeringService"),
		NoteEvent:               messages.ByName("NoteEvent"),
		Fingering:               messages.ByName("Fingering"),
		FingeredNote:            messages.ByName("FingeredNote"),
		Instrument:              messages.ByName("Instrument"),
		FingerTrackRequest:      messages.ByName("FingerTrackRequest"),
		FingerTrackResponse:     messages.ByName("FingerTrackResponse"),
		GetFingeringRequest:     messages.ByName("GetFingeringRequest"),
		ListInstrumentsRequest:  messages.ByName("ListInstrumentsRequest"),
		ListInstrumentsResponse: messages.ByName("ListInstrumentsResponse"),
	}, nil
}

func mustBuildSchema() *Schema {
	s, err := buildSchema()
	if err != nil {
		panic(err)
	}
	return s
}

// FileDescriptorProto returns the declared schema, e.g. to serve it to
// reflection clients or to print it.
func FileDescriptorProto() *descriptorpb.FileDescriptorProto {
	return protodesc.ToFileDescriptorProto(schema.File)
}
