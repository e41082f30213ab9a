package server

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/Isinlor/guitar/pkg/logger"
	"github.com/Isinlor/guitar/pkg/utils"
)

// FingeringServiceServer is the server API of guitar.v1.FingeringService.
type FingeringServiceServer interface {
	FingerTrack(context.Context, *dynamicpb.Message) (*dynamicpb.Message, error)
	GetFingering(context.Context, *dynamicpb.Message) (*dynamicpb.Message, error)
	ListInstruments(context.Context, *dynamicpb.Message) (*dynamicpb.Message, error)
}

// FingeringGRPCServer implements FingeringServiceServer on a Service.
type FingeringGRPCServer struct {
	service *Service
}

// NewFingeringGRPCServer creates a gRPC front end for service.
func NewFingeringGRPCServer(service *Service) *FingeringGRPCServer {
	return &FingeringGRPCServer{service: service}
}

func (s *FingeringGRPCServer) FingerTrack(ctx context.Context, in *dynamicpb.Message) (*dynamicpb.Message, error) {
	req := DecodeFingerTrackRequest(in)
	if req.InstrumentName == "" {
		return nil, status.Error(codes.InvalidArgument, "instrument_name is required")
	}
	resp, err := s.service.FingerTrack(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := EncodeFingerTrackResponse(resp)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (s *FingeringGRPCServer) GetFingering(_ context.Context, in *dynamicpb.Message) (*dynamicpb.Message, error) {
	runID := getString(in, "run_id")
	if runID == "" {
		return nil, status.Error(codes.InvalidArgument, "run_id is required")
	}
	resp, err := s.service.GetFingering(runID)
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := EncodeFingerTrackResponse(resp)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (s *FingeringGRPCServer) ListInstruments(context.Context, *dynamicpb.Message) (*dynamicpb.Message, error) {
	return EncodeInstruments(s.service.Instruments()), nil
}

type unaryCall func(FingeringServiceServer, context.Context, *dynamicpb.Message) (*dynamicpb.Message, error)

// unaryHandler adapts a call on FingeringServiceServer to a grpc method
// handler decoding into a dynamic message of the input type.
func unaryHandler(fullMethod string, input func() *dynamicpb.Message, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := input()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FingeringServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FingeringServiceServer), ctx, req.(*dynamicpb.Message))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// FingeringServiceDesc describes guitar.v1.FingeringService for
// grpc.Server.RegisterService.
var FingeringServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FingeringServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "FingerTrack",
			Handler: unaryHandler(FingerTrackMethod,
				func() *dynamicpb.Message { return dynamicpb.NewMessage(schema.FingerTrackRequest) },
				FingeringServiceServer.FingerTrack),
		},
		{
			MethodName: "GetFingering",
			Handler: unaryHandler(GetFingeringMethod,
				func() *dynamicpb.Message { return dynamicpb.NewMessage(schema.GetFingeringRequest) },
				FingeringServiceServer.GetFingering),
		},
		{
			MethodName: "ListInstruments",
			Handler: unaryHandler(ListInstrumentsMethod,
				func() *dynamicpb.Message { return dynamicpb.NewMessage(schema.ListInstrumentsRequest) },
				FingeringServiceServer.ListInstruments),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "guitar/v1/fingering.proto",
}

// RegisterFingeringServiceServer registers srv with s.
func RegisterFingeringServiceServer(s grpc.ServiceRegistrar, srv FingeringServiceServer) {
	s.RegisterService(&FingeringServiceDesc, srv)
}

func loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	logger.Info("grpc request",
		"request_id", utils.GenerateRequestID(),
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start))
	return resp, err
}

// NewGRPCServer returns a gRPC server with the fingering and health
// services registered.
func NewGRPCServer(service *Service, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(loggingInterceptor)}, opts...)
	s := grpc.NewServer(opts...)
	RegisterFingeringServiceServer(s, NewFingeringGRPCServer(service))

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	return s, hs
}
