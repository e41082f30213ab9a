package server

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Isinlor/guitar/pkg/models"
)

// ErrRunNotFound is returned for lookups of unknown or evicted runs.
var ErrRunNotFound = errors.New("run not found")

// grpcCode maps an engine error to a gRPC status code.
func grpcCode(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrUnknownInstrument):
		return codes.InvalidArgument
	case errors.Is(err, models.ErrUnreachablePitch), errors.Is(err, models.ErrNoViableFretRange):
		return codes.FailedPrecondition
	case errors.Is(err, ErrRunNotFound):
		return codes.NotFound
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}

// toStatus converts an engine error into a gRPC status error.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(grpcCode(err), err.Error())
}

// httpStatus maps an engine error to an HTTP status code.
func httpStatus(err error) int {
	switch grpcCode(err) {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.FailedPrecondition:
		return http.StatusUnprocessableEntity
	case codes.NotFound:
		return http.StatusNotFound
	case codes.Canceled, codes.DeadlineExceeded:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
