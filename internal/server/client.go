package server

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Client calls a remote FingeringService.
type Client struct {
	conn  grpc.ClientConnInterface
	close func() error
}

// Dial connects to the fingering service at target without transport
// security.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", target, err)
	}
	return &Client{conn: conn, close: conn.Close}, nil
}

// NewClient wraps an existing connection. Close does not close it.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn, close: func() error { return nil }}
}

// Close releases the connection opened by Dial.
func (c *Client) Close() error {
	return c.close()
}

// FingerTrack asks the server to finger a track.
func (c *Client) FingerTrack(ctx context.Context, req *FingerTrackRequest) (*FingerTrackResponse, error) {
	in, err := EncodeFingerTrackRequest(req)
	if err != nil {
		return nil, err
	}
	out := dynamicpb.NewMessage(schema.FingerTrackResponse)
	if err := c.conn.Invoke(ctx, FingerTrackMethod, in, out); err != nil {
		return nil, err
	}
	return DecodeFingerTrackResponse(out), nil
}

// GetFingering fetches a stored run.
func (c *Client) GetFingering(ctx context.Context, runID string) (*FingerTrackResponse, error) {
	out := dynamicpb.NewMessage(schema.FingerTrackResponse)
	if err := c.conn.Invoke(ctx, GetFingeringMethod, encodeGetFingeringRequest(runID), out); err != nil {
		return nil, err
	}
	return DecodeFingerTrackResponse(out), nil
}

// ListInstruments lists the instruments the server knows.
func (c *Client) ListInstruments(ctx context.Context) ([]InstrumentInfo, error) {
	out := dynamicpb.NewMessage(schema.ListInstrumentsResponse)
	if err := c.conn.Invoke(ctx, ListInstrumentsMethod, dynamicpb.NewMessage(schema.ListInstrumentsRequest), out); err != nil {
		return nil, err
	}
	return DecodeInstruments(out), nil
}
