package rpc

import (
	"context"
	"fmt"

	"github.com/danielpatrickdp/mandeval/internal/support"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// #region client-struct
// SupportClient wraps a gRPC connection to a SupportService.
type SupportClient struct {
	conn *grpc.ClientConn
}
// #endregion client-struct

// #region constructor
// NewSupportClient connects to addr. Extra options are appended after the
// default insecure transport credentials.
func NewSupportClient(addr string, opts ...grpc.DialOption) (*SupportClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &SupportClient{conn: conn}, nil
}
// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *SupportClient) Close() error {
	return c.conn.Close()
}
// #endregion close

// #region estimate
// Estimate requests predicted support for cfg.
func (c *SupportClient) Estimate(ctx context.Context, cfg support.Config) (EstimateResponse, error) {
	var resp EstimateResponse
	if err := c.invoke(ctx, estimateMethod, EstimateRequest{Config: cfg}, &resp); err != nil {
		return EstimateResponse{}, fmt.Errorf("estimate rpc: %w", err)
	}
	return resp, nil
}
// #endregion estimate

// #region evaluate
// Evaluate requests the full readout for req.
func (c *SupportClient) Evaluate(ctx context.Context, req EvaluateRequest) (EvaluateResponse, error) {
	var resp EvaluateResponse
	if err := c.invoke(ctx, evaluateMethod, req, &resp); err != nil {
		return EvaluateResponse{}, fmt.Errorf("evaluate rpc: %w", err)
	}
	return resp, nil
}
// #endregion evaluate

func (c *SupportClient) invoke(ctx context.Context, method string, req, resp interface{}) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return err
	}
	return fromStruct(out, resp, false)
}
