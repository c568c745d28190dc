package client

import (
	"context"

	"github.com/shadowbtc/shadowvault/internal/common"
	pb "github.com/shadowbtc/shadowvault/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// operatorMethods carry the operator token; other calls go out without it.
var operatorMethods = map[string]struct{}{
	pb.LedgerService_Reset_FullMethodName:        {},
	pb.LedgerService_ExportReport_FullMethodName: {},
}

type GRPCClient struct {
	endpointURL   string
	conn          *grpc.ClientConn
	client        pb.LedgerServiceClient
	operatorToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if _, ok := operatorMethods[method]; ok && s.operatorToken != "" {
		ctx = withAccessToken(ctx, s.operatorToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects to the ledger at endpointURL. operatorToken may be
// empty; Reset and ExportReport are then rejected by the server.
func NewGRPCClient(endpointURL, operatorToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, operatorToken: operatorToken}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewLedgerServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// call encodes req, runs rpc and decodes the reply into resp. Either of
// req and resp may be nil.
func call(ctx context.Context, rpc func(context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error), req, resp any) error {
	if req == nil {
		req = pb.Empty{}
	}
	in, err := pb.Encode(req)
	if err != nil {
		return err
	}
	out, err := rpc(ctx, in)
	if err != nil {
		return mapError(err)
	}
	if resp == nil {
		return nil
	}
	return pb.Decode(out, resp)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	var resp pb.PingResponse
	if err := call(ctx, s.client.Ping, nil, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Mint(ctx context.Context, hash string, amount float64) (*pb.Commitment, error) {
	var resp pb.Commitment
	if err := call(ctx, s.client.Mint, &pb.MintRequest{Hash: hash, Amount: amount}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) Faucet(ctx context.Context, hash string, amount float64) (*pb.Commitment, error) {
	var resp pb.Commitment
	if err := call(ctx, s.client.Faucet, &pb.MintRequest{Hash: hash, Amount: amount}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) Spend(ctx context.Context, nullifier, proof, commitmentID string) error {
	req := &pb.SpendRequest{Nullifier: nullifier, Proof: proof, CommitmentID: commitmentID}
	return call(ctx, s.client.Spend, req, nil)
}

func (s *GRPCClient) Withdraw(ctx context.Context, commitmentID, address string) error {
	req := &pb.WithdrawRequest{CommitmentID: commitmentID, Address: address}
	return call(ctx, s.client.Withdraw, req, nil)
}

func (s *GRPCClient) Reset(ctx context.Context) error {
	return call(ctx, s.client.Reset, nil, nil)
}

func (s *GRPCClient) ListCommitments(ctx context.Context) ([]*pb.Commitment, error) {
	var resp pb.ListCommitmentsResponse
	if err := call(ctx, s.client.ListCommitments, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Commitments, nil
}

func (s *GRPCClient) ListHistory(ctx context.Context, limit int) ([]*pb.HistoryEntry, error) {
	var resp pb.ListHistoryResponse
	if err := call(ctx, s.client.ListHistory, &pb.ListHistoryRequest{Limit: limit}, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (s *GRPCClient) Stats(ctx context.Context) (*pb.Stats, error) {
	var resp pb.Stats
	if err := call(ctx, s.client.Stats, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) Search(ctx context.Context, query string) (*pb.SearchResponse, error) {
	var resp pb.SearchResponse
	if err := call(ctx, s.client.Search, &pb.SearchRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) ExportReport(ctx context.Context) (*pb.ExportReportResponse, error) {
	var resp pb.ExportReportResponse
	if err := call(ctx, s.client.ExportReport, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
