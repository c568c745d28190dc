// Package proto defines the shadowvault.LedgerService gRPC contract. Every
// request and response travels as a google.protobuf.Struct envelope; the
// typed message structs in messages.go are converted with Encode/Decode.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "shadowvault.LedgerService"

const (
	LedgerService_Mint_FullMethodName            = "/shadowvault.LedgerService/Mint"
	LedgerService_Faucet_FullMethodName          = "/shadowvault.LedgerService/Faucet"
	LedgerService_Spend_FullMethodName           = "/shadowvault.LedgerService/Spend"
	LedgerService_Withdraw_FullMethodName        = "/shadowvault.LedgerService/Withdraw"
	LedgerService_Reset_FullMethodName           = "/shadowvault.LedgerService/Reset"
	LedgerService_ListCommitments_FullMethodName = "/shadowvault.LedgerService/ListCommitments"
	LedgerService_ListHistory_FullMethodName     = "/shadowvault.LedgerService/ListHistory"
	LedgerService_Stats_FullMethodName           = "/shadowvault.LedgerService/Stats"
	LedgerService_Search_FullMethodName          = "/shadowvault.LedgerService/Search"
	LedgerService_ExportReport_FullMethodName    = "/shadowvault.LedgerService/ExportReport"
	LedgerService_Ping_FullMethodName            = "/shadowvault.LedgerService/Ping"
)

// LedgerServiceServer is the server API for shadowvault.LedgerService.
type LedgerServiceServer interface {
	Mint(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Faucet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Spend(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Withdraw(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCommitments(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Stats(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Search(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportReport(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedLedgerServiceServer answers every method with
// codes.Unimplemented. Embed it to stay forward compatible.
type UnimplementedLedgerServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedLedgerServiceServer) Mint(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("Mint")
}
func (UnimplementedLedgerServiceServer) Faucet(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("Faucet")
}
func (UnimplementedLedgerServiceServer) Spend(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("Spend")
}
func (UnimplementedLedgerServiceServer) Withdraw(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("Withdraw")
}
func (UnimplementedLedgerServiceServer) Reset(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("Reset")
}
func (UnimplementedLedgerServiceServer) ListCommitments(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("ListCommitments")
}
func (UnimplementedLedgerServiceServer) ListHistory(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("ListHistory")
}
func (UnimplementedLedgerServiceServer) Stats(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("Stats")
}
func (UnimplementedLedgerServiceServer) Search(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("Search")
}
func (UnimplementedLedgerServiceServer) ExportReport(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("ExportReport")
}
func (UnimplementedLedgerServiceServer) Ping(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("Ping")
}

func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerService_ServiceDesc, srv)
}

type serverMethod func(LedgerServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call serverMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LedgerServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// LedgerService_ServiceDesc is the grpc.ServiceDesc for shadowvault.LedgerService.
var LedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Mint", Handler: unaryHandler(LedgerService_Mint_FullMethodName, LedgerServiceServer.Mint)},
		{MethodName: "Faucet", Handler: unaryHandler(LedgerService_Faucet_FullMethodName, LedgerServiceServer.Faucet)},
		{MethodName: "Spend", Handler: unaryHandler(LedgerService_Spend_FullMethodName, LedgerServiceServer.Spend)},
		{MethodName: "Withdraw", Handler: unaryHandler(LedgerService_Withdraw_FullMethodName, LedgerServiceServer.Withdraw)},
		{MethodName: "Reset", Handler: unaryHandler(LedgerService_Reset_FullMethodName, LedgerServiceServer.Reset)},
		{MethodName: "ListCommitments", Handler: unaryHandler(LedgerService_ListCommitments_FullMethodName, LedgerServiceServer.ListCommitments)},
		{MethodName: "ListHistory", Handler: unaryHandler(LedgerService_ListHistory_FullMethodName, LedgerServiceServer.ListHistory)},
		{MethodName: "Stats", Handler: unaryHandler(LedgerService_Stats_FullMethodName, LedgerServiceServer.Stats)},
		{MethodName: "Search", Handler: unaryHandler(LedgerService_Search_FullMethodName, LedgerServiceServer.Search)},
		{MethodName: "ExportReport", Handler: unaryHandler(LedgerService_ExportReport_FullMethodName, LedgerServiceServer.ExportReport)},
		{MethodName: "Ping", Handler: unaryHandler(LedgerService_Ping_FullMethodName, LedgerServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shadowvault/ledger.proto",
}

// LedgerServiceClient is the client API for shadowvault.LedgerService.
type LedgerServiceClient interface {
	Mint(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Faucet(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Spend(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Withdraw(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Reset(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListCommitments(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListHistory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Stats(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Search(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ExportReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type ledgerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerServiceClient(cc grpc.ClientConnInterface) LedgerServiceClient {
	return &ledgerServiceClient{cc}
}

func (c *ledgerServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) Mint(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LedgerService_Mint_FullMethodName, in, opts)
}
func (c *ledgerServiceClient) Faucet(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LedgerService_Faucet_FullMethodName, in, opts)
}
func (c *ledgerServiceClient) Spend(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LedgerService_Spend_FullMethodName, in, opts)
}
func (c *ledgerServiceClient) Withdraw(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LedgerService_Withdraw_FullMethodName, in, opts)
}
func (c *ledgerServiceClient) Reset(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LedgerService_Reset_FullMethodName, in, opts)
}
func (c *ledgerServiceClient) ListCommitments(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LedgerService_ListCommitments_FullMethodName, in, opts)
}
func (c *ledgerServiceClient) ListHistory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LedgerService_ListHistory_FullMethodName, in, opts)
}
func (c *ledgerServiceClient) Stats(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LedgerService_Stats_FullMethodName, in, opts)
}
func (c *ledgerServiceClient) Search(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LedgerService_Search_FullMethodName, in, opts)
}
func (c *ledgerServiceClient) ExportReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LedgerService_ExportReport_FullMethodName, in, opts)
}
func (c *ledgerServiceClient) Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LedgerService_Ping_FullMethodName, in, opts)
}
