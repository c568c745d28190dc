// Package grpc exposes the ledger over gRPC as shadowvault.LedgerService.
package grpc

import (
	"context"
	"net"

	"github.com/shadowbtc/shadowvault/internal/logging"
	pb "github.com/shadowbtc/shadowvault/internal/proto"
	"github.com/shadowbtc/shadowvault/internal/server/models"
	"google.golang.org/grpc"
)

// Ledger is the part of services.LedgerService the transport needs.
type Ledger interface {
	Mint(ctx context.Context, hash string, amount float64) (*models.Commitment, error)
	Faucet(ctx context.Context, hash string, amount float64) (*models.Commitment, error)
	Spend(ctx context.Context, nullifier, proof, commitmentID string) error
	Withdraw(ctx context.Context, commitmentID, address string) error
	Reset(ctx context.Context) error
	ListUnspentCommitments(ctx context.Context) ([]*models.Commitment, error)
	ListHistory(ctx context.Context, limit int) ([]*models.HistoryEntry, error)
	Stats(ctx context.Context) (*models.Stats, error)
	Search(ctx context.Context, query string) (*models.SearchResult, error)
	ExportReport(ctx context.Context) (*models.StoredReport, error)
}

type GRPCServer struct {
	pb.UnimplementedLedgerServiceServer
	address   string
	ledger    Ledger
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, ledger Ledger, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		ledger:    ledger,
		jwtSecret: []byte(secretKey),
	}, nil
}

// NewServer builds the grpc.Server with the interceptor chain and the
// ledger service registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.operatorTokenInterceptor))
	pb.RegisterLedgerServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
