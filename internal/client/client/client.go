package client

import (
	"context"

	pb "github.com/shadowbtc/shadowvault/internal/proto"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Mint(ctx context.Context, hash string, amount float64) (*pb.Commitment, error)
	Faucet(ctx context.Context, hash string, amount float64) (*pb.Commitment, error)
	Spend(ctx context.Context, nullifier, proof, commitmentID string) error
	Withdraw(ctx context.Context, commitmentID, address string) error
	Reset(ctx context.Context) error
	ListCommitments(ctx context.Context) ([]*pb.Commitment, error)
	ListHistory(ctx context.Context, limit int) ([]*pb.HistoryEntry, error)
	Stats(ctx context.Context) (*pb.Stats, error)
	Search(ctx context.Context, query string) (*pb.SearchResponse, error)
	ExportReport(ctx context.Context) (*pb.ExportReportResponse, error)
}
