package grpc

import (
	"context"

	"github.com/shadowbtc/shadowvault/internal/common"
	pb "github.com/shadowbtc/shadowvault/internal/proto"
	"github.com/shadowbtc/shadowvault/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func decode(in *structpb.Struct, msg any) error {
	if err := pb.Decode(in, msg); err != nil {
		return status.Error(codes.InvalidArgument, common.ErrInvalidInput.Error()+": "+err.Error())
	}
	return nil
}

func encode(msg any) (*structpb.Struct, error) {
	out, err := pb.Encode(msg)
	if err != nil {
		return nil, status.Error(codes.Internal, common.ErrorInternal.Error())
	}
	return out, nil
}

func (s *GRPCServer) Mint(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.MintRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	c, err := s.ledger.Mint(ctx, req.Hash, req.Amount)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(commitmentToPB(c))
}

func (s *GRPCServer) Faucet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.MintRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	c, err := s.ledger.Faucet(ctx, req.Hash, req.Amount)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(commitmentToPB(c))
}

func (s *GRPCServer) Spend(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.SpendRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	if err := s.ledger.Spend(ctx, req.Nullifier, req.Proof, req.CommitmentID); err != nil {
		return nil, toStatus(err)
	}
	return encode(pb.Empty{})
}

func (s *GRPCServer) Withdraw(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.WithdrawRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	if err := s.ledger.Withdraw(ctx, req.CommitmentID, req.Address); err != nil {
		return nil, toStatus(err)
	}
	return encode(pb.Empty{})
}

func (s *GRPCServer) Reset(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := s.ledger.Reset(ctx); err != nil {
		return nil, toStatus(err)
	}
	return encode(pb.Empty{})
}

func (s *GRPCServer) ListCommitments(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	list, err := s.ledger.ListUnspentCommitments(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := pb.ListCommitmentsResponse{Commitments: make([]*pb.Commitment, 0, len(list))}
	for _, c := range list {
		resp.Commitments = append(resp.Commitments, commitmentToPB(c))
	}
	return encode(resp)
}

func (s *GRPCServer) ListHistory(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.ListHistoryRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	entries, err := s.ledger.ListHistory(ctx, req.Limit)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(pb.ListHistoryResponse{Entries: historyToPB(entries)})
}

func (s *GRPCServer) Stats(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	st, err := s.ledger.Stats(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(pb.Stats{
		TVL:             st.TVL,
		TotalProofs:     st.TotalProofs,
		PrivacyScore:    st.PrivacyScore,
		HistoryCount:    st.HistoryCount,
		CommitmentCount: st.CommitmentCount,
		UnspentCount:    st.UnspentCount,
		NullifierCount:  st.NullifierCount,
	})
}

func (s *GRPCServer) Search(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.SearchRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	r, err := s.ledger.Search(ctx, req.Query)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := pb.SearchResponse{
		Commitments: make([]*pb.Commitment, 0, len(r.Commitments)),
		History:     historyToPB(r.History),
	}
	for _, c := range r.Commitments {
		resp.Commitments = append(resp.Commitments, commitmentToPB(c))
	}
	return encode(resp)
}

func (s *GRPCServer) ExportReport(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	stored, err := s.ledger.ExportReport(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(pb.ExportReportResponse{Key: stored.Key, URL: stored.URL})
}

func (s *GRPCServer) Ping(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(pb.PingResponse{Status: "OK"})
}

func commitmentToPB(c *models.Commitment) *pb.Commitment {
	return &pb.Commitment{
		ID:        c.ID,
		Hash:      c.Hash,
		Amount:    c.Amount,
		CreatedAt: c.CreatedAt,
		Spent:     c.Spent,
	}
}

func historyToPB(entries []*models.HistoryEntry) []*pb.HistoryEntry {
	out := make([]*pb.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, &pb.HistoryEntry{
			ID:           e.ID,
			Kind:         e.Kind,
			Amount:       e.Amount,
			Status:       e.Status,
			CommitmentID: e.CommitmentID,
			Address:      e.Address,
			CreatedAt:    e.CreatedAt,
		})
	}
	return out
}
