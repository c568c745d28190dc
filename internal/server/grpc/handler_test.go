package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shadowbtc/shadowvault/internal/common"
	"github.com/shadowbtc/shadowvault/internal/logging"
	pb "github.com/shadowbtc/shadowvault/internal/proto"
	"github.com/shadowbtc/shadowvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// fakeLedger records the last call and returns canned values.
type fakeLedger struct {
	err error

	gotHash, gotNullifier, gotProof, gotID, gotAddress, gotQuery string
	gotAmount                                                    float64
	gotLimit                                                     int
	resetCalled                                                  bool

	commitments []*models.Commitment
	history     []*models.HistoryEntry
	stats       *models.Stats
}

func (f *fakeLedger) Mint(_ context.Context, hash string, amount float64) (*models.Commitment, error) {
	f.gotHash, f.gotAmount = hash, amount
	if f.err != nil {
		return nil, f.err
	}
	return &models.Commitment{ID: "c1", Hash: hash, Amount: amount, CreatedAt: time.Unix(100, 0).UTC()}, nil
}

func (f *fakeLedger) Faucet(ctx context.Context, hash string, amount float64) (*models.Commitment, error) {
	return f.Mint(ctx, hash, amount)
}

func (f *fakeLedger) Spend(_ context.Context, nullifier, proof, id string) error {
	f.gotNullifier, f.gotProof, f.gotID = nullifier, proof, id
	return f.err
}

func (f *fakeLedger) Withdraw(_ context.Context, id, address string) error {
	f.gotID, f.gotAddress = id, address
	return f.err
}

func (f *fakeLedger) Reset(context.Context) error {
	f.resetCalled = true
	return f.err
}

func (f *fakeLedger) ListUnspentCommitments(context.Context) ([]*models.Commitment, error) {
	return f.commitments, f.err
}

func (f *fakeLedger) ListHistory(_ context.Context, limit int) ([]*models.HistoryEntry, error) {
	f.gotLimit = limit
	return f.history, f.err
}

func (f *fakeLedger) Stats(context.Context) (*models.Stats, error) {
	return f.stats, f.err
}

func (f *fakeLedger) Search(_ context.Context, q string) (*models.SearchResult, error) {
	f.gotQuery = q
	if f.err != nil {
		return nil, f.err
	}
	return &models.SearchResult{Commitments: f.commitments, History: f.history}, nil
}

func (f *fakeLedger) ExportReport(context.Context) (*models.StoredReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.StoredReport{Key: "reports/k.json", URL: "https://u"}, nil
}

func newTestServer(l Ledger) *GRPCServer {
	s, _ := NewGRPCServer("127.0.0.1:0", logging.Nop{}, l, "secret")
	return s
}

func mustEncode(t *testing.T, msg any) *structpb.Struct {
	t.Helper()
	s, err := pb.Encode(msg)
	require.NoError(t, err)
	return s
}

func TestHandler_Mint(t *testing.T) {
	f := &fakeLedger{}
	s := newTestServer(f)

	out, err := s.Mint(context.Background(), mustEncode(t, pb.MintRequest{Hash: "h1", Amount: 0.5}))
	require.NoError(t, err)
	assert.Equal(t, "h1", f.gotHash)
	assert.Equal(t, 0.5, f.gotAmount)

	var c pb.Commitment
	require.NoError(t, pb.Decode(out, &c))
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, 0.5, c.Amount)
	assert.False(t, c.Spent)
	assert.Equal(t, time.Unix(100, 0).UTC(), c.CreatedAt)
}

func TestHandler_MintBadRequest(t *testing.T) {
	s := newTestServer(&fakeLedger{})

	in, err := structpb.NewStruct(map[string]any{"amount": "lots"})
	require.NoError(t, err)

	_, err = s.Mint(context.Background(), in)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHandler_SpendAndWithdraw(t *testing.T) {
	f := &fakeLedger{}
	s := newTestServer(f)
	ctx := context.Background()

	_, err := s.Spend(ctx, mustEncode(t, pb.SpendRequest{Nullifier: "n1", Proof: "p", CommitmentID: "c1"}))
	require.NoError(t, err)
	assert.Equal(t, "n1", f.gotNullifier)
	assert.Equal(t, "p", f.gotProof)
	assert.Equal(t, "c1", f.gotID)

	_, err = s.Withdraw(ctx, mustEncode(t, pb.WithdrawRequest{CommitmentID: "c2", Address: "addr"}))
	require.NoError(t, err)
	assert.Equal(t, "c2", f.gotID)
	assert.Equal(t, "addr", f.gotAddress)
}

func TestHandler_ListsAndStats(t *testing.T) {
	at := time.Unix(200, 0).UTC()
	f := &fakeLedger{
		commitments: []*models.Commitment{{ID: "c1", Hash: "h", Amount: 1, CreatedAt: at}},
		history:     []*models.HistoryEntry{{ID: "e1", Kind: common.KindWithdraw, Amount: 1, Status: common.StatusConfirmed, CommitmentID: "c1", Address: "a", CreatedAt: at}},
		stats:       &models.Stats{TVL: 1, TotalProofs: 2, PrivacyScore: 50, HistoryCount: 1, CommitmentCount: 1, UnspentCount: 1},
	}
	s := newTestServer(f)
	ctx := context.Background()

	out, err := s.ListCommitments(ctx, &structpb.Struct{})
	require.NoError(t, err)
	var lc pb.ListCommitmentsResponse
	require.NoError(t, pb.Decode(out, &lc))
	require.Len(t, lc.Commitments, 1)
	assert.Equal(t, "c1", lc.Commitments[0].ID)

	out, err = s.ListHistory(ctx, mustEncode(t, pb.ListHistoryRequest{Limit: 7}))
	require.NoError(t, err)
	assert.Equal(t, 7, f.gotLimit)
	var lh pb.ListHistoryResponse
	require.NoError(t, pb.Decode(out, &lh))
	require.Len(t, lh.Entries, 1)
	assert.Equal(t, "a", lh.Entries[0].Address)

	out, err = s.Stats(ctx, nil)
	require.NoError(t, err)
	var st pb.Stats
	require.NoError(t, pb.Decode(out, &st))
	assert.Equal(t, pb.Stats{TVL: 1, TotalProofs: 2, PrivacyScore: 50, HistoryCount: 1, CommitmentCount: 1, UnspentCount: 1}, st)

	out, err = s.Search(ctx, mustEncode(t, pb.SearchRequest{Query: "C1"}))
	require.NoError(t, err)
	assert.Equal(t, "C1", f.gotQuery)
	var sr pb.SearchResponse
	require.NoError(t, pb.Decode(out, &sr))
	assert.Len(t, sr.Commitments, 1)
	assert.Len(t, sr.History, 1)
}

func TestHandler_EmptyListsEncodeAsArrays(t *testing.T) {
	s := newTestServer(&fakeLedger{})

	out, err := s.ListCommitments(context.Background(), nil)
	require.NoError(t, err)
	v, ok := out.GetFields()["commitments"]
	require.True(t, ok)
	assert.NotNil(t, v.GetListValue())
}

func TestHandler_ResetExportPing(t *testing.T) {
	f := &fakeLedger{}
	s := newTestServer(f)
	ctx := context.Background()

	_, err := s.Reset(ctx, nil)
	require.NoError(t, err)
	assert.True(t, f.resetCalled)

	out, err := s.ExportReport(ctx, nil)
	require.NoError(t, err)
	var er pb.ExportReportResponse
	require.NoError(t, pb.Decode(out, &er))
	assert.Equal(t, "reports/k.json", er.Key)
	assert.Equal(t, "https://u", er.URL)

	out, err = s.Ping(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "OK", out.AsMap()["status"])
}

func TestHandler_ErrorsMapToCodes(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("%w: empty commitment hash", common.ErrInvalidInput), codes.InvalidArgument},
		{common.ErrDoubleSpend, codes.AlreadyExists},
		{common.ErrInvalidProof, codes.InvalidArgument},
		{common.ErrorNotFound, codes.NotFound},
		{common.ErrAlreadySpent, codes.FailedPrecondition},
		{fmt.Errorf("%w: %w", common.ErrInvalidOrSpent, common.ErrorNotFound), codes.FailedPrecondition},
		{common.ErrFaucetLimit, codes.ResourceExhausted},
		{fmt.Errorf("%w: %w", common.ErrStorageFailure, errors.New("pq: secret detail")), codes.Internal},
		{errors.New("anything"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			s := newTestServer(&fakeLedger{err: tt.err})
			_, err := s.Spend(context.Background(), mustEncode(t, pb.SpendRequest{Nullifier: "n", Proof: "p", CommitmentID: "c"}))
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
			assert.NotContains(t, st.Message(), "secret detail")
		})
	}
}

func TestToStatus_KeepsSentinelPrefix(t *testing.T) {
	err := toStatus(fmt.Errorf("%w: %w", common.ErrInvalidOrSpent, common.ErrAlreadySpent))
	st, _ := status.FromError(err)
	assert.Equal(t, "invalid or spent commitment: commitment already spent", st.Message())

	st, _ = status.FromError(toStatus(fmt.Errorf("%w: boom", common.ErrStorageFailure)))
	assert.Equal(t, common.ErrStorageFailure.Error(), st.Message())
}
