package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shadowbtc/shadowvault/internal/common"
	"github.com/shadowbtc/shadowvault/internal/logging"
	"github.com/shadowbtc/shadowvault/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockLedger(t *testing.T) (*LedgerService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewLedgerService(db, repomanager.NewPostgresRepositoryManager(), testConfig(), logging.Nop{}), mock
}

func TestLedger_BeginFailureIsStorageFailure(t *testing.T) {
	s, mock := newMockLedger(t)
	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	_, err := s.Mint(context.Background(), "h", 1)
	require.ErrorIs(t, err, common.ErrStorageFailure)
	assert.ErrorContains(t, err, "connection refused")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_MintInsertErrorRollsBack(t *testing.T) {
	s, mock := newMockLedger(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO commitments").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := s.Mint(context.Background(), "h", 1)
	require.ErrorIs(t, err, common.ErrStorageFailure)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_MintCommitErrorIsStorageFailure(t *testing.T) {
	s, mock := newMockLedger(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO commitments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO history").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	_, err := s.Mint(context.Background(), "h", 1)
	require.ErrorIs(t, err, common.ErrStorageFailure)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_SpendNullifierLookupErrorRollsBack(t *testing.T) {
	s, mock := newMockLedger(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM nullifiers").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := s.Spend(context.Background(), "n", "p", "id")
	require.ErrorIs(t, err, common.ErrStorageFailure)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_InvalidInputNeverTouchesStorage(t *testing.T) {
	s, mock := newMockLedger(t)
	ctx := context.Background()

	_, err := s.Mint(ctx, "", 1)
	require.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = s.Faucet(ctx, "h", -1)
	require.ErrorIs(t, err, common.ErrInvalidInput)

	r, err := s.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, r.Commitments)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_SnapshotUsesReadOnlyTx(t *testing.T) {
	s, mock := newMockLedger(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM commitments").WillReturnRows(sqlmock.NewRows([]string{"id", "hash", "amount", "created_at", "spent"}))
	mock.ExpectCommit()

	got, err := s.ListUnspentCommitments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
