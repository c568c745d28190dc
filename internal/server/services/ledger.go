// Package services contains the server-side business logic. LedgerService
// owns the shielded ledger: commitments, the used-nullifier set and the
// history trail.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shadowbtc/shadowvault/internal/common"
	"github.com/shadowbtc/shadowvault/internal/dbx"
	"github.com/shadowbtc/shadowvault/internal/logging"
	"github.com/shadowbtc/shadowvault/internal/server/config"
	"github.com/shadowbtc/shadowvault/internal/server/models"
	"github.com/shadowbtc/shadowvault/internal/server/repositories/repomanager"
	"github.com/shadowbtc/shadowvault/internal/server/stats"
)

// LedgerService is the only writer of ledger state. Every mutation runs
// under mu and inside one database transaction; every query reads one
// snapshot.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
	logger      logging.Logger

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *LedgerService {
	return &LedgerService{
		db:          db,
		repomanager: m,
		config:      cfg,
		logger:      logger.With("module", "ledger"),
		now:         func() time.Time { return time.Now().UTC() },
		newID:       func() string { return uuid.NewString() },
	}
}

// Mint records a new unspent commitment and its "mint" history entry.
func (s *LedgerService) Mint(ctx context.Context, hash string, amount float64) (*models.Commitment, error) {
	return s.create(ctx, common.KindMint, hash, amount)
}

// Faucet mints like Mint but is capped at config.FaucetMaxAmount and is
// recorded with kind "faucet".
func (s *LedgerService) Faucet(ctx context.Context, hash string, amount float64) (*models.Commitment, error) {
	if s.config.FaucetMaxAmount > 0 && amount > s.config.FaucetMaxAmount {
		s.logger.Warn(ctx, "faucet request rejected", "amount", amount, "max", s.config.FaucetMaxAmount)
		return nil, fmt.Errorf("%w: max %s", common.ErrFaucetLimit, models.FormatAmount(s.config.FaucetMaxAmount))
	}
	return s.create(ctx, common.KindFaucet, hash, amount)
}

func (s *LedgerService) create(ctx context.Context, kind, hash string, amount float64) (*models.Commitment, error) {
	if hash == "" {
		return nil, fmt.Errorf("%w: empty commitment hash", common.ErrInvalidInput)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive number", common.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := &models.Commitment{
		ID:        s.newID(),
		Hash:      hash,
		Amount:    amount,
		CreatedAt: now,
	}
	entry := &models.HistoryEntry{
		ID:           s.newID(),
		Kind:         kind,
		Amount:       amount,
		Status:       common.StatusConfirmed,
		CommitmentID: c.ID,
		CreatedAt:    now,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Commitments(tx).Create(ctx, c); err != nil {
			return err
		}
		return s.repomanager.History(tx).Append(ctx, entry)
	})
	if err != nil {
		return nil, s.fail(ctx, kind, err)
	}

	s.logger.Info(ctx, "commitment created", "kind", kind, "id", c.ID, "amount", amount)
	return c, nil
}

// Spend consumes commitmentID with a fresh nullifier. The checks run in a
// fixed order: used nullifier, empty proof, unknown commitment, spent
// commitment. The proof is opaque and only has to be non-empty.
func (s *LedgerService) Spend(ctx context.Context, nullifier, proof, commitmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var amount float64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		nullifierRepo := s.repomanager.Nullifiers(tx)
		commitmentRepo := s.repomanager.Commitments(tx)

		used, err := nullifierRepo.Exists(ctx, nullifier)
		if err != nil {
			return err
		}
		if used {
			return common.ErrDoubleSpend
		}

		if proof == "" {
			return common.ErrInvalidProof
		}

		c, err := commitmentRepo.GetForUpdate(ctx, commitmentID)
		if err != nil {
			return err
		}
		if c.Spent {
			return common.ErrAlreadySpent
		}
		amount = c.Amount

		now := s.now()
		if err := commitmentRepo.MarkSpent(ctx, c.ID); err != nil {
			return err
		}
		if err := nullifierRepo.Insert(ctx, nullifier, now); err != nil {
			return err
		}
		return s.repomanager.History(tx).Append(ctx, &models.HistoryEntry{
			ID:           s.newID(),
			Kind:         common.KindTransfer,
			Amount:       c.Amount,
			Status:       common.StatusConfirmed,
			CommitmentID: c.ID,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return s.fail(ctx, "spend", err, "commitment_id", commitmentID)
	}

	s.logger.Info(ctx, "commitment spent", "id", commitmentID, "amount", amount)
	return nil
}

// Withdraw exits commitmentID to an external address. It does not consume
// a nullifier. A missing or spent commitment yields ErrInvalidOrSpent
// wrapped together with ErrorNotFound or ErrAlreadySpent.
func (s *LedgerService) Withdraw(ctx context.Context, commitmentID, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var amount float64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		commitmentRepo := s.repomanager.Commitments(tx)

		c, err := commitmentRepo.GetForUpdate(ctx, commitmentID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("%w: %w", common.ErrInvalidOrSpent, err)
			}
			return err
		}
		if c.Spent {
			return fmt.Errorf("%w: %w", common.ErrInvalidOrSpent, common.ErrAlreadySpent)
		}
		amount = c.Amount

		if err := commitmentRepo.MarkSpent(ctx, c.ID); err != nil {
			if errors.Is(err, common.ErrAlreadySpent) {
				return fmt.Errorf("%w: %w", common.ErrInvalidOrSpent, err)
			}
			return err
		}
		return s.repomanager.History(tx).Append(ctx, &models.HistoryEntry{
			ID:           s.newID(),
			Kind:         common.KindWithdraw,
			Amount:       c.Amount,
			Status:       common.StatusConfirmed,
			CommitmentID: c.ID,
			Address:      address,
			CreatedAt:    s.now(),
		})
	})
	if err != nil {
		return s.fail(ctx, "withdraw", err, "commitment_id", commitmentID)
	}

	s.logger.Info(ctx, "commitment withdrawn", "id", commitmentID, "amount", amount, "address", address)
	return nil
}

// Reset empties all three collections in one transaction.
func (s *LedgerService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		// history references commitments
		if err := s.repomanager.History(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if err := s.repomanager.Nullifiers(tx).DeleteAll(ctx); err != nil {
			return err
		}
		return s.repomanager.Commitments(tx).DeleteAll(ctx)
	})
	if err != nil {
		return s.fail(ctx, "reset", err)
	}

	s.logger.Info(ctx, "ledger reset")
	return nil
}

// ListUnspentCommitments returns every commitment that can still be spent
// or withdrawn, oldest first.
func (s *LedgerService) ListUnspentCommitments(ctx context.Context) ([]*models.Commitment, error) {
	var result []*models.Commitment
	err := s.snapshot(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		result, err = s.repomanager.Commitments(tx).ListUnspent(ctx)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "list commitments", err)
	}
	return result, nil
}

// ListHistory returns up to limit entries, most recent first. A
// non-positive limit falls back to the configured default; larger values
// are capped at the configured maximum.
func (s *LedgerService) ListHistory(ctx context.Context, limit int) ([]*models.HistoryEntry, error) {
	limit = s.historyLimit(limit)

	var result []*models.HistoryEntry
	err := s.snapshot(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		result, err = s.repomanager.History(tx).ListRecent(ctx, limit)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "list history", err)
	}
	return result, nil
}

func (s *LedgerService) historyLimit(limit int) int {
	if limit <= 0 {
		limit = s.config.HistoryDefaultLimit
	}
	if s.config.HistoryMaxLimit > 0 && limit > s.config.HistoryMaxLimit {
		limit = s.config.HistoryMaxLimit
	}
	return limit
}

// Stats aggregates one snapshot of the ledger.
func (s *LedgerService) Stats(ctx context.Context) (*models.Stats, error) {
	var st *models.Stats
	err := s.snapshot(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		st, err = s.readStats(ctx, tx)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "stats", err)
	}
	return st, nil
}

func (s *LedgerService) readStats(ctx context.Context, tx dbx.DBTX) (*models.Stats, error) {
	totals, err := s.repomanager.Commitments(tx).Totals(ctx)
	if err != nil {
		return nil, err
	}
	historyCount, err := s.repomanager.History(tx).Count(ctx)
	if err != nil {
		return nil, err
	}
	nullifierCount, err := s.repomanager.Nullifiers(tx).Count(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Stats{
		TVL:             totals.TVL,
		TotalProofs:     stats.TotalProofs(totals.Count),
		PrivacyScore:    stats.PrivacyScore(totals.Count),
		HistoryCount:    historyCount,
		CommitmentCount: totals.Count,
		UnspentCount:    totals.Unspent,
		NullifierCount:  nullifierCount,
	}, nil
}

// Search matches query case-insensitively as a substring of commitment
// id and hash, and of history id, kind and amount (four decimals). Spent
// commitments are included. An empty query matches nothing.
func (s *LedgerService) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	result := &models.SearchResult{}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return result, nil
	}

	err := s.snapshot(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		all, err := s.repomanager.Commitments(tx).ListAll(ctx)
		if err != nil {
			return err
		}
		entries, err := s.repomanager.History(tx).ListAll(ctx)
		if err != nil {
			return err
		}

		for _, c := range all {
			if containsFold(q, c.ID, c.Hash) {
				result.Commitments = append(result.Commitments, c)
			}
		}
		for _, e := range entries {
			if containsFold(q, e.ID, e.Kind, models.FormatAmount(e.Amount)) {
				result.History = append(result.History, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "search", err)
	}
	return result, nil
}

func containsFold(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func (s *LedgerService) snapshot(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return dbx.WithTx(ctx, s.db, s.repomanager.SnapshotTxOptions(), fn)
}

// fail logs err and returns it classified: ledger rejections pass through,
// anything else is wrapped as ErrStorageFailure.
func (s *LedgerService) fail(ctx context.Context, op string, err error, args ...any) error {
	args = append([]any{"op", op, "error", err}, args...)
	if isRejection(err) {
		s.logger.Warn(ctx, "ledger request rejected", args...)
		return err
	}
	s.logger.Error(ctx, "ledger storage failure", args...)
	return fmt.Errorf("%w: %w", common.ErrStorageFailure, err)
}

var rejections = []error{
	common.ErrInvalidInput,
	common.ErrDoubleSpend,
	common.ErrInvalidProof,
	common.ErrorNotFound,
	common.ErrAlreadySpent,
	common.ErrInvalidOrSpent,
	common.ErrFaucetLimit,
}

func isRejection(err error) bool {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}
