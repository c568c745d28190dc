// Package services contains the CLI's application services. WalletService
// unlocks the local wallet, keeps the notes behind each commitment and turns
// wallet actions into ledger calls.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shadowbtc/shadowvault/internal/client/client"
	"github.com/shadowbtc/shadowvault/internal/client/models"
	"github.com/shadowbtc/shadowvault/internal/client/repositories/metadata"
	"github.com/shadowbtc/shadowvault/internal/client/repositories/notes"
	"github.com/shadowbtc/shadowvault/internal/common"
	"github.com/shadowbtc/shadowvault/internal/cryptox"
	"github.com/shadowbtc/shadowvault/internal/dbx"
	"github.com/shadowbtc/shadowvault/internal/note"
	pb "github.com/shadowbtc/shadowvault/internal/proto"
)

const saltSize = 32

var (
	ErrWrongPassphrase  = errors.New("wrong passphrase")
	ErrNoteNotSpendable = errors.New("note is not spendable")
)

// WalletService defines the wallet operations for the CLI.
//
// Unlock returns the wallet key; every note operation takes it back so the
// service itself never holds key material.
type WalletService interface {
	Unlock(ctx context.Context, passphrase []byte) ([]byte, error)
	Mint(ctx context.Context, walletKey []byte, amount float64) (*models.Note, error)
	Faucet(ctx context.Context, walletKey []byte, amount float64) (*models.Note, error)
	Send(ctx context.Context, walletKey []byte, commitmentID string) error
	Withdraw(ctx context.Context, commitmentID, address string) error
	Notes(ctx context.Context) ([]*models.Note, error)

	Commitments(ctx context.Context) ([]*pb.Commitment, error)
	History(ctx context.Context, limit int) ([]*pb.HistoryEntry, error)
	Stats(ctx context.Context) (*pb.Stats, error)
	Search(ctx context.Context, query string) (*pb.SearchResponse, error)
	Reset(ctx context.Context) error
	Export(ctx context.Context) (*pb.ExportReportResponse, error)
	Ping(ctx context.Context) error
	Close() error
}

type walletService struct {
	client client.Client
	db     *sql.DB
	now    func() time.Time
}

func NewWalletService(c client.Client, db *sql.DB) WalletService {
	return &walletService{client: c, db: db, now: time.Now}
}

func (w *walletService) notesRepo(db dbx.DBTX) notes.Repository {
	return notes.NewSQLiteRepository(db)
}

func (w *walletService) metadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Unlock derives the wallet key from passphrase. The first unlock of a new
// wallet stores a fresh salt and the key verifier; later unlocks must match
// that verifier.
func (w *walletService) Unlock(ctx context.Context, passphrase []byte) ([]byte, error) {
	var key []byte
	err := dbx.WithTx(ctx, w.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := w.metadataRepo(tx)

		salt, err := repo.Get(ctx, metadata.KeySalt)
		if err != nil {
			return err
		}
		if salt == nil {
			salt = common.GenerateRandByteArray(saltSize)
			key = cryptox.DeriveWalletKey(passphrase, salt)
			if err := repo.Set(ctx, metadata.KeySalt, salt); err != nil {
				return err
			}
			return repo.Set(ctx, metadata.KeyVerifier, cryptox.MakeVerifier(key))
		}

		verifier, err := repo.Get(ctx, metadata.KeyVerifier)
		if err != nil {
			return err
		}
		candidate := cryptox.DeriveWalletKey(passphrase, salt)
		if subtle.ConstantTimeCompare(verifier, cryptox.MakeVerifier(candidate)) == 0 {
			common.WipeByteArray(candidate)
			return ErrWrongPassphrase
		}
		key = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return key, nil
}

func (w *walletService) Mint(ctx context.Context, walletKey []byte, amount float64) (*models.Note, error) {
	return w.create(ctx, walletKey, amount, w.client.Mint)
}

func (w *walletService) Faucet(ctx context.Context, walletKey []byte, amount float64) (*models.Note, error) {
	return w.create(ctx, walletKey, amount, w.client.Faucet)
}

// create stores the note as pending before the ledger sees its commitment,
// so a crash after the server accepted it never loses the secret. Only a
// definitive rejection deletes the pending note; a timeout or transport
// failure leaves it pending because the commitment may exist.
func (w *walletService) create(ctx context.Context, walletKey []byte, amount float64,
	mint func(ctx context.Context, hash string, amount float64) (*pb.Commitment, error)) (*models.Note, error) {

	n, err := note.New(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
	}

	sealed, nonce, err := cryptox.Seal(n, walletKey)
	if err != nil {
		return nil, fmt.Errorf("encryption error: %w", err)
	}

	repo := w.notesRepo(w.db)
	local := &models.Note{
		ID:             uuid.NewString(),
		CommitmentHash: n.Commitment(),
		Amount:         amount,
		Sealed:         sealed,
		Nonce:          nonce,
		Status:         models.NoteStatusPending,
		CreatedAt:      w.now().UTC(),
	}
	if err := repo.Insert(ctx, local); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}

	c, err := mint(ctx, local.CommitmentHash, amount)
	if err != nil {
		if !mintRejected(err) {
			return nil, fmt.Errorf("%w: note %s kept pending", err, local.ID)
		}
		if derr := repo.Delete(ctx, local.ID); derr != nil {
			return nil, errors.Join(err, derr)
		}
		return nil, err
	}

	if err := repo.Activate(ctx, local.ID, c.ID); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	local.CommitmentID = c.ID
	local.Status = models.NoteStatusUnspent
	return local, nil
}

// mintRejected reports whether the ledger refused the mint before writing
// anything.
func mintRejected(err error) bool {
	if errors.Is(err, client.ErrUnavailable) {
		return false
	}
	return errors.Is(err, common.ErrInvalidInput) || errors.Is(err, common.ErrFaucetLimit)
}

// Send spends the note behind commitmentID. The proof is the opaque token
// derived from the nullifier and the commitment.
func (w *walletService) Send(ctx context.Context, walletKey []byte, commitmentID string) error {
	repo := w.notesRepo(w.db)

	local, err := w.spendable(ctx, repo, commitmentID)
	if err != nil {
		return err
	}

	var n note.Note
	if err := cryptox.Open(local.Sealed, local.Nonce, walletKey, &n); err != nil {
		return err
	}

	nullifier := n.Nullifier(walletKey)
	proof := note.ProofToken(nullifier, local.CommitmentHash, commitmentID)

	if err := w.client.Spend(ctx, nullifier, proof, commitmentID); err != nil {
		w.syncSpent(ctx, repo, commitmentID, err)
		return err
	}
	return repo.SetStatus(ctx, commitmentID, models.NoteStatusSpent)
}

// Withdraw exits the note to address. It needs no key: the ledger does not
// consume a nullifier for withdrawals.
func (w *walletService) Withdraw(ctx context.Context, commitmentID, address string) error {
	repo := w.notesRepo(w.db)

	if _, err := w.spendable(ctx, repo, commitmentID); err != nil {
		return err
	}

	if err := w.client.Withdraw(ctx, commitmentID, address); err != nil {
		w.syncSpent(ctx, repo, commitmentID, err)
		return err
	}
	return repo.SetStatus(ctx, commitmentID, models.NoteStatusWithdrawn)
}

func (w *walletService) spendable(ctx context.Context, repo notes.Repository, commitmentID string) (*models.Note, error) {
	local, err := repo.GetByCommitmentID(ctx, commitmentID)
	if err != nil {
		return nil, err
	}
	if !local.Spendable() {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotSpendable, local.Status)
	}
	return local, nil
}

// syncSpent marks the local note spent when the ledger says it already is.
func (w *walletService) syncSpent(ctx context.Context, repo notes.Repository, commitmentID string, err error) {
	if errors.Is(err, common.ErrAlreadySpent) || errors.Is(err, common.ErrDoubleSpend) {
		_ = repo.SetStatus(ctx, commitmentID, models.NoteStatusSpent)
	}
}

func (w *walletService) Notes(ctx context.Context) ([]*models.Note, error) {
	return w.notesRepo(w.db).List(ctx)
}

func (w *walletService) Commitments(ctx context.Context) ([]*pb.Commitment, error) {
	return w.client.ListCommitments(ctx)
}

func (w *walletService) History(ctx context.Context, limit int) ([]*pb.HistoryEntry, error) {
	return w.client.ListHistory(ctx, limit)
}

func (w *walletService) Stats(ctx context.Context) (*pb.Stats, error) {
	return w.client.Stats(ctx)
}

func (w *walletService) Search(ctx context.Context, query string) (*pb.SearchResponse, error) {
	return w.client.Search(ctx, query)
}

func (w *walletService) Reset(ctx context.Context) error {
	return w.client.Reset(ctx)
}

func (w *walletService) Export(ctx context.Context) (*pb.ExportReportResponse, error) {
	return w.client.ExportReport(ctx)
}

func (w *walletService) Ping(ctx context.Context) error {
	return w.client.Ping(ctx)
}

func (w *walletService) Close() error {
	return w.client.Close()
}
