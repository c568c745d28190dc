package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/shadowbtc/shadowvault/internal/client/client"
	"github.com/shadowbtc/shadowvault/internal/client/config"
	"github.com/shadowbtc/shadowvault/internal/client/services"
	"github.com/shadowbtc/shadowvault/internal/common"
	"github.com/shadowbtc/shadowvault/internal/logging"
	"github.com/shadowbtc/shadowvault/internal/server/auth"

	_ "modernc.org/sqlite"
)

// operatorTokenTTL bounds the token the CLI signs for reset and export.
const operatorTokenTTL = 5 * time.Minute

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

type App struct {
	config    *config.Config
	wallet    services.WalletService
	db        *sql.DB
	logger    logging.Logger
	walletKey []byte
	reader    *bufio.Reader
	out       io.Writer
	commands  map[string]command
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stderr, c.LogLevel)
	goose.SetLogger(logging.NewMigrationLogger(logger.With("module", "migrations")))

	db, err := client.InitDatabase(ctx, c.WalletPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing wallet database: %w", err)
	}

	var token string
	if c.SecretKey != "" {
		token, err = auth.GenerateOperatorToken([]byte(c.SecretKey), operatorTokenTTL)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, token)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, services.NewWalletService(apiClient, db), logger, os.Stdin, os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, w services.WalletService, l logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		config: c,
		wallet: w,
		logger: l.With("module", "cli"),
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.commands = a.commandTable()
	return a
}

// Run executes args as a single command, or starts the REPL when args is
// empty.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.Close()

	if len(args) == 0 {
		runREPL(ctx, a, a.reader, a.out)
		return nil
	}
	return a.Execute(ctx, args[0], args[1:])
}

func (a *App) Close() {
	common.WipeByteArray(a.walletKey)
	a.walletKey = nil
	if err := a.wallet.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing client", "error", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// Execute runs one command. Commands that need the wallet key unlock the
// wallet first; the ledger call itself runs under the request timeout.
func (a *App) Execute(ctx context.Context, name string, args []string) error {
	cmd, ok := a.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		return fmt.Errorf("%w: %s", ErrUsage, cmd.usage)
	}

	if cmd.needsKey {
		if err := a.unlock(ctx); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	err := cmd.run(ctx, args)
	if err != nil {
		a.logger.Debug(ctx, "command failed", "command", name, "error", err)
	}
	return err
}

func (a *App) unlock(ctx context.Context) error {
	if a.walletKey != nil {
		return nil
	}
	passphrase, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	key, err := a.wallet.Unlock(ctx, passphrase)
	if err != nil {
		return err
	}
	a.walletKey = key
	return nil
}
