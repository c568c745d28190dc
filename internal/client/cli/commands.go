package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shadowbtc/shadowvault/internal/client/models"
	"github.com/shadowbtc/shadowvault/internal/filex"
	"github.com/shadowbtc/shadowvault/internal/netx"
)

// downloadReport is a test seam for fetching the exported report.
var downloadReport = netx.DownloadPresignedURL

type command struct {
	usage    string
	minArgs  int
	maxArgs  int // -1 means unbounded
	needsKey bool
	run      func(ctx context.Context, args []string) error
}

func (a *App) commandTable() map[string]command {
	return map[string]command{
		"mint":        {usage: "mint <amount>", minArgs: 1, maxArgs: 1, needsKey: true, run: a.mint},
		"faucet":      {usage: "faucet <amount>", minArgs: 1, maxArgs: 1, needsKey: true, run: a.faucet},
		"send":        {usage: "send <commitment-id>", minArgs: 1, maxArgs: 1, needsKey: true, run: a.send},
		"withdraw":    {usage: "withdraw <commitment-id> <address>", minArgs: 2, maxArgs: 2, run: a.withdraw},
		"notes":       {usage: "notes", run: a.notes},
		"commitments": {usage: "commitments", run: a.commitments},
		"history":     {usage: "history [limit]", maxArgs: 1, run: a.history},
		"stats":       {usage: "stats", run: a.stats},
		"search":      {usage: "search <query>", minArgs: 1, maxArgs: -1, run: a.search},
		"reset":       {usage: "reset", run: a.reset},
		"export":      {usage: "export [file]", maxArgs: 1, run: a.export},
		"ping":        {usage: "ping", run: a.ping},
		"help":        {usage: "help", run: a.help},
	}
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q is not a number", ErrUsage, s)
	}
	return v, nil
}

func (a *App) mint(ctx context.Context, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	n, err := a.wallet.Mint(ctx, a.walletKey, amount)
	if err != nil {
		return err
	}
	a.printNoteCreated("Minted", n)
	return nil
}

func (a *App) faucet(ctx context.Context, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	n, err := a.wallet.Faucet(ctx, a.walletKey, amount)
	if err != nil {
		return err
	}
	a.printNoteCreated("Faucet credited", n)
	return nil
}

func (a *App) printNoteCreated(verb string, n *models.Note) {
	a.success("%s %s: commitment %s", verb, formatAmount(n.Amount), n.CommitmentID)
}

func (a *App) send(ctx context.Context, args []string) error {
	if err := a.wallet.Send(ctx, a.walletKey, args[0]); err != nil {
		return err
	}
	a.success("Spent commitment %s", args[0])
	return nil
}

func (a *App) withdraw(ctx context.Context, args []string) error {
	if err := a.wallet.Withdraw(ctx, args[0], args[1]); err != nil {
		return err
	}
	a.success("Withdrew commitment %s to %s", args[0], args[1])
	return nil
}

func (a *App) notes(ctx context.Context, _ []string) error {
	list, err := a.wallet.Notes(ctx)
	if err != nil {
		return err
	}
	return a.renderNotes(list)
}

func (a *App) commitments(ctx context.Context, _ []string) error {
	list, err := a.wallet.Commitments(ctx)
	if err != nil {
		return err
	}
	return a.renderCommitments(list)
}

func (a *App) history(ctx context.Context, args []string) error {
	limit := 0
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: limit %q is not a number", ErrUsage, args[0])
		}
		limit = v
	}
	entries, err := a.wallet.History(ctx, limit)
	if err != nil {
		return err
	}
	return a.renderHistory(entries)
}

func (a *App) stats(ctx context.Context, _ []string) error {
	s, err := a.wallet.Stats(ctx)
	if err != nil {
		return err
	}
	return a.renderStats(s)
}

func (a *App) search(ctx context.Context, args []string) error {
	res, err := a.wallet.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(res.Commitments) == 0 && len(res.History) == 0 {
		fmt.Fprintln(a.out, "No matches")
		return nil
	}
	if len(res.Commitments) > 0 {
		if err := a.renderCommitments(res.Commitments); err != nil {
			return err
		}
	}
	if len(res.History) > 0 {
		return a.renderHistory(res.History)
	}
	return nil
}

func (a *App) reset(ctx context.Context, _ []string) error {
	if err := a.wallet.Reset(ctx); err != nil {
		return err
	}
	a.success("Ledger reset")
	return nil
}

// export asks the server for a report. With a file argument the report is
// also downloaded through its presigned URL and saved there.
func (a *App) export(ctx context.Context, args []string) error {
	rep, err := a.wallet.Export(ctx)
	if err != nil {
		return err
	}
	a.success("Report uploaded: %s", rep.Key)
	fmt.Fprintln(a.out, rep.URL)

	if len(args) == 0 {
		return nil
	}
	body, err := downloadReport(ctx, nil, rep.URL)
	if err != nil {
		return err
	}
	if err := filex.WriteFile(args[0], body); err != nil {
		return err
	}
	a.success("Report saved to %s", args[0])
	return nil
}

func (a *App) ping(ctx context.Context, _ []string) error {
	if err := a.wallet.Ping(ctx); err != nil {
		return err
	}
	a.success("OK")
	return nil
}

func (a *App) help(context.Context, []string) error {
	usages := make([]string, 0, len(a.commands))
	for _, c := range a.commands {
		usages = append(usages, c.usage)
	}
	sort.Strings(usages)

	fmt.Fprintln(a.out, "Available commands:")
	for _, u := range usages {
		fmt.Fprintln(a.out, "  "+u)
	}
	fmt.Fprintln(a.out, "  exit")
	return nil
}
