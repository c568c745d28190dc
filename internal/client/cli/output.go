package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/shadowbtc/shadowvault/internal/client/models"
	pb "github.com/shadowbtc/shadowvault/internal/proto"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

func (a *App) success(format string, args ...any) {
	successColor.Fprintf(a.out, format+"\n", args...)
}

func (a *App) failure(err error) {
	errorColor.Fprintf(a.out, "Error: %v\n", err)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.DateTime)
}

func (a *App) render(header []string, rows [][]string) error {
	table := tablewriter.NewWriter(a.out)
	table.Header(header)
	for _, r := range rows {
		if err := table.Append(r); err != nil {
			return err
		}
	}
	return table.Render()
}

func (a *App) renderNotes(list []*models.Note) error {
	rows := make([][]string, 0, len(list))
	for _, n := range list {
		rows = append(rows, []string{n.CommitmentID, formatAmount(n.Amount), n.Status, formatTime(n.CreatedAt)})
	}
	return a.render([]string{"Commitment", "Amount", "Status", "Created"}, rows)
}

func (a *App) renderCommitments(list []*pb.Commitment) error {
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{c.ID, c.Hash, formatAmount(c.Amount), strconv.FormatBool(c.Spent), formatTime(c.CreatedAt)})
	}
	return a.render([]string{"ID", "Hash", "Amount", "Spent", "Created"}, rows)
}

func (a *App) renderHistory(entries []*pb.HistoryEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.ID, e.Kind, formatAmount(e.Amount), e.Status, e.CommitmentID, e.Address, formatTime(e.CreatedAt)})
	}
	return a.render([]string{"ID", "Kind", "Amount", "Status", "Commitment", "Address", "Created"}, rows)
}

func (a *App) renderStats(s *pb.Stats) error {
	rows := [][]string{
		{"TVL", formatAmount(s.TVL)},
		{"Total proofs", strconv.FormatInt(s.TotalProofs, 10)},
		{"Privacy score", fmt.Sprintf("%.1f", s.PrivacyScore)},
		{"History entries", strconv.FormatInt(s.HistoryCount, 10)},
		{"Commitments", strconv.FormatInt(s.CommitmentCount, 10)},
		{"Unspent", strconv.FormatInt(s.UnspentCount, 10)},
		{"Nullifiers", strconv.FormatInt(s.NullifierCount, 10)},
	}
	return a.render([]string{"Metric", "Value"}, rows)
}
