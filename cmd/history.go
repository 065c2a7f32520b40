package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dehaleesankr/folio/internal/conversation"
	"github.com/dehaleesankr/folio/internal/db"
	"github.com/dehaleesankr/folio/internal/exchange"
)

var (
	historySession string
	historyMode    string
	historySince   time.Duration
	historyLimit   int
	historyPrune   time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show logged modal exchanges",
	Long: `Lists exchanges recorded while database.enabled is set, newest first.

Use --prune to delete exchanges older than the given age instead.`,
	Example: `  folio history --mode draftHelper --limit 5
  folio history --since 24h
  folio history --prune 720h`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historySession, "session", "", "only show this session")
	historyCmd.Flags().StringVar(&historyMode, "mode", "", "only show this mode (assistant or draftHelper)")
	historyCmd.Flags().DurationVar(&historySince, "since", 0, "only show exchanges newer than this age")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of exchanges to show")
	historyCmd.Flags().DurationVar(&historyPrune, "prune", 0, "delete exchanges older than this age")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Database.Enabled {
		return fmt.Errorf("exchange history is disabled; set database.enabled in %s", cfgFile)
	}

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer database.Close()
	store := exchange.NewStore(database)

	if historyPrune > 0 {
		n, err := store.DeleteBefore(cmd.Context(), time.Now().Add(-historyPrune))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Deleted %d exchange(s) older than %s.\n", n, historyPrune)
		return nil
	}

	filter := exchange.QueryFilter{SessionID: historySession, Limit: historyLimit}
	if historyMode != "" {
		mode, err := conversation.ParseMode(historyMode)
		if err != nil {
			return err
		}
		filter.Mode = mode
	}
	if historySince > 0 {
		since := time.Now().Add(-historySince)
		filter.Since = &since
	}

	records, err := store.Query(cmd.Context(), filter)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "No exchanges found.")
		return nil
	}

	header := color.New(color.FgCyan, color.Bold)
	faint := color.New(color.Faint)
	for _, r := range records {
		header.Printf("%s  %s", r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Mode)
		faint.Printf("  %s  %dms\n", r.SessionID, r.DurationMS)
		fmt.Printf("  > %s\n", oneLine(r.Prompt))
		fmt.Printf("  < %s\n\n", oneLine(r.Reply))
	}
	return nil
}

// oneLine collapses whitespace so multi-line replies fit the listing.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
