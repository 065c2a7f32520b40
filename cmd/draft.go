package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dehaleesankr/folio/internal/clock"
	"github.com/dehaleesankr/folio/internal/conversation"
	"github.com/dehaleesankr/folio/internal/progress"
)

var draftCmd = &cobra.Command{
	Use:   "draft <reason>",
	Short: "Draft a contact message for the given reason",
	Long: `Asks the backend for a short contact message addressed to the portfolio
owner and prints it with the name placeholder removed. The message goes to
stdout so it can be piped; progress goes to stderr.`,
	Example: `  folio draft "Job offer"
  folio draft freelance web project | pbcopy`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDraft,
}

func init() {
	rootCmd.AddCommand(draftCmd)
}

func runDraft(cmd *cobra.Command, args []string) error {
	reason := strings.Join(args, " ")
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("a reason is required")
	}

	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	presenter := conversation.NewHeadlessPresenter()
	opts := []conversation.Option{
		conversation.WithScheduler(clock.NewManual()),
		conversation.WithProfile(a.profile()),
		conversation.WithLogger(a.logger),
		conversation.WithTimeout(a.cfg.LLM.Timeout),
	}
	if rec := a.recorder(); rec != nil {
		opts = append(opts, conversation.WithRecorder(rec, "cli-"+uuid.NewString()))
	}
	controller := conversation.New(a.provider, presenter, opts...)
	defer controller.Shutdown()

	if err := controller.Open(conversation.ModeDraftHelper); err != nil {
		return err
	}

	indicator := progress.NewIndicator(os.Stderr)
	indicator.Start("Drafting")
	reply, err := controller.Submit(cmd.Context(), reason)
	indicator.Stop()
	if err != nil {
		return err
	}

	fmt.Println(reply.Text)
	return nil
}
