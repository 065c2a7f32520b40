package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/dehaleesankr/folio/internal/conversation"
	"github.com/dehaleesankr/folio/internal/progress"
	"github.com/dehaleesankr/folio/internal/terminal"
)

var chatMode string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the modal in the terminal",
	Long: `Opens the AI modal in the terminal. Type a message and press Enter.

Commands:
  /reset   start a new conversation
  /draft   switch to the contact-message helper for one request
  /quit    leave (Ctrl+C and Ctrl+D work too)`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatMode, "mode", "m", string(conversation.ModeAssistant), "initial mode: assistant or draftHelper")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	mode, err := conversation.ParseMode(chatMode)
	if err != nil {
		return err
	}

	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	presenter := terminal.NewPresenter(os.Stdout, progress.NewIndicator(os.Stderr))
	opts := []conversation.Option{
		conversation.WithProfile(a.profile()),
		conversation.WithLogger(a.logger),
		conversation.WithTimeout(a.cfg.LLM.Timeout),
	}
	if rec := a.recorder(); rec != nil {
		opts = append(opts, conversation.WithRecorder(rec, "cli-"+uuid.NewString()))
	}
	controller := conversation.New(a.provider, presenter, opts...)
	defer controller.Shutdown()

	if err := controller.Open(mode); err != nil {
		return err
	}

	for {
		prompt := promptui.Prompt{Label: "You"}
		input, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			controller.Close()
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(input) {
		case "/quit":
			controller.Close()
			return nil
		case "/reset":
			if err := controller.Open(conversation.ModeAssistant); err != nil {
				return err
			}
			continue
		case "/draft":
			if err := controller.Open(conversation.ModeDraftHelper); err != nil {
				return err
			}
			continue
		}

		reply, err := controller.Submit(cmd.Context(), input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		if needsFreshSession(reply) {
			if err := controller.Open(conversation.ModeAssistant); err != nil {
				return err
			}
		}
	}
}

// needsFreshSession reports whether the terminal should reopen an assistant
// session after reply. The draft helper closes the modal once it fills the
// message, even when the cleaned message is empty. A discarded reply belongs
// to a session that has already been replaced.
func needsFreshSession(reply conversation.Reply) bool {
	return reply.Mode == conversation.ModeDraftHelper && !reply.Discarded
}
