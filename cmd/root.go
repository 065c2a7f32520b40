package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dehaleesankr/folio/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "AI assistant and contact drafter for a personal portfolio",
	Long: `Folio serves the AI modal of a personal portfolio site. Visitors can
chat with an assistant that knows the owner's skills and projects, or have
it draft a short contact message for them.

The same modal is available in the terminal (folio chat, folio draft) and
to AI agents over MCP (folio mcp).`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
