package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	mcpserver "github.com/dehaleesankr/folio/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the portfolio assistant and the contact drafter as tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "folio MCP server started on stdio (provider=%s)\n", a.provider.Name())

		srv := mcpserver.NewServer(a.provider, mcpserver.Options{
			Profile:   a.profile(),
			Recorder:  a.recorder(),
			Logger:    a.logger,
			Timeout:   a.cfg.LLM.Timeout,
			SessionID: "mcp-" + uuid.NewString(),
		})
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
