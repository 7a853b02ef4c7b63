package cli

import (
	"github.com/sandeepkv93/teleprompt/internal/mcpserver"
	"github.com/spf13/cobra"
)

// Version is set by -ldflags at build time.
var Version = "dev"

func newMCPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve slide scripts as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(commandContext(cmd), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			s := mcpserver.New(Version, rt.Gateway, app.logger)
			app.logger.Info("mcp server listening on stdio", "backend", app.cfg.Backend)
			if err := mcpserver.Serve(commandContext(cmd), s, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				app.logger.Error("mcp server stopped", "error", err)
				return writeErr(cmd, err)
			}
			return nil
		},
	}
}
