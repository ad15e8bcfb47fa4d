package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/text-assist/internal/mcpserver"
)

func init() {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server over stdio",
		Long: "Start a Model Context Protocol server that communicates over stdio, exposing routing, " +
			"memory and generation as tools.",
		Run: runMCP,
	}

	RootCmd.AddCommand(cmd)
}

func runMCP(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	// stdout carries the protocol, so logs go to stderr.
	a, err := newApp(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		exitErr("open app", err)
	}
	defer a.Close()

	if err := mcpserver.New(a.assistant, a.mem).ServeStdio(Version); err != nil && err != io.EOF {
		a.Close()
		exitErr("mcp server", err)
	}
}
