package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export memory as JSON",
		Long:  "Export every entry as a JSON array, oldest first. The output can be read back with import.",
		Run:   runExport,
	}

	cmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	output, _ := cmd.Flags().GetString("output")

	a, err := openApp(cmd.Context())
	if err != nil {
		exitErr("open app", err)
	}
	defer a.Close()

	data, err := a.mem.Export()
	if err != nil {
		a.Close()
		exitErr("export", err)
	}

	if output != "" {
		if err := os.WriteFile(output, append(data, '\n'), 0o600); err != nil {
			a.Close()
			exitErr("write export", err)
		}
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
}
