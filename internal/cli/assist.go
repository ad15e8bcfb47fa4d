package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/text-assist/internal/assist"
)

func init() {
	cmd := &cobra.Command{
		Use:   "assist [instruction]",
		Short: "Route a request and generate the result",
		Long: "Route the instruction, build context from memory, generate the result with the configured " +
			"provider and remember the exchange. The text to act on comes from --text or stdin.",
		Args: cobra.MinimumNArgs(1),
		Run:  runAssist,
	}

	cmd.Flags().StringP("intent", "i", "", "Force an intent instead of classifying")
	cmd.Flags().StringP("text", "t", "", "Text to act on (default: stdin, then the instruction)")
	cmd.Flags().Bool("no-memory", false, "Neither use nor update conversation memory")
	cmd.Flags().IntP("top-k", "k", 0, "Memory entries to use as context (default: memory.top_k)")

	RootCmd.AddCommand(cmd)
}

func runAssist(cmd *cobra.Command, args []string) {
	intent, _ := cmd.Flags().GetString("intent")
	text, _ := cmd.Flags().GetString("text")
	noMemory, _ := cmd.Flags().GetBool("no-memory")
	topK, _ := cmd.Flags().GetInt("top-k")

	if text == "" {
		piped, err := readInput(nil)
		if err != nil {
			exitErr("assist", err)
		}
		text = piped
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		exitErr("open app", err)
	}
	defer a.Close()

	out, err := a.assistant.Handle(cmd.Context(), assist.Input{
		Instruction: strings.Join(args, " "),
		Text:        strings.TrimSpace(text),
		Intent:      intent,
		UseMemory:   !noMemory,
		TopK:        topK,
	})
	if err != nil {
		a.Close()
		exitErr("assist", err)
	}

	if textOutput() {
		fmt.Fprintln(cmd.OutOrStdout(), out.Result)
		return
	}
	printJSON(cmd.OutOrStdout(), out)
}
