package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/text-assist/internal/assist"
)

func init() {
	cmd := &cobra.Command{
		Use:   "route [instruction]",
		Short: "Classify a request without generating anything",
		Long:  "Show the intent, output type, tones and target language a request routes to, plus the normalized request.",
		Run:   runRoute,
	}

	cmd.Flags().StringP("intent", "i", "", "Force an intent: proofread, rewrite, write, summarize, translate, prompt")
	cmd.Flags().StringP("text", "t", "", "Text to act on (default: the instruction)")

	RootCmd.AddCommand(cmd)
}

func runRoute(cmd *cobra.Command, args []string) {
	intent, _ := cmd.Flags().GetString("intent")
	text, _ := cmd.Flags().GetString("text")

	instruction, err := readInput(args)
	if err != nil {
		exitErr("route", err)
	}

	a := assist.New(assist.Config{})
	res, req, err := a.Route(assist.Input{
		Instruction: strings.TrimSpace(instruction),
		Text:        text,
		Intent:      intent,
	})
	if err != nil {
		exitErr("route", err)
	}

	out := cmd.OutOrStdout()
	if textOutput() {
		fmt.Fprintf(out, "intent: %s (%s, %.1f)\n", res.Intent, res.Via, res.Score)
		if res.OutputType != "" {
			fmt.Fprintf(out, "output: %s\n", res.OutputType)
		}
		if len(res.Tones) > 0 {
			tones := make([]string, len(res.Tones))
			for i, t := range res.Tones {
				tones[i] = string(t)
			}
			fmt.Fprintf(out, "tones: %s\n", strings.Join(tones, ", "))
		}
		if res.TargetLanguage != "" {
			fmt.Fprintf(out, "language: %s\n", res.TargetLanguage)
		}
		return
	}
	printJSON(out, map[string]any{"routing": res, "request": req})
}
