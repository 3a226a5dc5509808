package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/skylark/app"
	"github.com/kilianp07/skylark/core/intent"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask <utterance>",
	Short: "Answer a single operator request",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		utterance := strings.Join(args, " ")
		return withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
			return printReply(cmd, svc.Ask(ctx, utterance))
		})
	},
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the structured reply")
	rootCmd.AddCommand(askCmd)
}

func printReply(cmd *cobra.Command, reply intent.Reply) error {
	out := cmd.OutOrStdout()
	if askJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reply)
	}
	_, err := fmt.Fprintln(out, reply.Message)
	return err
}
