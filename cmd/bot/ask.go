package main

import (
	"fmt"
	"strings"

	"github.com/kapu/wiki-answer-bot-go/internal/adapter"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Answer a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	container, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = container.Logger.Sync() }()

	ctx, stop := signalContext()
	defer stop()

	answer := container.Resolver.Resolve(ctx, strings.Join(args, " "))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), adapter.NewResponseFormatter("").FormatAnswer(answer))
	return err
}
