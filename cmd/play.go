package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquiz/internal/questions"
	"github.com/abhisek/mathquiz/internal/quiz"
	"github.com/abhisek/mathquiz/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take the quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay launches the terminal UI. Logging is discarded unless --log-file
// is set, since the UI owns the terminal.
func runPlay(cmd *cobra.Command) error {
	v := viperForCmd(cmd)
	closeLog, err := setupLogging(v, io.Discard)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	cfg := providerConfig(v)
	if err := cfg.Validate(); err != nil {
		// The settings screen can still supply the missing key.
		slog.Warn("provider not ready", "error", err)
	}

	client := questions.New(nil, slog.Default())
	ctrl := quiz.NewController(client, cfg, quiz.WithLogger(slog.Default()))
	return tui.Run(ctrl)
}
