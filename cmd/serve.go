package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquiz/internal/questions"
	"github.com/abhisek/mathquiz/internal/quiz"
	"github.com/abhisek/mathquiz/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz in the browser",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", ":8080", "HTTP listen address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)
	closeLog, err := setupLogging(v, os.Stderr)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	cfg := providerConfig(v)
	if err := cfg.Validate(); err != nil {
		slog.Warn("provider not ready, set it on the welcome page", "error", err)
	}

	client := questions.New(nil, slog.Default())
	ctrl := quiz.NewController(client, cfg, quiz.WithLogger(slog.Default()))
	h, err := web.New(ctrl)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}

	addr := v.GetString("addr")
	srv := &http.Server{
		Addr:              addr,
		Handler:           web.NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("starting server", "addr", addr, "provider", cfg.Provider, "model", cfg.Model)
	return srv.ListenAndServe()
}
