package cmd

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/mathquiz/internal/llm"
)

var rootCmd = &cobra.Command{
	Use:   "mathquiz",
	Short: "Adaptive math quiz",
	Long: `mathquiz assesses your level with a short quiz, then generates a
quiz tailored to that level using a cloud (OpenRouter) or local (Ollama)
language model.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	addProviderFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}

// addProviderFlags registers the flags shared by every command.
func addProviderFlags(f *pflag.FlagSet) {
	f.String("provider", llm.ProviderCloud, "Question provider (cloud, local, anthropic, gemini, mock)")
	f.String("api-key", "", "API key for the hosted provider (or set OPENROUTER_API_KEY)")
	f.String("local-url", llm.DefaultLocalURL, "Local Ollama server URL")
	f.String("model", "", "Model name (default depends on provider)")
	f.String("base-url", "", "Override the hosted API base URL")
	f.String("referer", "", "HTTP-Referer sent to OpenRouter for app attribution")
	f.Float64("temperature", 0.7, "Sampling temperature")
	f.Duration("timeout", 60*time.Second, "Timeout for a single generation request")
	f.Int("max-attempts", 1, "Attempts per generation request, including the first")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	f.String("log-file", "", "Write logs to this file instead of stderr")
}

// setupLogging installs the default slog logger. Logs go to --log-file
// when set, otherwise to fallback. The returned func closes the file.
func setupLogging(v *viper.Viper, fallback io.Writer) (func(), error) {
	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	out := fallback
	closeFn := func() {}
	if path := v.GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out = f
		closeFn = func() { f.Close() }
	}

	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(out, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(out, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
	return closeFn, nil
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("MATHQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("mathquiz")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/mathquiz")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// providerConfig builds the generation config from flags, environment and
// config file. The vendor's standard key variable fills a missing key.
func providerConfig(v *viper.Viper) llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = v.GetString("provider")
	cfg.APIKey = v.GetString("api-key")
	cfg.LocalURL = v.GetString("local-url")
	cfg.Model = v.GetString("model")
	cfg.BaseURL = v.GetString("base-url")
	cfg.Referer = v.GetString("referer")
	cfg.Temperature = v.GetFloat64("temperature")
	if d := v.GetDuration("timeout"); d > 0 {
		cfg.Timeout = d
	}
	cfg.Retry.MaxAttempts = v.GetInt("max-attempts")
	return cfg.DiscoverAPIKey().Normalized()
}
