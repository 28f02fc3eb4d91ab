package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/draftcheck/internal/api"
	"github.com/jackzampolin/draftcheck/internal/config"
	"github.com/jackzampolin/draftcheck/internal/home"
	"github.com/jackzampolin/draftcheck/internal/svcctx"
	"github.com/jackzampolin/draftcheck/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	serverURL    string
	verbose      bool
)

// offline marks commands that never talk to the server.
const offline = "offline"

var rootCmd = &cobra.Command{
	Use:   "draftcheck",
	Short: "Academic integrity checks for drafts and documents",
	Long: `draftcheck prepares a draft for an academic integrity check and shows
the results.

A draft is either typed text or a document (PDF, PowerPoint or plain text)
whose text is extracted by the server, split into Page/Slide sections and
made editable before the check runs. The check reports similarity, AI
probability, a learning score and a risk level with feedback.`,
	Version:           version.GitRelease,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.draftcheck/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "draftcheck home directory (default: ~/.draftcheck)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "text", "output format: text, yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&serverURL, "server", "", "server URL (overrides server_url from config)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.AddCommand(versionCmd)
}

// setup builds the services every command reads from its context.
func setup(cmd *cobra.Command, args []string) error {
	format, err := api.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	api.SetFormat(format)

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	h, err := home.New(homeDir)
	if err != nil {
		return err
	}
	loadEnv(h, logger)

	mgr, err := config.NewManager(cfgFile, h.Path())
	if err != nil {
		return err
	}
	mgr.SetLogger(logger)
	if serverURL != "" {
		if err := mgr.Set("server_url", serverURL); err != nil {
			return err
		}
	}

	cfg := mgr.Get()
	if cmd.Annotations[offline] != "true" {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	ctx := svcctx.WithServices(cmd.Context(), &svcctx.Services{
		Client: newClient(cfg, logger),
		Config: mgr,
		Logger: logger,
		Home:   h,
	})
	cmd.SetContext(ctx)
	return nil
}

func newClient(cfg *config.Config, logger *slog.Logger) *api.Client {
	return api.NewClient(cfg.ServerURL,
		api.WithToken(cfg.ResolvedToken()),
		api.WithTimeout(cfg.Timeout()),
		api.WithReadRetries(cfg.ReadRetries, 500*time.Millisecond),
		api.WithLogger(logger),
	)
}

// loadEnv reads .env from the working directory and then the home
// directory. Values already set in the environment win.
func loadEnv(h *home.Dir, logger *slog.Logger) {
	for _, path := range []string{".env", h.EnvPath()} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			logger.Warn("failed to load env file", "path", path, "error", err)
			continue
		}
		logger.Debug("loaded env file", "path", path)
	}
}
