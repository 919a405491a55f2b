package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/moppie/ops-console/internal/config"
	"github.com/moppie/ops-console/internal/domain/notify"
	"github.com/moppie/ops-console/internal/domain/prefs"
	"github.com/moppie/ops-console/internal/domain/review"
	"github.com/moppie/ops-console/internal/domain/session"
	"github.com/moppie/ops-console/internal/infrastructure/api"
	"github.com/moppie/ops-console/internal/infrastructure/store"
	"github.com/moppie/ops-console/internal/logger"
	"github.com/moppie/ops-console/internal/metrics"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "moppie",
	Short: "Moppie Ops Console - operator CLI for the cleaning-services backend",
	Long: `moppie is the headless operator console for the Moppie admin API.

It signs in against the backend, keeps the session fresh across token
expiry, and drives the media review workflow from the terminal.

Examples:
  # Authentication
  moppie login --email admin@moppie.nl
  moppie whoami

  # Media review
  moppie media list --status pending
  moppie media approve <id>
  moppie media bulk --status approved --job <job-id>

  # Reporting
  moppie employees list
  moppie analytics dashboard`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(mediaCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(employeesCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(prefsCmd)

	rootCmd.PersistentFlags().String("config", "", "Path to a console config file (yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "Override the backend API base URL")
}

// app bundles the wired dependencies behind every command. State containers
// are constructed explicitly here rather than held as ambient globals.
type app struct {
	cfg      *config.Config
	store    store.Store
	client   *api.Client
	sessions *session.Manager
	center   *notify.Center
	review   *review.Service
	prefs    *prefs.Manager
}

func newApp(cmd *cobra.Command) (*app, error) {
	// .env is optional developer convenience
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := applyFileConfig(path, cfg); err != nil {
			return nil, err
		}
	}
	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.APIBaseURL = apiURL
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	st, err := store.OpenSQLite(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	client := api.New(api.Config{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.APITimeout,
		RefreshSkew: cfg.RefreshSkew,
		Retry:       retryConfig(cfg),
		Breaker:     breakerConfig(cfg),
	}, st)

	sessions := session.NewManager(client, st)
	client.OnSessionExpired(sessions.HandleExpiry)

	center := notify.NewCenter(cfg.ToastTTL)
	center.Subscribe(func(ev notify.Event) {
		if ev.Type != notify.EventAdded {
			return
		}
		fmt.Fprintf(os.Stderr, "[%s] %s\n", ev.Notification.Level, ev.Notification.Message)
	})

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	return &app{
		cfg:      cfg,
		store:    st,
		client:   client,
		sessions: sessions,
		center:   center,
		review:   review.NewService(client, center, cfg.DefaultPageSize),
		prefs:    prefs.NewManager(st),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close local store")
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	log.Info().Str("address", addr).Msg("metrics listener started")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("metrics listener stopped")
	}
}
