package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"mesaYaDash/internal/app"
	"mesaYaDash/internal/config"
	"mesaYaDash/internal/shared/httputil"
	"mesaYaDash/internal/shared/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cli loads configuration and services once, on the first command that needs them.
type cli struct {
	baseURL  string
	token    string
	timeout  time.Duration
	logLevel string

	cfg      *config.Config
	services *app.Services
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}
	if err := newRootCmd(&cli{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", httputil.UserMessage(err))
		os.Exit(1)
	}
}

func newRootCmd(cl *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "mesaya",
		Short: "MesaYa restaurant dashboard from the terminal",
		Long: `mesaya talks to the MesaYa backend with the same cached use cases
the dashboard gateway serves: tables, reservations, customers, the
waitlist, system health and CSV exports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cl.baseURL, "api", "", "backend base URL (default REST_BASE_URL)")
	flags.StringVar(&cl.token, "token", "", "bearer token (default REST_TOKEN)")
	flags.DurationVar(&cl.timeout, "timeout", 0, "request timeout (default REST_TIMEOUT)")
	flags.StringVar(&cl.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(
		tablesCmd(cl),
		reservationsCmd(cl),
		customersCmd(cl),
		waitlistCmd(cl),
		healthCmd(cl),
		activityCmd(cl),
		messagesCmd(cl),
		versionCmd(),
	)
	return root
}

// load resolves config from the environment, applies the global flags and
// builds the services. Cache metrics go to a private registry.
func (cl *cli) load(cmd *cobra.Command) (*app.Services, error) {
	if cl.services != nil {
		return cl.services, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cl.baseURL != "" {
		cfg.REST.BaseURL = cl.baseURL
	}
	if cl.token != "" {
		cfg.REST.Token = cl.token
	}
	if cl.timeout > 0 {
		cfg.REST.Timeout = cl.timeout
	}
	slog.SetDefault(logging.New(cmd.ErrOrStderr(), logging.Config{Level: cl.logLevel, Format: "text"}))

	services, err := app.NewServices(cfg, prometheus.NewRegistry())
	if err != nil {
		return nil, err
	}
	cl.cfg = cfg
	cl.services = services
	return services, nil
}
