// Package main provides the racehub command line client.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/racehub/internal/api"
	"github.com/yourusername/racehub/internal/config"
	"github.com/yourusername/racehub/internal/cookiestore"
	"github.com/yourusername/racehub/internal/logger"
	"github.com/yourusername/racehub/internal/metrics"
	"github.com/yourusername/racehub/internal/models"
	"github.com/yourusername/racehub/internal/render"
	"github.com/yourusername/racehub/internal/session"
	"github.com/yourusername/racehub/internal/store"
	"github.com/yourusername/racehub/internal/terminal"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	logLevel   string
	baseURL    string
	viewMode   string
)

// errReported marks a failure the presenter already showed to the user
var errReported = errors.New("reported")

// app holds the wired dependencies of one invocation
type app struct {
	cfg       *config.Config
	logger    *logrus.Logger
	client    *api.Client
	cookies   *cookiestore.Store
	jar       *cookiestore.Jar
	presenter *terminal.Presenter
	session   *session.Session
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// A second interrupt terminates the process
		<-ctx.Done()
		stop()
	}()

	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "racehub",
		Short:         "Track the races you signed up for",
		Long:          `racehub keeps a personal calendar of races: find a race by name, review what the backend found, save it, and look up your official result once it has taken place.`,
		Version:       fmt.Sprintf("%s (%s)", Version, GitCommit),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath(), "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Override the backend base URL")

	rootCmd.AddCommand(
		newRacesCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newProfileCmd(),
		newSearchCmd(),
		newDeleteCmd(),
		newResultCmd(),
		newShareCmd(),
		newShellCmd(),
		newWatchCmd(),
	)

	return rootCmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.App.LogLevel = logLevel
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if viewMode != "" {
		cfg.Display.DefaultView = viewMode
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup wires configuration, the cookie jar, the API client and a session
// rendering on cmd's streams. interactive is set for commands that outlive
// their workflows.
func setup(cmd *cobra.Command, opts terminal.Options, interactive bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: logger.NewLogger(cfg.App.LogLevel),
	}
	metrics.InitRegistry()

	var jar *cookiestore.Jar
	if cfg.Session.Persist {
		a.cookies, err = cookiestore.New(cfg.Session.StorePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open session store: %w", err)
		}
		jar, err = cookiestore.NewJar(a.cookies, cfg.API.BaseURL, a.logger)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to restore session: %w", err)
		}
		a.jar = jar
	}

	// A nil *Jar must not reach the client as a non-nil interface
	if jar != nil {
		a.client, err = api.NewClient(&cfg.API, jar, a.logger)
	} else {
		a.client, err = api.NewClient(&cfg.API, nil, a.logger)
	}
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	labels := render.LabelsFor(cfg.Display.Locale)
	a.presenter = terminal.New(cmd.InOrStdin(), cmd.OutOrStdout(), labels, opts)

	var onLogout func() error
	if a.jar != nil {
		onLogout = a.jar.Clear
	}

	a.session, err = session.New(session.Options{
		Backend:   a.client,
		Presenter: a.presenter,
		Store:     store.NewRaceStore(),
		Labels:    labels,
		ViewMode:  models.ViewMode(cfg.Display.DefaultView),
		Origin:    cfg.API.Origin(),
		Location:  cfg.Display.Location(),
		Logger:    a.logger,
		OnLogout:  onLogout,
		After:     feedbackTimer(interactive),
	})
	if err != nil {
		a.close()
		return nil, err
	}

	a.logger.WithFields(logrus.Fields{
		"base_url": cfg.API.BaseURL,
		"locale":   cfg.Display.Locale,
		"persist":  cfg.Session.Persist,
	}).Debug("racehub initialised")

	return a, nil
}

// feedbackTimer schedules transient UI feedback such as the copy label
// restore. One-shot commands exit before any such timer would fire, so they
// drop it.
func feedbackTimer(interactive bool) func(d time.Duration, f func()) {
	if interactive {
		return func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	return func(time.Duration, func()) {}
}

func (a *app) close() {
	if a.client != nil {
		a.client.Close()
	}
	if a.cookies != nil {
		if err := a.cookies.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to close session store")
		}
	}
}

// reported turns a workflow error into errReported; the session already
// showed it through the presenter
func reported(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", errReported, err)
}
