package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/racehub/internal/health"
	"github.com/yourusername/racehub/internal/metrics"
	"github.com/yourusername/racehub/internal/models"
	"github.com/yourusername/racehub/internal/scheduler"
	"github.com/yourusername/racehub/internal/session"
	"github.com/yourusername/racehub/internal/terminal"
)

const shellHelp = `Commands:
  races | reload               fetch and show races
  table | calendar             switch the presentation
  search QUERY                 find a race and review it
  confirm | cancel             save or discard the pending race
  delete ID                    delete a race
  result ID                    show or look up a result
  profile [NAME]               show or set the runner name
  share | copy                 print the share link, copy it
  login EMAIL | logout
  help | quit`

func newShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive session with periodic refresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := terminal.Options{LoginHint: "Not logged in. Type `login EMAIL` to sign in."}
			return runInteractive(cmd, opts, func(a *app) error {
				ctx := cmd.Context()
				stop, err := a.startBackground(ctx)
				if err != nil {
					return err
				}
				defer stop()

				_ = a.session.Start(ctx)
				return a.repl(ctx, a.presenter)
			})
		},
	}
	cmd.Flags().StringVar(&viewMode, "view", "", "Presentation: table or calendar")
	return cmd
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show races and redraw them on the refresh schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, terminal.Options{}, func(a *app) error {
				ctx := cmd.Context()
				if err := a.session.Start(ctx); err != nil {
					return reported(err)
				}
				if !a.cfg.Refresh.Enabled {
					return fmt.Errorf("refresh is disabled in the configuration")
				}

				stop, err := a.startBackground(ctx)
				if err != nil {
					return err
				}
				defer stop()

				<-ctx.Done()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&viewMode, "view", "", "Presentation: table or calendar")
	return cmd
}

// startBackground starts the configured refresher and status server. The
// returned function stops both.
func (a *app) startBackground(ctx context.Context) (func(), error) {
	var refresher *scheduler.Refresher
	if a.cfg.Refresh.Enabled {
		refresher = scheduler.NewRefresher(a.session, a.cfg.Display.Location(), a.cfg.API.RequestTimeout(), a.logger)
		if err := refresher.Schedule(a.cfg.Refresh.Schedule); err != nil {
			return nil, err
		}
		if err := refresher.Start(); err != nil {
			return nil, err
		}
	}

	var status *health.Server
	if a.cfg.Metrics.Enabled {
		status = health.NewServer(health.Config{
			ServiceName: a.cfg.App.Name,
			Version:     Version,
			Address:     a.cfg.Metrics.Address,
			MetricsPath: a.cfg.Metrics.Path,
			Metrics:     metrics.Handler(),
			Logger:      a.logger,
		})
		status.AddCheck("session", func(context.Context) error {
			if !a.session.Authenticated() {
				return session.ErrNotAuthenticated
			}
			return nil
		})
		if refresher != nil {
			status.AddCheck("refresh", func(context.Context) error {
				_, err := refresher.LastRun()
				return err
			})
		}
		if err := status.Start(ctx); err != nil {
			if refresher != nil {
				refresher.Stop()
			}
			return nil, fmt.Errorf("failed to start status server: %w", err)
		}
	}

	if refresher != nil {
		a.logger.WithFields(logrus.Fields{
			"schedule": a.cfg.Refresh.Schedule,
			"next_run": refresher.NextRun().Format(time.RFC3339),
		}).Info("Race refresh scheduled")
	}

	return func() {
		if refresher != nil {
			refresher.Stop()
		}
		if status != nil {
			if err := status.Shutdown(); err != nil {
				a.logger.WithError(err).Warn("Failed to stop status server")
			}
		}
	}, nil
}

// repl reads commands until end of input, quit or cancellation. out must
// serialize with the presenter, since scheduled reloads print concurrently.
func (a *app) repl(ctx context.Context, out io.Writer) error {
	for ctx.Err() == nil {
		fmt.Fprint(out, "> ")
		line, ok := a.presenter.ReadLine()
		if !ok {
			fmt.Fprintln(out)
			return nil
		}

		name, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		if name == "quit" || name == "exit" {
			return nil
		}

		if err := a.dispatch(ctx, name, arg, out); err != nil {
			a.logger.WithError(err).WithField("command", name).Debug("Shell command failed")
		}
	}
	return nil
}

func (a *app) dispatch(ctx context.Context, name, arg string, out io.Writer) error {
	s := a.session
	switch name {
	case "":
		return nil
	case "help":
		fmt.Fprintln(out, shellHelp)
		return nil
	case "races", "reload":
		return s.LoadRaces(ctx)
	case "table":
		return s.SetViewMode(models.ViewTable)
	case "calendar":
		return s.SetViewMode(models.ViewCalendar)
	case "search":
		return s.Search(ctx, arg)
	case "confirm":
		return s.Confirm(ctx)
	case "cancel":
		s.Cancel()
		return nil
	case "delete":
		return s.DeleteRaceByID(ctx, models.RaceID(arg))
	case "result":
		return s.LookupResultByID(ctx, models.RaceID(arg))
	case "profile":
		if arg == "" {
			return s.OpenProfile()
		}
		return s.SaveProfile(ctx, arg)
	case "share":
		return s.Share(ctx)
	case "copy":
		if err := s.CopyShareLink(); err != nil {
			if errors.Is(err, session.ErrNoShareLink) {
				fmt.Fprintln(out, "No share link yet. Type `share` first.")
			}
			return err
		}
		return nil
	case "login":
		return s.Login(ctx, arg)
	case "logout":
		return s.Logout(ctx)
	default:
		fmt.Fprintf(out, "Unknown command %q. Type `help` for a list.\n", name)
		return nil
	}
}
