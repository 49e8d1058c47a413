package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/racehub/internal/models"
	"github.com/yourusername/racehub/internal/terminal"
)

// run wires an app for a one-shot cmd, executes fn and releases the app
func run(cmd *cobra.Command, opts terminal.Options, fn func(a *app) error) error {
	return runApp(cmd, opts, false, fn)
}

// runInteractive is run for commands that keep a session alive
func runInteractive(cmd *cobra.Command, opts terminal.Options, fn func(a *app) error) error {
	return runApp(cmd, opts, true, fn)
}

func runApp(cmd *cobra.Command, opts terminal.Options, interactive bool, fn func(a *app) error) error {
	a, err := setup(cmd, opts, interactive)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

// started runs fn after the initial race load succeeded
func started(cmd *cobra.Command, opts terminal.Options, fn func(a *app) error) error {
	return run(cmd, opts, func(a *app) error {
		if err := a.session.Start(cmd.Context()); err != nil {
			return reported(err)
		}
		return fn(a)
	})
}

func newRacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "races",
		Short: "List your races",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, terminal.Options{}, func(a *app) error {
				return reported(a.session.Start(cmd.Context()))
			})
		},
	}
	cmd.Flags().StringVar(&viewMode, "view", "", "Presentation: table or calendar")
	return cmd
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login EMAIL",
		Short: "Sign in with your email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, terminal.Options{}, func(a *app) error {
				return reported(a.session.Login(cmd.Context(), args[0]))
			})
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Close the backend session and forget the saved cookie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, terminal.Options{HideViews: true}, func(a *app) error {
				return reported(a.session.Logout(cmd.Context()))
			})
		},
	}
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile [NAME]",
		Short: "Show or set the runner name used for result searches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return started(cmd, terminal.Options{HideViews: true}, func(a *app) error {
				if len(args) == 0 {
					return reported(a.session.OpenProfile())
				}
				return reported(a.session.SaveProfile(cmd.Context(), args[0]))
			})
		},
	}
}

func newSearchCmd() *cobra.Command {
	var assumeYes bool
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find a race by name and save it after review",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := terminal.Options{AssumeYes: assumeYes, HideViews: true}
			return run(cmd, opts, func(a *app) error {
				ctx := cmd.Context()
				if err := a.session.Search(ctx, strings.Join(args, " ")); err != nil {
					return reported(err)
				}
				if !a.presenter.Confirm(a.session.Labels().Messages.SaveCandidate) {
					a.session.Cancel()
					return nil
				}
				return reported(a.session.Confirm(ctx))
			})
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Save the race without asking")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	var assumeYes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a race",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := terminal.Options{AssumeYes: assumeYes, HideViews: true}
			return started(cmd, opts, func(a *app) error {
				return reported(a.session.DeleteRaceByID(cmd.Context(), models.RaceID(args[0])))
			})
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Delete without asking")
	return cmd
}

func newResultCmd() *cobra.Command {
	var assumeYes bool
	cmd := &cobra.Command{
		Use:   "result ID",
		Short: "Show the saved result of a finished race or look it up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := terminal.Options{AssumeYes: assumeYes, HideViews: true}
			return started(cmd, opts, func(a *app) error {
				return reported(a.session.LookupResultByID(cmd.Context(), models.RaceID(args[0])))
			})
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Search with the profile name without asking")
	return cmd
}

func newShareCmd() *cobra.Command {
	var copyLink bool
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a public link to your race calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return started(cmd, terminal.Options{HideViews: true}, func(a *app) error {
				if err := a.session.Share(cmd.Context()); err != nil {
					return reported(err)
				}
				if copyLink {
					return a.session.CopyShareLink()
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&copyLink, "copy", false, "Also copy the link to the clipboard (prints the copy confirmation once)")
	return cmd
}
