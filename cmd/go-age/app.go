package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"

	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/render"
)

// app carries the dependencies shared by every command.
type app struct {
	clock   engine.Clock
	fetcher engine.VCardFetcher
	stdout  io.Writer
	stderr  io.Writer

	// logging installs the default logger. Tests replace it with a no-op.
	logging   func(debug bool, stderr io.Writer) io.Closer
	logCloser io.Closer

	// password looks up a stored secret; keyring.Get by default.
	password func(service, user string) (string, error)

	debug   bool
	noColor bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		clock:    engine.RealClock{},
		fetcher:  engine.NewHTTPFetcher(),
		stdout:   stdout,
		stderr:   stderr,
		logging:  setupLogging,
		password: keyring.Get,
	}
}

func (a *app) closeLogs() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

func (a *app) renderer(w io.Writer, cat *render.Catalog) *render.Renderer {
	return render.New(w, cat, render.Options{Color: !a.noColor})
}

// newRootCmd assembles the command tree.
func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           config.BinaryName,
		Short:         config.CmdShortRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			a.logCloser = a.logging(a.debug, a.stderr)
			logStartupInfo()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)
	root.PersistentFlags().BoolVar(&a.noColor, config.FlagNoColor, false, config.FlagDescNoColor)

	root.AddCommand(
		a.newCalcCmd(),
		a.newContactsCmd(),
		a.newCalendarCmd(),
		a.newServeCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdVersion,
		Short: config.CmdShortVersion,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), config.MsgVersionOutput,
				config.AppName,
				config.Version,
				runtime.GOOS,
				runtime.GOARCH,
			)
			return err
		},
	}
}

// lookupPassword returns flagValue, or the keyring entry for user when the flag is empty.
// A missing entry is not an error: the source may not require authentication.
func (a *app) lookupPassword(flagValue, user string) string {
	if flagValue != "" || user == "" || a.password == nil {
		return flagValue
	}
	pass, err := a.password(config.KeyringService, user)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyUser, user,
			config.LogKeyError, err,
		)
		return ""
	}
	return pass
}
