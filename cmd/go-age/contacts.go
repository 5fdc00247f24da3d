package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/render"
)

// sourceFlags are shared by the contacts and calendar commands.
type sourceFlags struct {
	file     string
	url      string
	user     string
	password string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, config.FlagFile, "", config.FlagDescFile)
	cmd.Flags().StringVar(&f.url, config.FlagURL, "", config.FlagDescURL)
	cmd.Flags().StringVar(&f.user, config.FlagUser, "", config.FlagDescUser)
	cmd.Flags().StringVar(&f.password, config.FlagPassword, "", config.FlagDescPassword)
	cmd.MarkFlagsMutuallyExclusive(config.FlagFile, config.FlagURL)
}

// source resolves the flags into an engine.Source. A local file wins over a URL.
func (a *app) source(f sourceFlags) (engine.Source, error) {
	switch {
	case f.file != "":
		return engine.Source{Mode: config.SourceModeLocal, LocalPath: f.file}, nil
	case f.url != "":
		return engine.Source{
			Mode:    config.SourceModeWeb,
			WebURL:  f.url,
			WebUser: f.user,
			WebPass: a.lookupPassword(f.password, f.user),
		}, nil
	default:
		return engine.Source{}, errors.New(config.ErrSourceMissing)
	}
}

func (a *app) loadContacts(ctx context.Context, f sourceFlags) ([]engine.Contact, error) {
	src, err := a.source(f)
	if err != nil {
		return nil, err
	}
	dir := &engine.Directory{Clock: a.clock, Fetcher: a.fetcher}
	return dir.Load(ctx, src)
}

func (a *app) newContactsCmd() *cobra.Command {
	var flags sourceFlags
	var asJSON bool
	cmd := &cobra.Command{
		Use:   config.CmdContacts,
		Short: config.CmdShortContacts,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			contacts, err := a.loadContacts(cmd.Context(), flags)
			if err != nil {
				return err
			}
			if asJSON {
				return render.JSON(cmd.OutOrStdout(), contacts)
			}
			return a.renderer(cmd.OutOrStdout(), render.NewCatalog()).Contacts(contacts)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, config.FlagJSON, false, config.FlagDescJSON)
	return cmd
}

func (a *app) newCalendarCmd() *cobra.Command {
	var flags sourceFlags
	var out, reminder string
	cmd := &cobra.Command{
		Use:   config.CmdCalendar,
		Short: config.CmdShortCalendar,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := engine.ValidateReminder(reminder); err != nil {
				return err
			}
			contacts, err := a.loadContacts(cmd.Context(), flags)
			if err != nil {
				return err
			}
			cat := render.NewCatalog()
			data, _, err := engine.BuildCalendar(contacts, a.clock.Now(), engine.CalendarOptions{
				Reminder: reminder,
				Summary:  cat.Summary,
			})
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, config.FilePermPublicR); err != nil {
				return fmt.Errorf("%s: %w", config.ErrWriteFile, err)
			}
			slog.Info(config.MsgCalendarOut,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyFile, out,
				config.LogKeySizeBytes, len(data),
			)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&out, config.FlagOut, "", config.FlagDescOut)
	cmd.Flags().StringVar(&reminder, config.FlagReminder, "", config.FlagDescReminder)
	return cmd
}
