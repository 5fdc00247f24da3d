package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/render"
)

type calcOptions struct {
	on     string
	asJSON bool
	fact   int
}

// problem mirrors the JSON error body of the HTTP API.
type problem struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *app) newCalcCmd() *cobra.Command {
	var opts calcOptions
	cmd := &cobra.Command{
		Use:   config.CmdCalc,
		Short: config.CmdShortCalc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCalc(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.on, config.FlagOn, "", config.FlagDescOn)
	cmd.Flags().BoolVar(&opts.asJSON, config.FlagJSON, false, config.FlagDescJSON)
	cmd.Flags().IntVar(&opts.fact, config.FlagFact, config.RandomFact, config.FlagDescFact)
	return cmd
}

func (a *app) runCalc(stdout, stderr io.Writer, birthArg string, opts calcOptions) error {
	ref := engine.Today(a.clock)
	if opts.on != "" {
		var err error
		if ref, err = engine.ParseDate(opts.on, ref.Location()); err != nil {
			return fmt.Errorf("%s: %q: %w", config.ErrRefParse, opts.on, err)
		}
	}
	birth, err := engine.ParseDate(birthArg, ref.Location())
	if err != nil {
		return fmt.Errorf("%s: %q: %w", config.ErrDateParse, birthArg, err)
	}

	cat := render.NewCatalog()
	res, err := engine.Calculate(birth, ref)
	if err != nil {
		kind, _ := engine.KindOf(err)
		slog.Info(config.MsgRejected,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyKind, kind,
			config.LogKeyRef, ref.Format(config.DateFormatFullDash),
		)
		if opts.asJSON {
			if jerr := render.JSON(stdout, problem{Error: string(kind), Message: cat.ErrorMessage(err)}); jerr != nil {
				return jerr
			}
			return err
		}
		if rerr := a.renderer(stderr, cat).Error(err); rerr != nil {
			return rerr
		}
		return err
	}

	slog.Debug(config.MsgCalculated,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyYears, res.Breakdown.Years,
		config.LogKeyTotalDays, res.Breakdown.TotalDays,
	)

	if opts.asJSON {
		res.Facts = cat.WithText(res.Facts)
		return render.JSON(stdout, res)
	}

	var pick engine.Picker = engine.RandomPicker
	if opts.fact != config.RandomFact {
		pick = engine.FixedPicker(opts.fact)
	}
	fact, _ := engine.PickFact(res.Facts, pick)
	return a.renderer(stdout, cat).Text(res, fact)
}
