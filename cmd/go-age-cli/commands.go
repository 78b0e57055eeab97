package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tartampluch/go-age/internal/age"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// instantValue is a pflag.Value accepting the calculator's instant layouts.
type instantValue struct {
	inst age.Instant
	set  bool
}

var _ pflag.Value = (*instantValue)(nil)

func (v *instantValue) String() string {
	if !v.set {
		return ""
	}
	return v.inst.String()
}

func (v *instantValue) Set(s string) error {
	inst, err := age.ParseInstant(s)
	if err != nil {
		return err
	}
	v.inst, v.set = inst, true
	return nil
}

func (v *instantValue) Type() string { return config.InstantFlagType }

type calcOptions struct {
	start     instantValue
	reference instantValue
	preset    string
	refPreset string
	asJSON    bool
}

// newRootCmd builds a fresh command tree. The clock supplies "now" when
// --reference is omitted.
func newRootCmd(clock engine.Clock) *cobra.Command {
	root := &cobra.Command{
		Use:           config.CLIName,
		Short:         config.CmdRootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCalcCmd(clock), newVersionCmd())
	return root
}

func newCalcCmd(clock engine.Clock) *cobra.Command {
	opts := &calcOptions{}

	cmd := &cobra.Command{
		Use:   config.CmdCalcUse,
		Short: config.CmdCalcShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc := &engine.Calculator{Clock: clock}
			res, err := calc.Calculate(cmd.Context(), engine.Request{
				Start:       opts.start.inst,
				StartPreset:     opts.preset,
				UseNow:          !opts.reference.set,
				Reference:       opts.reference.inst,
				ReferencePreset: opts.refPreset,
			})
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return writeText(cmd.OutOrStdout(), res)
		},
	}

	flags := cmd.Flags()
	flags.Var(&opts.start, config.FlagStart, config.FlagDescStart)
	flags.Var(&opts.reference, config.FlagReference, config.FlagDescReference)
	flags.StringVar(&opts.preset, config.FlagPreset, config.PresetCustom, config.FlagDescPreset)
	flags.StringVar(&opts.refPreset, config.FlagRefPreset, config.PresetCustom, config.FlagDescRefPreset)
	flags.BoolVar(&opts.asJSON, config.FlagJSON, false, config.FlagDescJSON)
	_ = cmd.MarkFlagRequired(config.FlagStart)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdVersionUse,
		Short: config.CmdVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), config.MsgVersionOutput,
				config.CLIName, config.Version, runtime.GOOS, runtime.GOARCH)
		},
	}
}

func writeJSON(w io.Writer, res engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", config.CLIIndentJSON)
	return enc.Encode(res)
}

// writeText prints the compact breakdown followed by one aligned row per
// statistic, with digits grouped. The unit letters need no plural forms.
func writeText(w io.Writer, res engine.Result) error {
	b, s := res.Breakdown, res.Statistics
	p := message.NewPrinter(language.English)

	if _, err := fmt.Fprintf(w, config.FormatBreakdown+"\n\n",
		b.Years, b.Months, b.Days, b.Hours, b.Minutes, b.Seconds); err != nil {
		return err
	}

	rows := []struct {
		label string
		value string
	}{
		{config.CLILabelMonths, p.Sprintf("%d", s.TotalMonths)},
		{config.CLILabelWeeks, p.Sprintf("%d", s.TotalWeeks)},
		{config.CLILabelDays, p.Sprintf("%d", s.TotalDays)},
		{config.CLILabelHours, p.Sprintf("%d", s.TotalHours)},
		{config.CLILabelMinutes, p.Sprintf("%d", s.TotalMinutes)},
		{config.CLILabelSeconds, p.Sprintf("%d", s.TotalSeconds)},
		{config.CLILabelHeartbeats, p.Sprintf("%d", s.Heartbeats)},
		{config.CLILabelBreaths, p.Sprintf("%d", s.Breaths)},
		{config.CLILabelLunar, p.Sprintf("%d", s.LunarCycles)},
		{config.CLILabelSeasons, p.Sprintf("%d", s.Seasons)},
		{config.CLILabelLife, fmt.Sprintf(config.CLIFormatPercent, s.LifePercent)},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, config.CLIFormatStat, r.label, r.value); err != nil {
			return err
		}
	}
	return nil
}
