// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/internal/config"
	"github.com/db47h/rtlsim/logic"
	"github.com/db47h/rtlsim/sim"
	"github.com/db47h/rtlsim/trace"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run [design...]",
	Short: "Simulate bundled designs and print the final value of their signals",
	RunE:  runDesigns,
}

func init() {
	runCmd.Flags().Uint64("max-time", 0, "stop the simulation after this time (overrides sim.max_time)")
	runCmd.Flags().Bool("strict", false, "fail when a clocked block drives a receiver twice")
	runCmd.Flags().String("trace", "", "write a msgpack value change trace to this file")
}

func runDesigns(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-time") {
		cfg.Sim.MaxTime, _ = cmd.Flags().GetUint64("max-time")
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		cfg.Sim.Strict = true
	}
	if out, _ := cmd.Flags().GetString("trace"); out != "" {
		cfg.Trace.Output = out
	}
	ds, err := lookup(args)
	if err != nil {
		return err
	}

	results := make([]*result, len(ds))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, dg := range ds {
		i, dg := i, dg
		g.Go(func() error {
			r, err := simulate(ctx, dg, cfg, log.With("design", dg.name))
			if err != nil {
				return errors.Wrapf(err, "design %s", dg.name)
			}
			if cfg.Trace.Output != "" {
				if err = writeTrace(tracePath(cfg.Trace.Output, dg.name, len(ds) == 1), r.trace); err != nil {
					return err
				}
			}
			results[i] = r
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}
	for _, r := range results {
		r.report(cmd.OutOrStdout())
	}
	return nil
}

type result struct {
	name  string
	s     *sim.Simulator
	b     *bench
	trace *trace.Trace
}

// simulate builds and runs a design in its own simulator.
func simulate(ctx context.Context, ds design, cfg config.Config, log *slog.Logger) (*result, error) {
	s := sim.New(sim.WithLogger(log), sim.WithMaxTime(cfg.Sim.MaxTime))
	d := rtlsim.NewDesign(s)
	b, err := ds.build(s, d, cfg)
	if err != nil {
		return nil, err
	}
	traced, err := selectSignals(b.signals, cfg.Trace.Signals)
	if err != nil {
		return nil, err
	}
	rec := trace.NewRecorder(s)
	rec.Watch(traced...)
	log.Debug("simulation start", "signals", len(traced), "max_time", cfg.Sim.MaxTime)
	if err = s.Run(ctx); err != nil {
		return nil, err
	}
	rec.Stop()
	log.Info("simulation done", "time", s.Time(), "ticks", s.Ticks())
	return &result{name: ds.name, s: s, b: b, trace: rec.Trace()}, nil
}

// selectSignals returns the signals named in names, or all of them if names is
// empty.
func selectSignals(sigs []*rtlsim.Signal, names []string) ([]*rtlsim.Signal, error) {
	if len(names) == 0 {
		return sigs, nil
	}
	var r []*rtlsim.Signal
	for _, n := range names {
		found := false
		for _, s := range sigs {
			if s.Name() == n {
				r = append(r, s)
				found = true
			}
		}
		if !found {
			return nil, errors.Errorf("no signal named %q", n)
		}
	}
	return r, nil
}

// tracePath inserts the design name before the extension of path unless a
// single design was requested.
func tracePath(path, design string, single bool) string {
	if single {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + design + ext
}

func writeTrace(path string, t *trace.Trace) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "trace")
	}
	defer func() {
		if e := f.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "trace")
		}
	}()
	return t.Encode(f)
}

var (
	nameColor  = color.New(color.FgCyan, color.Bold)
	validColor = color.New(color.FgGreen)
	xColor     = color.New(color.FgRed)
	zColor     = color.New(color.FgYellow)
)

func colorValue(v logic.Value) string {
	switch {
	case v.HasX():
		return xColor.Sprint(v)
	case v.HasZ():
		return zColor.Sprint(v)
	}
	s := validColor.Sprint(v)
	if u, err := v.Uint64(); err == nil {
		s += fmt.Sprintf(" (%d)", u)
	}
	return s
}

func (r *result) report(w io.Writer) {
	fmt.Fprintf(w, "%s t=%d ticks=%d\n", nameColor.Sprint(r.name), r.s.Time(), r.s.Ticks())
	width := 0
	for _, s := range r.b.signals {
		if n := runewidth.StringWidth(s.Name()); n > width {
			width = n
		}
	}
	for _, s := range r.b.signals {
		fmt.Fprintf(w, "  %s  %s\n", runewidth.FillRight(s.Name(), width), colorValue(s.Value()))
	}
}
