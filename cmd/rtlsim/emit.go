// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/internal/config"
	"github.com/db47h/rtlsim/sim"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var emitCmd = &cobra.Command{
	Use:   "emit [design...]",
	Short: "Print the SystemVerilog always blocks of bundled designs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		ds, err := lookup(args)
		if err != nil {
			return err
		}
		for _, d := range ds {
			if err = emit(cmd.OutOrStdout(), d, cfg); err != nil {
				return err
			}
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bundled designs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		width := 0
		for _, d := range designs {
			if n := runewidth.StringWidth(d.name); n > width {
				width = n
			}
		}
		for _, d := range designs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", runewidth.FillRight(d.name, width), d.short)
		}
	},
}

// emit builds ds without running it and writes its blocks to w.
func emit(w io.Writer, ds design, cfg config.Config) error {
	s := sim.New()
	b, err := ds.build(s, rtlsim.NewDesign(s), cfg)
	if err != nil {
		return err
	}
	for _, blk := range b.blocks {
		fmt.Fprintf(w, "// %s.%s\n%s\n", ds.name, blk.Name(), blk.Verilog())
	}
	return nil
}
