// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version can be overridden at build time with -ldflags.
var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, _, err := setup(cmd); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rtlsim %s\n", color.New(color.FgYellow, color.Bold).Sprint(version))
		return nil
	},
}
