package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"yuanc/internal/version"
)

var versionTaglineColor = color.New(color.FgWhite, color.Italic)

const versionTagline = "a front end that refuses to guess"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show yuanc's build fingerprint",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s — %s\n", version.String(), versionTaglineColor.Sprint(versionTagline))
		return err
	},
}
