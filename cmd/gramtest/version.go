// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of gramtest",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gramtest %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
