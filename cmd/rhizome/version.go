package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/rhizome"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rhizome",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rhizome version %s\n", strings.TrimSpace(rhizome.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
