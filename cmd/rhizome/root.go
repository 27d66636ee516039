package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rhizome",
	Short: "Rhizome is a hierarchical actor substrate",
	Long:  `Rhizome runs trees of substances that exchange typed signals, execute priority-weighted cycles and stop through a confirmed termination handshake.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("topology", "t", "rhizome.yaml", "Topology file describing the substance tree")
}
