package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/rhizome/pkg/topology"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a topology file for consistency",
	Long:  `Parses the topology file and instantiates the declared tree, reporting unknown keys, duplicate ids and unknown substance kinds.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("topology")
		if !cmd.Flags().Changed("topology") && len(args) > 0 {
			path = args[0]
		}
		n, err := runValidate(path)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Topology is valid! ✅ (%d substances)\n", n)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) (int, error) {
	subs, err := topology.NewLoader(path, nil).Load(context.Background())
	if err != nil {
		return 0, err
	}
	return len(subs), nil
}
