package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/rhizome/internal/presentation"
	"github.com/aretw0/rhizome/pkg/signal"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds [name]",
	Short: "List registered signal kinds or describe one",
	Long:  `Without arguments, lists every registered signal kind. With a name, renders the kind's lineage and merged field schema.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runKinds(args); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}

func runKinds(args []string) error {
	reg := signal.Default()

	var markdown string
	if len(args) == 1 {
		md, err := presentation.KindMarkdown(reg, args[0])
		if err != nil {
			return err
		}
		markdown = md
	} else {
		markdown = presentation.CatalogMarkdown(reg)
	}

	render := presentation.NewRenderer()
	out, err := render(markdown)
	if err != nil {
		// Fall back to the raw markdown on terminals glamour can't probe.
		out = markdown
	}
	fmt.Print(out)
	return nil
}
