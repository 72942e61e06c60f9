package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/procsim/unitsim/units/fwh"
)

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the configuration options of the feedwater heater",
		Run: func(cmd *cobra.Command, _ []string) {
			schema := fwh.Schema()

			for _, name := range schema.Options() {
				opt, _ := schema.Option(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s default %-12v %s\n",
					opt.Name, opt.Default, opt.Description)
			}
		},
	}
}
