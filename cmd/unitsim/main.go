// unitsim initializes steady-state unit operation models described by HCL
// case files.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "unitsim",
		Short: "Initialize steady-state unit operation models",
		Long: "unitsim builds a condensing feedwater heater from a case " +
			"file, runs the sequential-modular initialization, and reports " +
			"the solved extraction flow and stream states.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newOptionsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
