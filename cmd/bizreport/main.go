package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "bizreport",
		Short:         "Edit and reconcile business status reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}

	rootCmd.AddCommand(
		newMigrateCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newCommitCmd(a),
		newDeleteCmd(a),
		newPeriodsCmd(a),
		newToggleFieldCmd(a),
		newFieldsCmd(a),
	)

	if err := rootCmd.Execute(); err != nil {
		a.close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
