package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chrisiswright/WhiteFiberCC/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run PLAN",
	Short: "Execute a probe plan",
	Long: `Run validates the plan and then executes every task concurrently as
its dependencies complete. A failed task skips its dependents; independent
branches keep running. The summary compares actual runtime against the
expected critical-path figure.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(args[0])
		if err != nil {
			return err
		}
		a := app.New(cmd.OutOrStdout(), os.Stderr, cfg)
		return a.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
