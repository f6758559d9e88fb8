package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chrisiswright/WhiteFiberCC/internal/app"
)

var validateCmd = &cobra.Command{
	Use:   "validate PLAN",
	Short: "Validate a probe plan and report its expected runtime",
	Long: `Validate loads the plan, checks its structure (unknown dependencies,
cycles, malformed fields) and prints the expected total runtime under
unlimited parallelism. No probe is executed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(args[0])
		if err != nil {
			return err
		}
		a := app.New(cmd.OutOrStdout(), os.Stderr, cfg)
		return a.Validate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
