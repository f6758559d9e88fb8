// Package cmd wires the command-line interface: subcommands, flags, and
// environment binding, translated into the application's configuration.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chrisiswright/WhiteFiberCC/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "wfcc",
	Short: "Dependency-aware network diagnostics scheduler",
	Long: `wfcc loads a probe plan (a DAG of resolve, traceroute and iperf3
tasks), validates its structure, computes the expected critical-path
runtime, and in run mode executes the probes concurrently while honoring
dependency order, timeouts and failure propagation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("log-level", "info", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	pf.String("log-format", "text", "Log output format: 'text' or 'json'.")
	pf.Int("workers", 0, "Maximum concurrent probes. 0 means unbounded.")
	pf.Int("grace-seconds", 10, "Timeout slack added to each task's declared duration.")
	pf.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")

	_ = viper.BindPFlag("log-level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log-format", pf.Lookup("log-format"))
	_ = viper.BindPFlag("workers", pf.Lookup("workers"))
	_ = viper.BindPFlag("grace-seconds", pf.Lookup("grace-seconds"))
	_ = viper.BindPFlag("healthcheck-port", pf.Lookup("healthcheck-port"))
}

func initConfig() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("WFCC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

// buildConfig assembles and validates the app configuration from the plan
// path argument plus the viper-bound flag and environment values.
func buildConfig(planPath string) (*app.Config, error) {
	logFormat := strings.ToLower(viper.GetString("log-format"))
	if logFormat != "text" && logFormat != "json" {
		return nil, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(viper.GetString("log-level"))
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg, err := app.NewConfig(app.Config{
		PlanPath:        planPath,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		WorkerLimit:     viper.GetInt("workers"),
		GraceSeconds:    viper.GetInt("grace-seconds"),
		HealthcheckPort: viper.GetInt("healthcheck-port"),
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: fmt.Sprintf("invalid configuration: %v", err)}
	}
	return cfg, nil
}
