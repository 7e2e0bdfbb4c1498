// Package cmd holds the fern command line
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/pkg/reconcile"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "fern",
	Short:         "Reconciles Workiz jobs with move quotes and keeps canonical job records",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(hazardousCmd)
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitCode(err)
	}
	return 0
}

func loadConfig() (*config.Config, error) {
	return config.Load(envFile)
}

// exitCode maps reconciliation failures to distinct codes so scripts can
// tell bad input from an unavailable source
func exitCode(err error) int {
	var ee *exitError
	if !errors.As(err, &ee) {
		return 1
	}
	switch reconcile.Kind(ee.err) {
	case reconcile.KindValidation:
		return 2
	case reconcile.KindUpstream:
		return 3
	case reconcile.KindStore:
		return 4
	}
	return 1
}

type exitError struct {
	err error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
