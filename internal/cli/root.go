// Package cli handles the command-line interface of the one-shot
// pipeline binary using the Cobra library.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fakestore-etl",
		Short: "Batch ETL pipeline from the Fake Store API to S3",
		Long: `fakestore-etl extracts users, products and carts from the Fake Store
API, flattens each dataset into a snappy parquet file, uploads the files
to an S3 bucket under a date prefix, and removes the local copies.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(newRunCmd())

	return rootCmd
}
