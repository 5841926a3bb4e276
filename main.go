package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tasnim.dev/aws-netmap/cmd"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "aws-netmap",
		Short:         "Diagram the network topology of an AWS account",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			c.SetContext(cmd.WithLogger(c.Context(), cmd.NewLogger(os.Stderr, verbose)))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(cmd.NewDiagramCmd())
	rootCmd.AddCommand(cmd.NewDumpCmd())
	rootCmd.AddCommand(cmd.NewHistoryCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
