package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasnim.dev/aws-netmap/internal/config"
	"tasnim.dev/aws-netmap/internal/topology"
)

func NewDumpCmd() *cobra.Command {
	var (
		src   sourceFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the VPC, subnet and interface hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			_, g, err := src.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), topology.Dump(g, plain))
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")

	return cmd
}
