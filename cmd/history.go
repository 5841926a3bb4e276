package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"tasnim.dev/aws-netmap/internal/config"
	"tasnim.dev/aws-netmap/internal/store"
	"tasnim.dev/aws-netmap/internal/utils"
)

func NewHistoryCmd() *cobra.Command {
	var (
		limit int
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded discovery runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			hist, err := store.Open(cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("opening history: %w", err)
			}
			defer hist.Close()

			runs, err := hist.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), runsTable(runs, plain))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")

	return cmd
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#33A8FF")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func runsTable(runs []store.Run, plain bool) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			utils.TimeOrDash(r.TakenAt, utils.DateTimeSec),
			utils.OrDash(r.AccountID),
			utils.OrDash(r.Region),
			strconv.Itoa(r.Counts.Vpcs),
			strconv.Itoa(r.Counts.Subnets),
			strconv.Itoa(r.Counts.Interfaces),
			strconv.Itoa(r.Counts.Instances),
		})
	}

	t := table.New().
		Headers("ID", "TAKEN", "ACCOUNT", "REGION", "VPCS", "SUBNETS", "ENIS", "INSTANCES").
		Rows(rows...)
	if plain {
		return t.Border(lipgloss.ASCIIBorder()).
			StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
			String()
	}
	return t.Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
