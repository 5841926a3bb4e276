package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tasnim.dev/aws-netmap/internal/config"
	"tasnim.dev/aws-netmap/internal/render"
	"tasnim.dev/aws-netmap/internal/snapshot"
	"tasnim.dev/aws-netmap/internal/topology"
)

func diagramTitle(snap *snapshot.Snapshot) string {
	title := "AWS Account"
	if snap.AccountID != "" {
		title += " " + snap.AccountID
	}
	if snap.Region != "" {
		title += " (" + snap.Region + ")"
	}
	return title
}

func outputPath(output, dir string, format render.Format) string {
	if output != "" {
		return output
	}
	return filepath.Join(dir, "aws_account."+string(format))
}

func NewDiagramCmd() *cobra.Command {
	var (
		src          sourceFlags
		output       string
		format       string
		saveSnapshot string
	)

	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Render the VPC network topology as a diagram",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if format == "" {
				format = cfg.Format()
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			snap, g, err := src.load(ctx, cfg)
			if err != nil {
				return err
			}
			st := g.Stats()
			logger.Info("Correlated topology",
				"vpcs", st.Vpcs, "subnets", st.Subnets, "public_subnets", st.PublicSubnets,
				"interfaces", st.Interfaces, "instances", st.Instances)
			logger.Debug("Hierarchy\n" + topology.Dump(g, true))

			if saveSnapshot != "" {
				if err := snapshot.SaveFile(saveSnapshot, snap); err != nil {
					return fmt.Errorf("saving snapshot: %w", err)
				}
				logger.Info("Saved snapshot", "path", saveSnapshot)
			}

			p := newProgress(logger)
			dot := render.ToDOT(render.Build(g, diagramTitle(snap)))

			path := outputPath(output, cfg.OutputDir, f)
			var buf bytes.Buffer
			if err := render.Render(ctx, dot, f, &buf); err != nil {
				return fmt.Errorf("rendering diagram: %w", err)
			}
			if path == "-" {
				if _, err := buf.WriteTo(cmd.OutOrStdout()); err != nil {
					return err
				}
			} else if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			p.done("Rendered diagram", "path", path, "format", f)
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or - for stdout (default <output_dir>/aws_account.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: svg, png, jpg or dot")
	cmd.Flags().StringVar(&saveSnapshot, "save-snapshot", "", "also write the raw snapshot to this .yaml or .json file")

	return cmd
}
