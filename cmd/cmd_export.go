package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/internal/config"
	"github.com/gaze-network/crowdsale/modules/crowdsale"
	"github.com/spf13/cobra"
)

type exportCmdOptions struct {
	Output string
}

func NewExportCommand() *cobra.Command {
	opts := &exportCmdOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export contributions as a parquet file",
		Example: `crowdsale export --output ./contributions.parquet
crowdsale export --output s3://my-bucket/crowdsale/contributions.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Output, "output", "o", "contributions.parquet", "Local file path or s3:// destination")

	return cmd
}

func exportHandler(opts *exportCmdOptions, cmd *cobra.Command, _ []string) error {
	conf := config.Load()
	ctx := cmd.Context()

	c, err := crowdsale.Open(ctx, conf.Modules.Crowdsale)
	if err != nil {
		return errors.WithStack(err)
	}
	defer closeCrowdsale(ctx, c)

	n, err := c.Exporter.Export(ctx, opts.Output)
	if err != nil {
		return errors.Wrap(err, "can't export contributions")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d contributions to %s\n", n, opts.Output)
	return nil
}
