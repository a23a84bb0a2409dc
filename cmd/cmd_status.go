package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/internal/config"
	"github.com/gaze-network/crowdsale/modules/crowdsale"
	"github.com/gaze-network/crowdsale/modules/crowdsale/usecase"
	"github.com/gaze-network/crowdsale/pkg/decimals"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the sale configuration, state and bonus schedule",
		RunE:  statusHandler,
	}
}

func statusHandler(cmd *cobra.Command, _ []string) error {
	conf := config.Load()
	ctx := cmd.Context()

	c, err := crowdsale.Open(ctx, conf.Modules.Crowdsale)
	if err != nil {
		return errors.WithStack(err)
	}
	defer closeCrowdsale(ctx, c)

	info, err := c.Usecase.GetSaleInfo(ctx)
	if err != nil {
		return errors.Wrap(err, "can't get sale info")
	}
	return errors.WithStack(printStatus(cmd.OutOrStdout(), info, conf.Modules.Crowdsale.TokenDecimals))
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// closeCrowdsale releases the module storage. A failure is logged, the command result stands.
func closeCrowdsale(ctx context.Context, c shutdowner) {
	if err := c.Shutdown(ctx); err != nil {
		logger.WarnContext(ctx, "Failed to close crowdsale module", slogx.Error(err))
	}
}

func printStatus(out io.Writer, info *usecase.SaleInfo, tokenDecimals uint8) error {
	saleConfig := info.Config
	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")
	rows := [][]string{
		{"Start", saleConfig.Start.UTC().Format(time.RFC3339)},
		{"End", info.End.UTC().Format(time.RFC3339)},
		{"Period (days)", strconv.FormatUint(saleConfig.PeriodDays, 10)},
		{"Hard cap", saleConfig.HardCap.String()},
		{"Price", saleConfig.Price.String()},
		{"Percent rate", strconv.FormatUint(saleConfig.PercentRate, 10)},
		{"Second wallet percent", strconv.FormatUint(saleConfig.SecondWalletPercent, 10)},
		{"Founders tokens percent", strconv.FormatUint(saleConfig.FoundersTokensPercent, 10)},
		{"Bounty tokens percent", strconv.FormatUint(saleConfig.BountyTokensPercent, 10)},
		{"Second wallet", saleConfig.SecondWallet.Hex()},
		{"Multisig wallet", saleConfig.MultisigWallet.Hex()},
		{"Founders tokens wallet", saleConfig.FoundersTokensWallet.Hex()},
		{"Bounty tokens wallet", saleConfig.BountyTokensWallet.Hex()},
		{"Invested", info.State.Invested.String()},
		{"Open", strconv.FormatBool(info.IsOpen)},
		{"Under cap", strconv.FormatBool(info.IsUnderCap)},
		{"Paused", strconv.FormatBool(info.State.Paused)},
		{"Minting finished", strconv.FormatBool(info.State.MintingFinished)},
		{"Token supply", decimals.FromUint128(info.TotalSupply, tokenDecimals).String()},
		{"Transfer allowed", strconv.FormatBool(info.TransferAllowed)},
	}
	if err := table.Bulk(rows); err != nil {
		return errors.Wrap(err, "can't write sale table")
	}
	if err := table.Render(); err != nil {
		return errors.Wrap(err, "can't render sale table")
	}

	if len(info.BonusTiers) == 0 {
		_, err := fmt.Fprintln(out, "No bonus tiers")
		return errors.WithStack(err)
	}
	bonuses := tablewriter.NewWriter(out)
	bonuses.Header("Index", "Limit", "Bonus percent")
	for i, tier := range info.BonusTiers {
		if err := bonuses.Append(strconv.Itoa(i), tier.Limit.String(), strconv.FormatUint(tier.BonusPercent, 10)); err != nil {
			return errors.Wrap(err, "can't write bonus table")
		}
	}
	if err := bonuses.Render(); err != nil {
		return errors.Wrap(err, "can't render bonus table")
	}
	return nil
}
