package reporter

import (
	"context"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/modules/crowdsale/usecase"
	"github.com/gaze-network/crowdsale/pkg/reportingclient"
)

var _ usecase.Reporter = (*Reporter)(nil)

// Reporter forwards committed sale events to the reporting service.
type Reporter struct {
	client      *reportingclient.ReportingClient
	saleAddress ethcommon.Address
}

func New(client *reportingclient.ReportingClient, saleAddress ethcommon.Address) *Reporter {
	return &Reporter{
		client:      client,
		saleAddress: saleAddress,
	}
}

func (r *Reporter) ReportContribution(ctx context.Context, contribution entity.Contribution) error {
	err := r.client.SubmitContributionReport(ctx, reportingclient.ContributionReportPayload{
		SaleAddress:    r.saleAddress.Hex(),
		ContributionID: contribution.ID,
		Sender:         contribution.Sender.Hex(),
		Amount:         contribution.Amount.String(),
		BonusPercent:   contribution.BonusPercent,
		TotalTokens:    contribution.TotalTokens.String(),
		Timestamp:      contribution.CreatedAt,
	})
	return errors.Wrapf(err, "failed to report contribution %d", contribution.ID)
}

func (r *Reporter) ReportFinalization(ctx context.Context, finalization entity.Finalization) error {
	err := r.client.SubmitFinalizationReport(ctx, reportingclient.FinalizationReportPayload{
		SaleAddress:      r.saleAddress.Hex(),
		IssuedSupply:     finalization.IssuedSupply.String(),
		FinalTotalSupply: finalization.FinalTotalSupply.String(),
		FoundersTokens:   finalization.FoundersTokens.String(),
		BountyTokens:     finalization.BountyTokens.String(),
		Timestamp:        finalization.FinalizedAt,
	})
	return errors.Wrap(err, "failed to report finalization")
}
