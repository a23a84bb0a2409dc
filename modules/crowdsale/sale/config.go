package sale

import (
	"time"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/uint128"
)

const (
	// DefaultPercentRate is the per-mille basis of every percentage in a sale config.
	DefaultPercentRate = 1000

	// SecondsPerDay is the length of one sale period day.
	SecondsPerDay = 86400
)

// maxEnd bounds sale periods too long to be represented.
var maxEnd = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

type SaleConfig struct {
	Start                 time.Time         `json:"start"`
	PeriodDays            uint64            `json:"periodDays"`
	HardCap               uint128.Uint128   `json:"hardCap"`
	Price                 uint128.Uint128   `json:"price"`
	PercentRate           uint64            `json:"percentRate"`
	SecondWalletPercent   uint64            `json:"secondWalletPercent"`
	FoundersTokensPercent uint64            `json:"foundersTokensPercent"`
	BountyTokensPercent   uint64            `json:"bountyTokensPercent"`
	SecondWallet          ethcommon.Address `json:"secondWallet"`
	MultisigWallet        ethcommon.Address `json:"multisigWallet"`
	FoundersTokensWallet  ethcommon.Address `json:"foundersTokensWallet"`
	BountyTokensWallet    ethcommon.Address `json:"bountyTokensWallet"`
}

// End returns the first instant at which the sale is no longer open.
func (c SaleConfig) End() time.Time {
	start := c.Start.Unix()
	limit := maxEnd.Unix()
	if start >= limit || c.PeriodDays > uint64(limit-start)/SecondsPerDay {
		return maxEnd
	}
	return time.Unix(start+int64(c.PeriodDays*SecondsPerDay), 0).UTC()
}

// Validate reports configuration that would make contribution math impossible.
func (c SaleConfig) Validate() error {
	if c.PercentRate == 0 {
		return errors.Wrap(ErrInvalidConfiguration, "percent rate must be greater than zero")
	}
	if c.Price.IsZero() {
		return errors.Wrap(ErrInvalidConfiguration, "price must be greater than zero")
	}
	if c.SecondWalletPercent > c.PercentRate {
		return errors.Wrap(ErrInvalidConfiguration, "second wallet percent exceeds percent rate")
	}
	return nil
}

type SaleState struct {
	// Invested is the running sum of accepted contributions. It never decreases.
	Invested        uint128.Uint128 `json:"invested"`
	Paused          bool            `json:"paused"`
	MintingFinished bool            `json:"mintingFinished"`
}

func (s SaleState) RequireNotPaused() error {
	if s.Paused {
		return errors.WithStack(ErrSalePaused)
	}
	return nil
}

// Ownership gates privileged operations on a single owner address.
type Ownership struct {
	Owner ethcommon.Address
}

func (o Ownership) RequireOwner(caller ethcommon.Address) error {
	if caller != o.Owner {
		return errors.Wrapf(ErrUnauthorized, "caller %s", caller.Hex())
	}
	return nil
}
