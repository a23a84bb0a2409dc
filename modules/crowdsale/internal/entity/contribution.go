package entity

import (
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/uint128"
)

// Contribution is the audit record of one accepted contribution.
type Contribution struct {
	ID           uint64
	Sender       ethcommon.Address
	Amount       uint128.Uint128
	BonusPercent uint64
	BaseTokens   uint128.Uint128
	BonusTokens  uint128.Uint128
	TotalTokens  uint128.Uint128
	SecondShare  uint128.Uint128
	PrimaryShare uint128.Uint128
	CreatedAt    time.Time
}
