package entity

import (
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/uint128"
)

type Finalization struct {
	IssuedSupply     uint128.Uint128
	ExtraTokens      uint128.Uint128
	FinalTotalSupply uint128.Uint128
	FoundersTokens   uint128.Uint128
	BountyTokens     uint128.Uint128
	FinalizedBy      ethcommon.Address
	FinalizedAt      time.Time
}
