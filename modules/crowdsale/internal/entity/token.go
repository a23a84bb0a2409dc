package entity

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/uint128"
)

// TokenState is the ledger-wide state of the sale token.
type TokenState struct {
	Owner           ethcommon.Address
	TotalSupply     uint128.Uint128
	MintingFinished bool
	TransferAllowed bool
}
