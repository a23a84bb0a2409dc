package entity

import (
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/uint128"
)

type PayoutKind string

const (
	PayoutKindSecondWallet   PayoutKind = "second_wallet"
	PayoutKindMultisigWallet PayoutKind = "multisig_wallet"
	PayoutKindRetrieveTokens PayoutKind = "retrieve_tokens"
)

// Payout records funds routed out of the sale. Token is the zero address for
// contributed funds, or the foreign token address for retrieved tokens.
type Payout struct {
	ID             uint64
	ContributionID uint64 // zero when not caused by a contribution
	Kind           PayoutKind
	Token          ethcommon.Address
	Wallet         ethcommon.Address
	Amount         uint128.Uint128
	CreatedAt      time.Time
}
