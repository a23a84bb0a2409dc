package leveldb

import (
	"encoding/binary"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

var (
	keySaleConfig   = []byte("sale/config")
	keySaleState    = []byte("sale/state")
	keyBonusTiers   = []byte("sale/bonus_tiers")
	keyFinalization = []byte("sale/finalization")
	keyTokenState   = []byte("token/state")

	keySeqContribution = []byte("seq/contribution")
	keySeqPayout       = []byte("seq/payout")

	prefixBalance            = []byte("token/balance/")
	prefixForeignBalance     = []byte("foreign/balance/")
	prefixContribution       = []byte("contribution/")
	prefixContributionSender = []byte("contribution_sender/")
	prefixPayout             = []byte("payout/")
	prefixPayoutContribution = []byte("payout_contribution/")
)

func concat(parts ...[]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	key := make([]byte, 0, size)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

func uint64Bytes(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}

func balanceKey(holder ethcommon.Address) []byte {
	return concat(prefixBalance, holder.Bytes())
}

func foreignBalanceKey(token, holder ethcommon.Address) []byte {
	return concat(prefixForeignBalance, token.Bytes(), holder.Bytes())
}

func contributionKey(id uint64) []byte {
	return concat(prefixContribution, uint64Bytes(id))
}

func contributionSenderPrefix(sender ethcommon.Address) []byte {
	return concat(prefixContributionSender, sender.Bytes())
}

func contributionSenderKey(sender ethcommon.Address, id uint64) []byte {
	return concat(contributionSenderPrefix(sender), uint64Bytes(id))
}

func payoutKey(id uint64) []byte {
	return concat(prefixPayout, uint64Bytes(id))
}

func payoutContributionPrefix(contributionId uint64) []byte {
	return concat(prefixPayoutContribution, uint64Bytes(contributionId))
}

func payoutContributionKey(contributionId, payoutId uint64) []byte {
	return concat(payoutContributionPrefix(contributionId), uint64Bytes(payoutId))
}

// idFromIndexKey returns the trailing id of an index key.
func idFromIndexKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key[len(key)-8:])
}
