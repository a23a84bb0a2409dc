package leveldb

import (
	"time"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
	"github.com/vmihailenco/msgpack"
)

// Amounts are stored as decimal strings and addresses as hex strings, so the
// records stay readable with any msgpack tool.

type saleConfigRecord struct {
	Start                 int64  `msgpack:"start"`
	PeriodDays            uint64 `msgpack:"period_days"`
	HardCap               string `msgpack:"hard_cap"`
	Price                 string `msgpack:"price"`
	PercentRate           uint64 `msgpack:"percent_rate"`
	SecondWalletPercent   uint64 `msgpack:"second_wallet_percent"`
	FoundersTokensPercent uint64 `msgpack:"founders_tokens_percent"`
	BountyTokensPercent   uint64 `msgpack:"bounty_tokens_percent"`
	SecondWallet          string `msgpack:"second_wallet"`
	MultisigWallet        string `msgpack:"multisig_wallet"`
	FoundersTokensWallet  string `msgpack:"founders_tokens_wallet"`
	BountyTokensWallet    string `msgpack:"bounty_tokens_wallet"`
}

type saleStateRecord struct {
	Invested        string `msgpack:"invested"`
	Paused          bool   `msgpack:"paused"`
	MintingFinished bool   `msgpack:"minting_finished"`
}

type bonusTierRecord struct {
	Limit        string `msgpack:"limit"`
	BonusPercent uint64 `msgpack:"bonus_percent"`
}

type tokenStateRecord struct {
	Owner           string `msgpack:"owner"`
	TotalSupply     string `msgpack:"total_supply"`
	MintingFinished bool   `msgpack:"minting_finished"`
	TransferAllowed bool   `msgpack:"transfer_allowed"`
}

type contributionRecord struct {
	ID           uint64 `msgpack:"id"`
	Sender       string `msgpack:"sender"`
	Amount       string `msgpack:"amount"`
	BonusPercent uint64 `msgpack:"bonus_percent"`
	BaseTokens   string `msgpack:"base_tokens"`
	BonusTokens  string `msgpack:"bonus_tokens"`
	TotalTokens  string `msgpack:"total_tokens"`
	SecondShare  string `msgpack:"second_share"`
	PrimaryShare string `msgpack:"primary_share"`
	CreatedAt    int64  `msgpack:"created_at"`
}

type payoutRecord struct {
	ID             uint64 `msgpack:"id"`
	ContributionID uint64 `msgpack:"contribution_id"`
	Kind           string `msgpack:"kind"`
	Token          string `msgpack:"token"`
	Wallet         string `msgpack:"wallet"`
	Amount         string `msgpack:"amount"`
	CreatedAt      int64  `msgpack:"created_at"`
}

type finalizationRecord struct {
	IssuedSupply     string `msgpack:"issued_supply"`
	ExtraTokens      string `msgpack:"extra_tokens"`
	FinalTotalSupply string `msgpack:"final_total_supply"`
	FoundersTokens   string `msgpack:"founders_tokens"`
	BountyTokens     string `msgpack:"bounty_tokens"`
	FinalizedBy      string `msgpack:"finalized_by"`
	FinalizedAt      int64  `msgpack:"finalized_at"`
}

func encode(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode record")
	}
	return data, nil
}

func decode(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "failed to decode record")
	}
	return nil
}

func parseAmount(s string) (uint128.Uint128, error) {
	if s == "" {
		return uint128.Zero, nil
	}
	amount, err := uint128.FromString(s)
	if err != nil {
		return uint128.Zero, errors.Wrapf(err, "invalid stored amount %q", s)
	}
	return amount, nil
}

func parseAmounts(dst []*uint128.Uint128, src ...string) error {
	for i, s := range src {
		amount, err := parseAmount(s)
		if err != nil {
			return errors.WithStack(err)
		}
		*dst[i] = amount
	}
	return nil
}

func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(0, v).UTC()
}

func mapSaleConfigEntityToRecord(src sale.SaleConfig) saleConfigRecord {
	return saleConfigRecord{
		Start:                 src.Start.Unix(),
		PeriodDays:            src.PeriodDays,
		HardCap:               src.HardCap.String(),
		Price:                 src.Price.String(),
		PercentRate:           src.PercentRate,
		SecondWalletPercent:   src.SecondWalletPercent,
		FoundersTokensPercent: src.FoundersTokensPercent,
		BountyTokensPercent:   src.BountyTokensPercent,
		SecondWallet:          src.SecondWallet.Hex(),
		MultisigWallet:        src.MultisigWallet.Hex(),
		FoundersTokensWallet:  src.FoundersTokensWallet.Hex(),
		BountyTokensWallet:    src.BountyTokensWallet.Hex(),
	}
}

func mapSaleConfigRecordToEntity(src saleConfigRecord) (sale.SaleConfig, error) {
	dst := sale.SaleConfig{
		Start:                 time.Unix(src.Start, 0).UTC(),
		PeriodDays:            src.PeriodDays,
		PercentRate:           src.PercentRate,
		SecondWalletPercent:   src.SecondWalletPercent,
		FoundersTokensPercent: src.FoundersTokensPercent,
		BountyTokensPercent:   src.BountyTokensPercent,
		SecondWallet:          ethcommon.HexToAddress(src.SecondWallet),
		MultisigWallet:        ethcommon.HexToAddress(src.MultisigWallet),
		FoundersTokensWallet:  ethcommon.HexToAddress(src.FoundersTokensWallet),
		BountyTokensWallet:    ethcommon.HexToAddress(src.BountyTokensWallet),
	}
	if err := parseAmounts([]*uint128.Uint128{&dst.HardCap, &dst.Price}, src.HardCap, src.Price); err != nil {
		return sale.SaleConfig{}, errors.WithStack(err)
	}
	return dst, nil
}

func mapSaleStateEntityToRecord(src sale.SaleState) saleStateRecord {
	return saleStateRecord{
		Invested:        src.Invested.String(),
		Paused:          src.Paused,
		MintingFinished: src.MintingFinished,
	}
}

func mapSaleStateRecordToEntity(src saleStateRecord) (sale.SaleState, error) {
	invested, err := parseAmount(src.Invested)
	if err != nil {
		return sale.SaleState{}, errors.WithStack(err)
	}
	return sale.SaleState{
		Invested:        invested,
		Paused:          src.Paused,
		MintingFinished: src.MintingFinished,
	}, nil
}

func mapBonusTiersEntityToRecord(src []sale.BonusTier) []bonusTierRecord {
	return lo.Map(src, func(tier sale.BonusTier, _ int) bonusTierRecord {
		return bonusTierRecord{
			Limit:        tier.Limit.String(),
			BonusPercent: tier.BonusPercent,
		}
	})
}

func mapBonusTiersRecordToEntity(src []bonusTierRecord) ([]sale.BonusTier, error) {
	tiers := make([]sale.BonusTier, 0, len(src))
	for _, record := range src {
		limit, err := parseAmount(record.Limit)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		tiers = append(tiers, sale.BonusTier{Limit: limit, BonusPercent: record.BonusPercent})
	}
	return tiers, nil
}

func mapTokenStateEntityToRecord(src entity.TokenState) tokenStateRecord {
	return tokenStateRecord{
		Owner:           src.Owner.Hex(),
		TotalSupply:     src.TotalSupply.String(),
		MintingFinished: src.MintingFinished,
		TransferAllowed: src.TransferAllowed,
	}
}

func mapTokenStateRecordToEntity(src tokenStateRecord) (entity.TokenState, error) {
	supply, err := parseAmount(src.TotalSupply)
	if err != nil {
		return entity.TokenState{}, errors.WithStack(err)
	}
	return entity.TokenState{
		Owner:           ethcommon.HexToAddress(src.Owner),
		TotalSupply:     supply,
		MintingFinished: src.MintingFinished,
		TransferAllowed: src.TransferAllowed,
	}, nil
}

func mapContributionEntityToRecord(src entity.Contribution) contributionRecord {
	return contributionRecord{
		ID:           src.ID,
		Sender:       src.Sender.Hex(),
		Amount:       src.Amount.String(),
		BonusPercent: src.BonusPercent,
		BaseTokens:   src.BaseTokens.String(),
		BonusTokens:  src.BonusTokens.String(),
		TotalTokens:  src.TotalTokens.String(),
		SecondShare:  src.SecondShare.String(),
		PrimaryShare: src.PrimaryShare.String(),
		CreatedAt:    unixNano(src.CreatedAt),
	}
}

func mapContributionRecordToEntity(src contributionRecord) (entity.Contribution, error) {
	dst := entity.Contribution{
		ID:           src.ID,
		Sender:       ethcommon.HexToAddress(src.Sender),
		BonusPercent: src.BonusPercent,
		CreatedAt:    fromUnixNano(src.CreatedAt),
	}
	err := parseAmounts(
		[]*uint128.Uint128{&dst.Amount, &dst.BaseTokens, &dst.BonusTokens, &dst.TotalTokens, &dst.SecondShare, &dst.PrimaryShare},
		src.Amount, src.BaseTokens, src.BonusTokens, src.TotalTokens, src.SecondShare, src.PrimaryShare,
	)
	if err != nil {
		return entity.Contribution{}, errors.WithStack(err)
	}
	return dst, nil
}

func mapPayoutEntityToRecord(src entity.Payout) payoutRecord {
	return payoutRecord{
		ID:             src.ID,
		ContributionID: src.ContributionID,
		Kind:           string(src.Kind),
		Token:          src.Token.Hex(),
		Wallet:         src.Wallet.Hex(),
		Amount:         src.Amount.String(),
		CreatedAt:      unixNano(src.CreatedAt),
	}
}

func mapPayoutRecordToEntity(src payoutRecord) (entity.Payout, error) {
	amount, err := parseAmount(src.Amount)
	if err != nil {
		return entity.Payout{}, errors.WithStack(err)
	}
	return entity.Payout{
		ID:             src.ID,
		ContributionID: src.ContributionID,
		Kind:           entity.PayoutKind(src.Kind),
		Token:          ethcommon.HexToAddress(src.Token),
		Wallet:         ethcommon.HexToAddress(src.Wallet),
		Amount:         amount,
		CreatedAt:      fromUnixNano(src.CreatedAt),
	}, nil
}

func mapFinalizationEntityToRecord(src entity.Finalization) finalizationRecord {
	return finalizationRecord{
		IssuedSupply:     src.IssuedSupply.String(),
		ExtraTokens:      src.ExtraTokens.String(),
		FinalTotalSupply: src.FinalTotalSupply.String(),
		FoundersTokens:   src.FoundersTokens.String(),
		BountyTokens:     src.BountyTokens.String(),
		FinalizedBy:      src.FinalizedBy.Hex(),
		FinalizedAt:      unixNano(src.FinalizedAt),
	}
}

func mapFinalizationRecordToEntity(src finalizationRecord) (entity.Finalization, error) {
	dst := entity.Finalization{
		FinalizedBy: ethcommon.HexToAddress(src.FinalizedBy),
		FinalizedAt: fromUnixNano(src.FinalizedAt),
	}
	err := parseAmounts(
		[]*uint128.Uint128{&dst.IssuedSupply, &dst.ExtraTokens, &dst.FinalTotalSupply, &dst.FoundersTokens, &dst.BountyTokens},
		src.IssuedSupply, src.ExtraTokens, src.FinalTotalSupply, src.FoundersTokens, src.BountyTokens,
	)
	if err != nil {
		return entity.Finalization{}, errors.WithStack(err)
	}
	return dst, nil
}
