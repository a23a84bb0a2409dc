package leveldb

import (
	"context"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/uint128"
	goleveldb "github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

func (r *Repository) get(key []byte, v any) error {
	data, err := r.reader().Get(key, nil)
	if err != nil {
		if errors.Is(err, goleveldb.ErrNotFound) {
			return errors.WithStack(errs.NotFound)
		}
		return errors.Wrapf(err, "failed to get %q", key)
	}
	return errors.WithStack(decode(data, v))
}

func (r *Repository) put(key []byte, v any) error {
	data, err := encode(v)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := r.writer().Put(key, data, nil); err != nil {
		return errors.Wrapf(err, "failed to put %q", key)
	}
	return nil
}

func (r *Repository) getAmount(key []byte) (uint128.Uint128, error) {
	var s string
	if err := r.get(key, &s); err != nil {
		if errors.Is(err, errs.NotFound) {
			return uint128.Zero, nil
		}
		return uint128.Zero, errors.WithStack(err)
	}
	return parseAmount(s)
}

func (r *Repository) putAmount(key []byte, amount uint128.Uint128) error {
	if amount.IsZero() {
		if err := r.writer().Delete(key, nil); err != nil {
			return errors.Wrapf(err, "failed to delete %q", key)
		}
		return nil
	}
	return errors.WithStack(r.put(key, amount.String()))
}

// nextSequence increments and returns the counter stored at key, starting from 1.
func (r *Repository) nextSequence(key []byte) (uint64, error) {
	var current uint64
	if err := r.get(key, &current); err != nil && !errors.Is(err, errs.NotFound) {
		return 0, errors.WithStack(err)
	}
	current++
	if err := r.put(key, current); err != nil {
		return 0, errors.WithStack(err)
	}
	return current, nil
}

// scanIndexIds returns the ids encoded at the end of every key with the given prefix, in key order.
func (r *Repository) scanIndexIds(prefix []byte, limit int32, offset int32) ([]uint64, error) {
	iter := r.reader().NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	var ids []uint64
	skipped := int32(0)
	for iter.Next() {
		if skipped < offset {
			skipped++
			continue
		}
		if limit >= 0 && int32(len(ids)) >= limit {
			break
		}
		ids = append(ids, idFromIndexKey(iter.Key()))
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate")
	}
	return ids, nil
}

func (r *Repository) GetSaleConfig(ctx context.Context) (*sale.SaleConfig, error) {
	var record saleConfigRecord
	if err := r.get(keySaleConfig, &record); err != nil {
		return nil, errors.WithStack(err)
	}
	config, err := mapSaleConfigRecordToEntity(record)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &config, nil
}

func (r *Repository) GetSaleState(ctx context.Context) (*sale.SaleState, error) {
	var record saleStateRecord
	if err := r.get(keySaleState, &record); err != nil {
		return nil, errors.WithStack(err)
	}
	state, err := mapSaleStateRecordToEntity(record)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &state, nil
}

func (r *Repository) GetBonusTiers(ctx context.Context) ([]sale.BonusTier, error) {
	var records []bonusTierRecord
	if err := r.get(keyBonusTiers, &records); err != nil {
		if errors.Is(err, errs.NotFound) {
			return []sale.BonusTier{}, nil
		}
		return nil, errors.WithStack(err)
	}
	tiers, err := mapBonusTiersRecordToEntity(records)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return tiers, nil
}

func (r *Repository) GetTokenState(ctx context.Context) (*entity.TokenState, error) {
	var record tokenStateRecord
	if err := r.get(keyTokenState, &record); err != nil {
		return nil, errors.WithStack(err)
	}
	state, err := mapTokenStateRecordToEntity(record)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &state, nil
}

func (r *Repository) GetBalance(ctx context.Context, holder ethcommon.Address) (uint128.Uint128, error) {
	balance, err := r.getAmount(balanceKey(holder))
	return balance, errors.WithStack(err)
}

func (r *Repository) GetForeignBalance(ctx context.Context, token ethcommon.Address, holder ethcommon.Address) (uint128.Uint128, error) {
	balance, err := r.getAmount(foreignBalanceKey(token, holder))
	return balance, errors.WithStack(err)
}

func (r *Repository) getContribution(id uint64) (*entity.Contribution, error) {
	var record contributionRecord
	if err := r.get(contributionKey(id), &record); err != nil {
		return nil, errors.WithStack(err)
	}
	contribution, err := mapContributionRecordToEntity(record)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &contribution, nil
}

func (r *Repository) getContributions(ids []uint64) ([]*entity.Contribution, error) {
	contributions := make([]*entity.Contribution, 0, len(ids))
	for _, id := range ids {
		contribution, err := r.getContribution(id)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get contribution %d", id)
		}
		contributions = append(contributions, contribution)
	}
	return contributions, nil
}

func (r *Repository) GetContributions(ctx context.Context, limit int32, offset int32) ([]*entity.Contribution, error) {
	ids, err := r.scanIndexIds(prefixContribution, limit, offset)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	contributions, err := r.getContributions(ids)
	return contributions, errors.WithStack(err)
}

func (r *Repository) GetContributionsBySender(ctx context.Context, sender ethcommon.Address, limit int32, offset int32) ([]*entity.Contribution, error) {
	ids, err := r.scanIndexIds(contributionSenderPrefix(sender), limit, offset)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	contributions, err := r.getContributions(ids)
	return contributions, errors.WithStack(err)
}

func (r *Repository) GetPayoutsByContributionId(ctx context.Context, contributionId uint64) ([]*entity.Payout, error) {
	ids, err := r.scanIndexIds(payoutContributionPrefix(contributionId), -1, 0)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	payouts := make([]*entity.Payout, 0, len(ids))
	for _, id := range ids {
		var record payoutRecord
		if err := r.get(payoutKey(id), &record); err != nil {
			return nil, errors.Wrapf(err, "failed to get payout %d", id)
		}
		payout, err := mapPayoutRecordToEntity(record)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		payouts = append(payouts, &payout)
	}
	return payouts, nil
}

func (r *Repository) GetFinalization(ctx context.Context) (*entity.Finalization, error) {
	var record finalizationRecord
	if err := r.get(keyFinalization, &record); err != nil {
		return nil, errors.WithStack(err)
	}
	finalization, err := mapFinalizationRecordToEntity(record)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &finalization, nil
}

func (r *Repository) SetSaleConfig(ctx context.Context, config sale.SaleConfig) error {
	return errors.WithStack(r.put(keySaleConfig, mapSaleConfigEntityToRecord(config)))
}

func (r *Repository) SetSaleState(ctx context.Context, state sale.SaleState) error {
	return errors.WithStack(r.put(keySaleState, mapSaleStateEntityToRecord(state)))
}

func (r *Repository) SetBonusTiers(ctx context.Context, tiers []sale.BonusTier) error {
	return errors.WithStack(r.put(keyBonusTiers, mapBonusTiersEntityToRecord(tiers)))
}

func (r *Repository) SetTokenState(ctx context.Context, state entity.TokenState) error {
	return errors.WithStack(r.put(keyTokenState, mapTokenStateEntityToRecord(state)))
}

func (r *Repository) SetBalance(ctx context.Context, holder ethcommon.Address, amount uint128.Uint128) error {
	return errors.WithStack(r.putAmount(balanceKey(holder), amount))
}

func (r *Repository) SetForeignBalance(ctx context.Context, token ethcommon.Address, holder ethcommon.Address, amount uint128.Uint128) error {
	return errors.WithStack(r.putAmount(foreignBalanceKey(token, holder), amount))
}

func (r *Repository) CreateContribution(ctx context.Context, contribution entity.Contribution) (uint64, error) {
	id, err := r.nextSequence(keySeqContribution)
	if err != nil {
		return 0, errors.Wrap(err, "failed to allocate contribution id")
	}
	contribution.ID = id
	if err := r.put(contributionKey(id), mapContributionEntityToRecord(contribution)); err != nil {
		return 0, errors.WithStack(err)
	}
	if err := r.writer().Put(contributionSenderKey(contribution.Sender, id), nil, nil); err != nil {
		return 0, errors.Wrap(err, "failed to index contribution sender")
	}
	return id, nil
}

func (r *Repository) CreatePayout(ctx context.Context, payout entity.Payout) error {
	id, err := r.nextSequence(keySeqPayout)
	if err != nil {
		return errors.Wrap(err, "failed to allocate payout id")
	}
	payout.ID = id
	if err := r.put(payoutKey(id), mapPayoutEntityToRecord(payout)); err != nil {
		return errors.WithStack(err)
	}
	if payout.ContributionID != 0 {
		if err := r.writer().Put(payoutContributionKey(payout.ContributionID, id), nil, nil); err != nil {
			return errors.Wrap(err, "failed to index payout contribution")
		}
	}
	return nil
}

func (r *Repository) CreateFinalization(ctx context.Context, finalization entity.Finalization) error {
	_, err := r.GetFinalization(ctx)
	if err == nil {
		return errors.Wrap(errs.InvalidArgument, "finalization already recorded")
	}
	if !errors.Is(err, errs.NotFound) {
		return errors.WithStack(err)
	}
	return errors.WithStack(r.put(keyFinalization, mapFinalizationEntityToRecord(finalization)))
}
