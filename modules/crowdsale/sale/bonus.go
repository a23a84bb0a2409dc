package sale

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
)

type BonusTier struct {
	Limit        uint128.Uint128 `json:"limit"`
	BonusPercent uint64          `json:"bonusPercent"`
}

// BonusSchedule is an ordered list of bonus tiers addressed by 0-based index.
// The zero value is an empty schedule ready to use.
type BonusSchedule struct {
	tiers []BonusTier
}

func NewBonusSchedule(tiers ...BonusTier) *BonusSchedule {
	return &BonusSchedule{tiers: slices.Clone(tiers)}
}

func (s *BonusSchedule) Count() int {
	return len(s.tiers)
}

// Tiers returns a copy of the tiers in index order.
func (s *BonusSchedule) Tiers() []BonusTier {
	return slices.Clone(s.tiers)
}

func (s *BonusSchedule) Tier(index int) (BonusTier, error) {
	if err := s.checkIndex(index); err != nil {
		return BonusTier{}, errors.WithStack(err)
	}
	return s.tiers[index], nil
}

func (s *BonusSchedule) Append(limit uint128.Uint128, bonusPercent uint64) {
	s.tiers = append(s.tiers, BonusTier{Limit: limit, BonusPercent: bonusPercent})
}

// InsertAfter places a new tier at index+1, shifting later tiers up by one.
func (s *BonusSchedule) InsertAfter(index int, limit uint128.Uint128, bonusPercent uint64) error {
	if err := s.checkIndex(index); err != nil {
		return errors.WithStack(err)
	}
	s.tiers = slices.Insert(s.tiers, index+1, BonusTier{Limit: limit, BonusPercent: bonusPercent})
	return nil
}

// RemoveAt deletes the tier at index, shifting later tiers down by one.
func (s *BonusSchedule) RemoveAt(index int) error {
	if err := s.checkIndex(index); err != nil {
		return errors.WithStack(err)
	}
	s.tiers = slices.Delete(s.tiers, index, index+1)
	return nil
}

func (s *BonusSchedule) UpdateAt(index int, limit uint128.Uint128, bonusPercent uint64) error {
	if err := s.checkIndex(index); err != nil {
		return errors.WithStack(err)
	}
	s.tiers[index] = BonusTier{Limit: limit, BonusPercent: bonusPercent}
	return nil
}

func (s *BonusSchedule) Clear() error {
	if len(s.tiers) == 0 {
		return errors.WithStack(ErrEmptyCollection)
	}
	s.tiers = nil
	return nil
}

// BonusFor returns the bonus percent for a contribution amount.
//
// Tiers are scanned from the highest index down. The first tier whose limit is
// greater than amount wins; every tier passed on the way down becomes the
// fallback. An empty schedule yields 0.
func (s *BonusSchedule) BonusFor(amount uint128.Uint128) uint64 {
	var candidate uint64
	for i := len(s.tiers) - 1; i >= 0; i-- {
		tier := s.tiers[i]
		if amount.Cmp(tier.Limit) < 0 {
			return tier.BonusPercent
		}
		candidate = tier.BonusPercent
	}
	return candidate
}

func (s *BonusSchedule) checkIndex(index int) error {
	if index < 0 || index >= len(s.tiers) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, count %d", index, len(s.tiers))
	}
	return nil
}
