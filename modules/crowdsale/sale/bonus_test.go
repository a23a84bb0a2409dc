package sale

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tier(limit, bonus uint64) BonusTier {
	return BonusTier{Limit: uint128.From64(limit), BonusPercent: bonus}
}

func TestBonusFor(t *testing.T) {
	schedule := NewBonusSchedule(tier(1, 5), tier(2, 10), tier(3, 15))

	testCases := []struct {
		amount   uint64
		expected uint64
	}{
		{0, 15},
		{1, 15},
		{2, 15},
		{3, 5},
		{100, 5},
	}
	for _, tc := range testCases {
		assert.Equalf(t, tc.expected, schedule.BonusFor(uint128.From64(tc.amount)), "amount %d", tc.amount)
	}

	t.Run("empty schedule", func(t *testing.T) {
		var empty BonusSchedule
		assert.Equal(t, uint64(0), empty.BonusFor(uint128.From64(0)))
		assert.Equal(t, uint64(0), empty.BonusFor(uint128.Max))
	})

	t.Run("pure", func(t *testing.T) {
		before := schedule.Tiers()
		for i := 0; i < 3; i++ {
			assert.Equal(t, uint64(15), schedule.BonusFor(uint128.From64(1)))
		}
		assert.Equal(t, before, schedule.Tiers())
	})
}

func TestBonusScheduleMutations(t *testing.T) {
	t.Run("append", func(t *testing.T) {
		var schedule BonusSchedule
		schedule.Append(uint128.From64(10), 20)
		schedule.Append(uint128.From64(20), 10)
		assert.Equal(t, []BonusTier{tier(10, 20), tier(20, 10)}, schedule.Tiers())
	})

	t.Run("insert after", func(t *testing.T) {
		schedule := NewBonusSchedule(tier(1, 5), tier(3, 15))
		require.NoError(t, schedule.InsertAfter(0, uint128.From64(2), 10))
		assert.Equal(t, []BonusTier{tier(1, 5), tier(2, 10), tier(3, 15)}, schedule.Tiers())

		require.NoError(t, schedule.InsertAfter(2, uint128.From64(4), 20))
		assert.Equal(t, tier(4, 20), schedule.Tiers()[3])
	})

	t.Run("insert then remove restores schedule", func(t *testing.T) {
		schedule := NewBonusSchedule(tier(1, 5), tier(2, 10), tier(3, 15))
		before := schedule.Tiers()
		for i := 0; i < schedule.Count(); i++ {
			require.NoError(t, schedule.InsertAfter(i, uint128.From64(99), 99))
			require.NoError(t, schedule.RemoveAt(i+1))
			assert.Equal(t, before, schedule.Tiers())
		}
	})

	t.Run("remove", func(t *testing.T) {
		schedule := NewBonusSchedule(tier(1, 5), tier(2, 10), tier(3, 15))
		require.NoError(t, schedule.RemoveAt(1))
		assert.Equal(t, []BonusTier{tier(1, 5), tier(3, 15)}, schedule.Tiers())
	})

	t.Run("update", func(t *testing.T) {
		schedule := NewBonusSchedule(tier(1, 5), tier(2, 10))
		require.NoError(t, schedule.UpdateAt(1, uint128.From64(7), 70))
		got, err := schedule.Tier(1)
		require.NoError(t, err)
		assert.Equal(t, tier(7, 70), got)
	})

	t.Run("clear", func(t *testing.T) {
		schedule := NewBonusSchedule(tier(1, 5))
		require.NoError(t, schedule.Clear())
		assert.Equal(t, 0, schedule.Count())

		err := schedule.Clear()
		assert.ErrorIs(t, err, ErrEmptyCollection)
	})

	t.Run("out of range", func(t *testing.T) {
		schedule := NewBonusSchedule(tier(1, 5), tier(2, 10))
		before := schedule.Tiers()

		for _, index := range []int{-1, 2, 10} {
			assert.ErrorIs(t, schedule.InsertAfter(index, uint128.From64(1), 1), ErrIndexOutOfRange)
			assert.ErrorIs(t, schedule.RemoveAt(index), ErrIndexOutOfRange)
			assert.ErrorIs(t, schedule.UpdateAt(index, uint128.From64(1), 1), ErrIndexOutOfRange)
			_, err := schedule.Tier(index)
			assert.True(t, errors.Is(err, ErrIndexOutOfRange))
		}
		assert.Equal(t, before, schedule.Tiers())

		var empty BonusSchedule
		assert.ErrorIs(t, empty.InsertAfter(0, uint128.From64(1), 1), ErrIndexOutOfRange)
	})
}

func TestNewBonusScheduleCopiesInput(t *testing.T) {
	tiers := []BonusTier{tier(1, 5)}
	schedule := NewBonusSchedule(tiers...)
	tiers[0] = tier(9, 9)
	assert.Equal(t, []BonusTier{tier(1, 5)}, schedule.Tiers())

	out := schedule.Tiers()
	out[0] = tier(8, 8)
	assert.Equal(t, []BonusTier{tier(1, 5)}, schedule.Tiers())
}
