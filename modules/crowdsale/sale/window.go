package sale

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Window answers whether a contribution may be accepted at a given moment.
type Window struct {
	config SaleConfig
	state  SaleState
}

func NewWindow(config SaleConfig, state SaleState) Window {
	return Window{config: config, state: state}
}

// IsOpen reports start <= now < start + periodDays days, at second precision.
func (w Window) IsOpen(now time.Time) bool {
	sec := now.Unix()
	return sec >= w.config.Start.Unix() && sec < w.config.End().Unix()
}

// IsUnderCap compares the running total before the pending contribution is added,
// so the contribution that crosses the cap is still accepted.
func (w Window) IsUnderCap() bool {
	return w.state.Invested.Cmp(w.config.HardCap) <= 0
}

// Admit checks the pause flag, the time window and the hard cap, in that order.
func (w Window) Admit(now time.Time) error {
	if err := w.state.RequireNotPaused(); err != nil {
		return errors.WithStack(err)
	}
	if !w.IsOpen(now) {
		return errors.WithStack(ErrSaleNotOpen)
	}
	if !w.IsUnderCap() {
		return errors.WithStack(ErrHardCapExceeded)
	}
	return nil
}
