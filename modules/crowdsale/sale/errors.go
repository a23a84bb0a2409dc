package sale

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/common/errs"
)

var (
	ErrUnauthorized         = errors.New("caller is not the owner")
	ErrIndexOutOfRange      = errors.New("bonus index out of range")
	ErrEmptyCollection      = errors.New("bonus schedule is empty")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrSalePaused           = errors.New("sale is paused")
	ErrSaleNotOpen          = errors.New("sale is not open")
	ErrHardCapExceeded      = errors.New("hard cap exceeded")
	ErrArithmeticOverflow   = errors.Wrap(errs.OverflowUint128, "arithmetic overflow")
	ErrIssuanceFailed       = errors.New("token issuance failed")
	ErrAlreadyFinalized     = errors.New("sale already finalized")
	ErrInvalidConfiguration = errors.New("invalid sale configuration")
	ErrPayoutFailed         = errors.New("fund payout failed")
	ErrOwnTokenRetrieval    = errors.New("cannot retrieve the sale token")
)
