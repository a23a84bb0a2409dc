// Package ledger implements the sale token: balances, total supply, a single
// owner allowed to mint, and the one-way minting and transfer switches.
package ledger

import (
	"context"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/uint128"
)

var (
	ErrNotTokenOwner       = errors.New("caller is not the token owner")
	ErrMintingFinished     = errors.New("minting is finished")
	ErrTransferNotAllowed  = errors.New("token transfer is not allowed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrZeroAddress         = errors.New("zero address")
)

// Store persists the token state and balances. Ledger calls are atomic only
// when the Store is bound to a transaction.
type Store interface {
	// GetTokenState returns errs.NotFound if the token has not been initialized.
	GetTokenState(ctx context.Context) (*entity.TokenState, error)
	SetTokenState(ctx context.Context, state entity.TokenState) error
	// GetBalance returns zero for unknown holders.
	GetBalance(ctx context.Context, holder ethcommon.Address) (uint128.Uint128, error)
	SetBalance(ctx context.Context, holder ethcommon.Address, amount uint128.Uint128) error
}

type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

func (l *Ledger) State(ctx context.Context) (*entity.TokenState, error) {
	state, err := l.store.GetTokenState(ctx)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return nil, errors.Wrap(err, "token is not initialized")
		}
		return nil, errors.Wrap(err, "failed to get token state")
	}
	return state, nil
}

func (l *Ledger) TotalSupply(ctx context.Context) (uint128.Uint128, error) {
	state, err := l.State(ctx)
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	return state.TotalSupply, nil
}

func (l *Ledger) BalanceOf(ctx context.Context, holder ethcommon.Address) (uint128.Uint128, error) {
	balance, err := l.store.GetBalance(ctx, holder)
	if err != nil {
		return uint128.Zero, errors.Wrap(err, "failed to get balance")
	}
	return balance, nil
}

// Mint creates amount new tokens for to. Only the owner can mint, and only until FinishMinting.
func (l *Ledger) Mint(ctx context.Context, caller, to ethcommon.Address, amount uint128.Uint128) error {
	state, err := l.ownerState(ctx, caller)
	if err != nil {
		return errors.WithStack(err)
	}
	if state.MintingFinished {
		return errors.WithStack(ErrMintingFinished)
	}
	if to == (ethcommon.Address{}) {
		return errors.Wrap(ErrZeroAddress, "cannot mint to zero address")
	}

	supply, overflow := state.TotalSupply.AddOverflow(amount)
	if overflow {
		return errors.WithStack(errs.OverflowUint128)
	}
	if err := l.credit(ctx, to, amount); err != nil {
		return errors.WithStack(err)
	}

	state.TotalSupply = supply
	if err := l.store.SetTokenState(ctx, *state); err != nil {
		return errors.Wrap(err, "failed to update token state")
	}
	return nil
}

// Transfer moves tokens between holders. Until AllowTransfer is called only
// the owner can send tokens.
func (l *Ledger) Transfer(ctx context.Context, from, to ethcommon.Address, amount uint128.Uint128) error {
	state, err := l.State(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !state.TransferAllowed && from != state.Owner {
		return errors.WithStack(ErrTransferNotAllowed)
	}
	if to == (ethcommon.Address{}) {
		return errors.Wrap(ErrZeroAddress, "cannot transfer to zero address")
	}

	balance, err := l.BalanceOf(ctx, from)
	if err != nil {
		return errors.WithStack(err)
	}
	if balance.Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientBalance, "balance %s, amount %s", balance, amount)
	}
	if from == to || amount.IsZero() {
		return nil
	}

	if err := l.store.SetBalance(ctx, from, balance.Sub(amount)); err != nil {
		return errors.Wrap(err, "failed to debit sender")
	}
	if err := l.credit(ctx, to, amount); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// FinishMinting permanently disables Mint.
func (l *Ledger) FinishMinting(ctx context.Context, caller ethcommon.Address) error {
	state, err := l.ownerState(ctx, caller)
	if err != nil {
		return errors.WithStack(err)
	}
	if state.MintingFinished {
		return errors.WithStack(ErrMintingFinished)
	}
	state.MintingFinished = true
	if err := l.store.SetTokenState(ctx, *state); err != nil {
		return errors.Wrap(err, "failed to update token state")
	}
	return nil
}

func (l *Ledger) TransferOwnership(ctx context.Context, caller, newOwner ethcommon.Address) error {
	state, err := l.ownerState(ctx, caller)
	if err != nil {
		return errors.WithStack(err)
	}
	if newOwner == (ethcommon.Address{}) {
		return errors.Wrap(ErrZeroAddress, "cannot transfer ownership to zero address")
	}
	state.Owner = newOwner
	if err := l.store.SetTokenState(ctx, *state); err != nil {
		return errors.Wrap(err, "failed to update token state")
	}
	return nil
}

// AllowTransfer lets every holder transfer tokens. It cannot be undone.
func (l *Ledger) AllowTransfer(ctx context.Context, caller ethcommon.Address) error {
	state, err := l.ownerState(ctx, caller)
	if err != nil {
		return errors.WithStack(err)
	}
	if state.TransferAllowed {
		return nil
	}
	state.TransferAllowed = true
	if err := l.store.SetTokenState(ctx, *state); err != nil {
		return errors.Wrap(err, "failed to update token state")
	}
	return nil
}

func (l *Ledger) ownerState(ctx context.Context, caller ethcommon.Address) (*entity.TokenState, error) {
	state, err := l.State(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if caller != state.Owner {
		return nil, errors.Wrapf(ErrNotTokenOwner, "caller %s", caller.Hex())
	}
	return state, nil
}

func (l *Ledger) credit(ctx context.Context, holder ethcommon.Address, amount uint128.Uint128) error {
	balance, err := l.BalanceOf(ctx, holder)
	if err != nil {
		return errors.WithStack(err)
	}
	balance, overflow := balance.AddOverflow(amount)
	if overflow {
		return errors.WithStack(errs.OverflowUint128)
	}
	if err := l.store.SetBalance(ctx, holder, balance); err != nil {
		return errors.Wrap(err, "failed to credit holder")
	}
	return nil
}
