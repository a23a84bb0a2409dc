package datagateway

import "context"

// Tx is a storage transaction. Every guarded change of one crowdsale operation
// (sale state, token ledger, payouts, audit records) happens inside a single Tx.
type Tx interface {
	// Commit commits the DB transaction. All changes made after Begin() will be persisted. Calling Commit() will close the current transaction.
	// If Commit() is called without a prior Begin(), it must be a no-op.
	Commit(ctx context.Context) error
	// Rollback rolls back the DB transaction. All changes made after Begin() will be discarded.
	// Rollback() must be safe to call even if no transaction is active, or after Commit().
	Rollback(ctx context.Context) error
}
