package settlement

import "context"

// TxRunner runs a function atomically: either every store write inside fn is
// applied, or none is. The gorm-backed transaction manager and the in-memory
// store both satisfy it.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
