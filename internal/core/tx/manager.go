// Package tx defines the transaction management abstraction.
package tx

import "context"

// Manager runs functions inside a database transaction.
// Implementations must reuse an active transaction found in ctx.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
