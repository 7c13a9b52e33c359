package allocation

import "context"

type Repository interface {
	// Allocate atomically checks availability on the identified batch,
	// decrements central stock, and appends a ledger row. Either both
	// effects commit or neither does. Concurrent calls against the same
	// batch are serialized; calls against different batches do not block
	// one another. Returns the created ledger row and the batch's
	// remaining central quantity.
	Allocate(ctx context.Context, req Request) (*Assignment, int64, error)

	// ListRecent returns up to limit ledger rows, newest first, joined
	// with facility and drug display columns.
	ListRecent(ctx context.Context, limit int) ([]*AssignmentView, error)
}
