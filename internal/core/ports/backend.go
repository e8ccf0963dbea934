package ports

import "context"

//go:generate mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mocks

// SendRequest describes one outgoing network transfer. Reference is the
// deterministic identity of the broadcast (the NetworkTransaction id);
// backends must treat a repeated Reference as the same send, never as a
// second spend.
type SendRequest struct {
	Reference string
	Address   string
	Amount    int64 // smallest unit
}

// SendResult reports a completed broadcast: the network transaction id and
// the network fee the backend paid, in the smallest unit. Fee is zero when
// the backend does not report fees.
type SendResult struct {
	TxID string
	Fee  int64
}

// ReceivedTx is one inbound transfer reported for a receiving address.
type ReceivedTx struct {
	TxID          string
	Amount        int64 // smallest unit
	Confirmations int
}

// ChainBackend is the contract the external cryptocurrency backend must
// provide. Implementations talk to the network and may block for long
// periods; callers never invoke them while holding an open store
// transaction.
type ChainBackend interface {
	// CreateAddress asks the backend for a fresh receiving address.
	CreateAddress(ctx context.Context, label string) (string, error)
	// Send broadcasts a transfer and returns the network transaction id
	// and the fee paid.
	Send(ctx context.Context, req SendRequest) (SendResult, error)
	// LookupSend resolves a previous Send by its deterministic reference.
	// found=false with nil error means the backend definitively never saw
	// the broadcast; an error means it cannot tell.
	LookupSend(ctx context.Context, reference string) (txid string, found bool, err error)
	// GetConfirmations reports the current confirmation count of a
	// network transaction.
	GetConfirmations(ctx context.Context, txid string) (int, error)
	// ListReceived enumerates all inbound transfers to an address, used by
	// the full rescan to recover deposits whose notification was missed.
	ListReceived(ctx context.Context, address string) ([]ReceivedTx, error)
}
