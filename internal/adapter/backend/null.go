package backend

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	"cryptoledger/internal/core/ports"
)

// NullBackend implements ports.ChainBackend without any network. Addresses
// and txids are random hex strings, sends always succeed, and nothing ever
// confirms unless AdvanceConfirmations is called. Used for development
// environments and tests where no wallet daemon is running.
type NullBackend struct {
	mu            sync.Mutex
	sends         map[string]string // reference -> txid
	confirmations map[string]int    // txid -> count
	received      map[string][]ports.ReceivedTx
}

// NewNullBackend creates an in-memory backend.
func NewNullBackend() *NullBackend {
	return &NullBackend{
		sends:         make(map[string]string),
		confirmations: make(map[string]int),
		received:      make(map[string][]ports.ReceivedTx),
	}
}

// CreateAddress returns a fresh fake address.
func (b *NullBackend) CreateAddress(_ context.Context, label string) (string, error) {
	return "null-" + randomHex(16), nil
}

// Send records the broadcast and returns a fake txid. A repeated reference
// returns the original txid.
func (b *NullBackend) Send(_ context.Context, req ports.SendRequest) (ports.SendResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if txid, ok := b.sends[req.Reference]; ok {
		return ports.SendResult{TxID: txid}, nil
	}
	txid := randomHex(32)
	b.sends[req.Reference] = txid
	b.confirmations[txid] = 0
	return ports.SendResult{TxID: txid}, nil
}

// LookupSend resolves a recorded broadcast by reference.
func (b *NullBackend) LookupSend(_ context.Context, reference string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	txid, ok := b.sends[reference]
	return txid, ok, nil
}

// GetConfirmations reports the stored confirmation count.
func (b *NullBackend) GetConfirmations(_ context.Context, txid string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.confirmations[txid]
	if !ok {
		return 0, fmt.Errorf("unknown txid %s", txid)
	}
	return n, nil
}

// ListReceived reports transfers registered with InjectReceived.
func (b *NullBackend) ListReceived(_ context.Context, address string) ([]ports.ReceivedTx, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ports.ReceivedTx(nil), b.received[address]...), nil
}

// AdvanceConfirmations bumps a txid's confirmation count.
func (b *NullBackend) AdvanceConfirmations(txid string, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.confirmations[txid] < n {
		b.confirmations[txid] = n
	}
}

// InjectReceived registers a fake inbound transfer for an address.
func (b *NullBackend) InjectReceived(address string, tx ports.ReceivedTx) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.received[address] = append(b.received[address], tx)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
