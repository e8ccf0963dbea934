package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cryptoledger/config"
	"cryptoledger/internal/core/ports"
	"cryptoledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPJSONBackend implements ports.ChainBackend against a wallet daemon
// gateway speaking plain JSON over HTTP. Every request carries a bearer
// token; send requests carry the deterministic reference so the gateway
// can absorb replays.
type HTTPJSONBackend struct {
	baseURL    string
	token      string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewHTTPJSONBackend creates a backend client from asset configuration.
func NewHTTPJSONBackend(cfg config.BackendConfig, log zerolog.Logger) *HTTPJSONBackend {
	return &HTTPJSONBackend{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

// NewHTTPJSONBackendWithClient injects the HTTP client, used by tests.
func NewHTTPJSONBackendWithClient(cfg config.BackendConfig, client HTTPClient, log zerolog.Logger) *HTTPJSONBackend {
	b := NewHTTPJSONBackend(cfg, log)
	b.httpClient = client
	return b
}

type createAddressRequest struct {
	Label string `json:"label"`
}

type createAddressResponse struct {
	Address string `json:"address"`
}

type sendRequest struct {
	Reference string `json:"reference"`
	Address   string `json:"address"`
	Amount    int64  `json:"amount"`
}

type sendResponse struct {
	TxID string `json:"txid"`
	Fee  int64  `json:"fee"`
}

type confirmationsResponse struct {
	Confirmations int `json:"confirmations"`
}

type receivedResponse struct {
	Received []struct {
		TxID          string `json:"txid"`
		Amount        int64  `json:"amount"`
		Confirmations int    `json:"confirmations"`
	} `json:"received"`
}

// CreateAddress asks the gateway for a fresh receiving address.
func (b *HTTPJSONBackend) CreateAddress(ctx context.Context, label string) (string, error) {
	var out createAddressResponse
	if err := b.call(ctx, http.MethodPost, "/addresses", createAddressRequest{Label: label}, &out); err != nil {
		return "", err
	}
	if out.Address == "" {
		return "", apperror.ErrBackendRejected(errors.New("empty address in gateway response"))
	}
	return out.Address, nil
}

// Send broadcasts a transfer and returns the network transaction id and
// the fee the gateway paid.
func (b *HTTPJSONBackend) Send(ctx context.Context, req ports.SendRequest) (ports.SendResult, error) {
	var out sendResponse
	body := sendRequest{Reference: req.Reference, Address: req.Address, Amount: req.Amount}
	if err := b.call(ctx, http.MethodPost, "/sends", body, &out); err != nil {
		return ports.SendResult{}, err
	}
	if out.TxID == "" {
		return ports.SendResult{}, apperror.ErrBackendRejected(errors.New("empty txid in gateway response"))
	}
	return ports.SendResult{TxID: out.TxID, Fee: out.Fee}, nil
}

// LookupSend resolves a previous Send by its reference. A 404 from the
// gateway is the definitive "never seen" answer.
func (b *HTTPJSONBackend) LookupSend(ctx context.Context, reference string) (string, bool, error) {
	var out sendResponse
	err := b.call(ctx, http.MethodGet, "/sends/"+reference, nil, &out)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return out.TxID, true, nil
}

// GetConfirmations reports the current confirmation count of a txid.
func (b *HTTPJSONBackend) GetConfirmations(ctx context.Context, txid string) (int, error) {
	var out confirmationsResponse
	if err := b.call(ctx, http.MethodGet, "/transactions/"+txid, nil, &out); err != nil {
		return 0, err
	}
	return out.Confirmations, nil
}

// ListReceived enumerates all inbound transfers to an address.
func (b *HTTPJSONBackend) ListReceived(ctx context.Context, address string) ([]ports.ReceivedTx, error) {
	var out receivedResponse
	if err := b.call(ctx, http.MethodGet, "/addresses/"+address+"/received", nil, &out); err != nil {
		return nil, err
	}
	txs := make([]ports.ReceivedTx, 0, len(out.Received))
	for _, r := range out.Received {
		txs = append(txs, ports.ReceivedTx{TxID: r.TxID, Amount: r.Amount, Confirmations: r.Confirmations})
	}
	return txs, nil
}

// statusError carries the gateway HTTP status so callers can distinguish
// a definitive rejection from transport trouble.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.status, e.body)
}

func isStatus(err error, status int) bool {
	var se *statusError
	return errors.As(err, &se) && se.status == status
}

func (b *HTTPJSONBackend) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling gateway request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	start := time.Now()
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return apperror.ErrBackendUnavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apperror.ErrBackendUnavailable(err)
	}

	b.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("gateway call")

	if resp.StatusCode >= 500 {
		return apperror.ErrBackendUnavailable(&statusError{status: resp.StatusCode, body: truncate(raw)})
	}
	if resp.StatusCode >= 400 {
		return apperror.ErrBackendRejected(&statusError{status: resp.StatusCode, body: truncate(raw)})
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return apperror.ErrBackendRejected(fmt.Errorf("decoding gateway response: %w", err))
		}
	}
	return nil
}

func truncate(b []byte) string {
	const max = 256
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
