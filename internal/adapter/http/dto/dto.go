package dto

// CreateAccountRequest is the request body for account creation.
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// AccountResponse is the account representation returned by the API.
// Balance carries the smallest-unit integer, BalanceDisplay the
// human-readable decimal form.
type AccountResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Balance        int64  `json:"balance"`
	BalanceDisplay string `json:"balance_display"`
	CreatedAt      string `json:"created_at"`
}

// AddressResponse is the receiving address representation.
type AddressResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
}

// TransferRequest is the request body for an internal transfer. Amount is a
// display-unit decimal string ("0.001").
type TransferRequest struct {
	FromAccountID string `json:"from_account_id" binding:"required,uuid"`
	ToAccountID   string `json:"to_account_id" binding:"required,uuid"`
	Amount        string `json:"amount" binding:"required"`
	Note          string `json:"note" binding:"max=255"`
}

// WithdrawRequest is the request body for an external withdrawal.
type WithdrawRequest struct {
	FromAccountID string `json:"from_account_id" binding:"required,uuid"`
	Address       string `json:"address" binding:"required,min=1,max=255"`
	Amount        string `json:"amount" binding:"required"`
	Note          string `json:"note" binding:"max=255"`
}

// SendRequest is the request body for the auto-routing send: a target
// address owned by the wallet becomes an internal transfer, anything else
// a withdrawal.
type SendRequest struct {
	FromAccountID string `json:"from_account_id" binding:"required,uuid"`
	Address       string `json:"address" binding:"required,min=1,max=255"`
	Amount        string `json:"amount" binding:"required"`
	Note          string `json:"note" binding:"max=255"`
}

// TransactionResponse is the ledger movement representation.
type TransactionResponse struct {
	ID                   string  `json:"id"`
	Type                 string  `json:"type"`
	Amount               int64   `json:"amount"`
	AmountDisplay        string  `json:"amount_display"`
	DebitAccountID       *string `json:"debit_account_id,omitempty"`
	CreditAccountID      *string `json:"credit_account_id,omitempty"`
	NetworkTransactionID *string `json:"network_transaction_id,omitempty"`
	Note                 string  `json:"note,omitempty"`
	Processed            bool    `json:"processed"`
	CreatedAt            string  `json:"created_at"`
}

// WalletNotifyRequest is the push notification from the backend's wallet
// daemon hook. Amount is in smallest units; the daemon side is not a
// human.
type WalletNotifyRequest struct {
	Address       string `json:"address" binding:"required"`
	TxID          string `json:"txid" binding:"required"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	Confirmations int    `json:"confirmations" binding:"gte=0"`
}

// NetworkTransactionResponse represents a network transaction, including
// the broadcast bookkeeping operators inspect on ambiguous rows.
type NetworkTransactionResponse struct {
	ID            string  `json:"id"`
	Direction     string  `json:"direction"`
	State         string  `json:"state"`
	TxID          *string `json:"txid,omitempty"`
	TargetAddress string  `json:"target_address,omitempty"`
	Amount        int64   `json:"amount"`
	AmountDisplay string  `json:"amount_display"`
	Confirmations int     `json:"confirmations"`
	OpenedAt      *string `json:"opened_at,omitempty"`
	ClosedAt      *string `json:"closed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
