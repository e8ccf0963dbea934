package handler

import (
	"cryptoledger/internal/adapter/http/dto"
	"cryptoledger/pkg/apperror"
	"cryptoledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountHandler handles account and address endpoints.
type AccountHandler struct {
	assets map[string]AssetDeps
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(assets map[string]AssetDeps) *AccountHandler {
	return &AccountHandler{assets: assets}
}

// CreateAccount handles POST /api/v1/:asset/accounts.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	deps, ok := resolveAsset(c, h.assets)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	account, err := deps.Ledger.CreateAccount(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAccountResponse(account, deps.Decimals))
}

// GetAccount handles GET /api/v1/:asset/accounts/:id.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	deps, ok := resolveAsset(c, h.assets)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid account id"))
		return
	}

	account, err := deps.Ledger.GetAccount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAccountResponse(account, deps.Decimals))
}

// ListAccounts handles GET /api/v1/:asset/accounts.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	deps, ok := resolveAsset(c, h.assets)
	if !ok {
		return
	}

	accounts, err := deps.Ledger.ListAccounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, toAccountResponse(&accounts[i], deps.Decimals))
	}
	response.OK(c, out)
}

// CreateAddress handles POST /api/v1/:asset/accounts/:id/addresses.
func (h *AccountHandler) CreateAddress(c *gin.Context) {
	deps, ok := resolveAsset(c, h.assets)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid account id"))
		return
	}

	address, err := deps.Ledger.CreateReceivingAddress(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAddressResponse(address))
}

// ListTransactions handles GET /api/v1/:asset/accounts/:id/transactions.
func (h *AccountHandler) ListTransactions(c *gin.Context) {
	deps, ok := resolveAsset(c, h.assets)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid account id"))
		return
	}

	limit, offset := pagination(c)
	txs, err := deps.Ledger.ListAccountTransactions(c.Request.Context(), id, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, toTransactionResponse(&txs[i], deps.Decimals))
	}
	response.OK(c, out)
}
