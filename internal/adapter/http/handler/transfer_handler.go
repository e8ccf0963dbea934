package handler

import (
	"strconv"

	"cryptoledger/internal/adapter/http/dto"
	"cryptoledger/pkg/apperror"
	"cryptoledger/pkg/response"
	"cryptoledger/pkg/unit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransferHandler handles fund movement endpoints.
type TransferHandler struct {
	assets map[string]AssetDeps
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(assets map[string]AssetDeps) *TransferHandler {
	return &TransferHandler{assets: assets}
}

// Transfer handles POST /api/v1/:asset/transfers (internal, no network).
func (h *TransferHandler) Transfer(c *gin.Context) {
	deps, ok := resolveAsset(c, h.assets)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := unit.Parse(req.Amount, deps.Decimals)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	from, _ := uuid.Parse(req.FromAccountID)
	to, _ := uuid.Parse(req.ToAccountID)

	movement, err := deps.Ledger.SendInternal(c.Request.Context(), from, to, amount, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(movement, deps.Decimals))
}

// Withdraw handles POST /api/v1/:asset/withdrawals (external reservation).
func (h *TransferHandler) Withdraw(c *gin.Context) {
	deps, ok := resolveAsset(c, h.assets)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := unit.Parse(req.Amount, deps.Decimals)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	from, _ := uuid.Parse(req.FromAccountID)

	movement, err := deps.Ledger.SendExternal(c.Request.Context(), from, req.Address, amount, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(movement, deps.Decimals))
}

// Send handles POST /api/v1/:asset/sends: the target address decides
// whether the movement stays internal or leaves the wallet.
func (h *TransferHandler) Send(c *gin.Context) {
	deps, ok := resolveAsset(c, h.assets)
	if !ok {
		return
	}

	var req dto.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := unit.Parse(req.Amount, deps.Decimals)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	from, _ := uuid.Parse(req.FromAccountID)

	movement, err := deps.Ledger.Send(c.Request.Context(), from, req.Address, amount, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(movement, deps.Decimals))
}

// MarkProcessed handles POST /api/v1/:asset/transactions/:id/processed.
func (h *TransferHandler) MarkProcessed(c *gin.Context) {
	deps, ok := resolveAsset(c, h.assets)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid transaction id"))
		return
	}

	if err := deps.Ledger.MarkProcessed(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"processed": true})
}

// pagination reads limit/offset query parameters with safe defaults.
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
