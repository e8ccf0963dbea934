package handler

import (
	"cryptoledger/internal/adapter/http/dto"
	"cryptoledger/internal/core/ports"
	"cryptoledger/pkg/apperror"
	"cryptoledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// NetworkHandler handles the backend-facing push endpoint and the operator
// views over network transactions.
type NetworkHandler struct {
	assets map[string]AssetDeps
}

// NewNetworkHandler creates a new NetworkHandler.
func NewNetworkHandler(assets map[string]AssetDeps) *NetworkHandler {
	return &NetworkHandler{assets: assets}
}

// WalletNotify handles POST /api/v1/:asset/walletnotify, the push channel
// wallet daemons call on incoming transfers. Re-delivery of the same
// observation is harmless.
func (h *NetworkHandler) WalletNotify(c *gin.Context) {
	deps, ok := resolveAsset(c, h.assets)
	if !ok {
		return
	}

	var req dto.WalletNotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	ntx, err := deps.Ledger.CreditDeposit(c.Request.Context(), ports.DepositNotice{
		Address:       req.Address,
		TxID:          req.TxID,
		Amount:        req.Amount,
		Confirmations: req.Confirmations,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if ntx == nil {
		// Absorbed duplicate.
		response.OK(c, gin.H{"absorbed": true})
		return
	}

	response.OK(c, toNetworkTransactionResponse(ntx, deps.Decimals, deps.Threshold))
}

// ListAmbiguousBroadcasts handles GET /api/v1/:asset/broadcasts/ambiguous,
// the operator's view of sends whose outcome is unknown.
func (h *NetworkHandler) ListAmbiguousBroadcasts(c *gin.Context) {
	deps, ok := resolveAsset(c, h.assets)
	if !ok {
		return
	}

	rows, err := deps.Ambiguous.ListAmbiguous(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	out := make([]dto.NetworkTransactionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toNetworkTransactionResponse(&rows[i], deps.Decimals, deps.Threshold))
	}
	response.OK(c, out)
}
