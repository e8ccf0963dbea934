package handler

import (
	"context"
	"net/http"

	"cryptoledger/internal/adapter/http/dto"
	"cryptoledger/internal/core/domain"
	"cryptoledger/internal/core/ports"
	"cryptoledger/pkg/apperror"
	"cryptoledger/pkg/response"
	"cryptoledger/pkg/unit"

	"github.com/gin-gonic/gin"
)

// AmbiguousLister exposes opened-but-unclosed broadcasts for the operator
// view.
type AmbiguousLister interface {
	ListAmbiguous(ctx context.Context) ([]domain.NetworkTransaction, error)
}

// AssetDeps bundles the API-facing services of one configured asset.
type AssetDeps struct {
	Ledger    ports.LedgerService
	Ambiguous AmbiguousLister
	Decimals  int32
	Threshold int
}

// resolveAsset maps the :asset path segment to its dependency set. Unknown
// assets get a 404 and a false return.
func resolveAsset(c *gin.Context, assets map[string]AssetDeps) (AssetDeps, bool) {
	name := c.Param("asset")
	deps, ok := assets[name]
	if !ok {
		response.Error(c, apperror.ErrNotFound("Asset"))
		return AssetDeps{}, false
	}
	return deps, true
}

// HealthCheck pings every dependency and reports per-dependency status.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func toAccountResponse(a *domain.Account, decimals int32) dto.AccountResponse {
	return dto.AccountResponse{
		ID:             a.ID.String(),
		Name:           a.Name,
		Balance:        a.Balance,
		BalanceDisplay: unit.Format(a.Balance, decimals),
		CreatedAt:      a.CreatedAt.UTC().Format(timeLayout),
	}
}

func toAddressResponse(a *domain.Address) dto.AddressResponse {
	return dto.AddressResponse{
		ID:        a.ID.String(),
		AccountID: a.AccountID.String(),
		Address:   a.Address,
		CreatedAt: a.CreatedAt.UTC().Format(timeLayout),
	}
}

func toTransactionResponse(t *domain.Transaction, decimals int32) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:            t.ID.String(),
		Type:          string(t.Type),
		Amount:        t.Amount,
		AmountDisplay: unit.Format(t.Amount, decimals),
		Note:          t.Note,
		Processed:     t.Processed,
		CreatedAt:     t.CreatedAt.UTC().Format(timeLayout),
	}
	if t.DebitAccountID != nil {
		s := t.DebitAccountID.String()
		resp.DebitAccountID = &s
	}
	if t.CreditAccountID != nil {
		s := t.CreditAccountID.String()
		resp.CreditAccountID = &s
	}
	if t.NetworkTransactionID != nil {
		s := t.NetworkTransactionID.String()
		resp.NetworkTransactionID = &s
	}
	return resp
}

func toNetworkTransactionResponse(n *domain.NetworkTransaction, decimals int32, threshold int) dto.NetworkTransactionResponse {
	resp := dto.NetworkTransactionResponse{
		ID:            n.ID.String(),
		Direction:     string(n.Direction),
		State:         string(n.State(threshold)),
		TxID:          n.TxID,
		TargetAddress: n.TargetAddress,
		Amount:        n.Amount,
		AmountDisplay: unit.Format(n.Amount, decimals),
		Confirmations: n.Confirmations,
		CreatedAt:     n.CreatedAt.UTC().Format(timeLayout),
	}
	if n.OpenedAt != nil {
		s := n.OpenedAt.UTC().Format(timeLayout)
		resp.OpenedAt = &s
	}
	if n.ClosedAt != nil {
		s := n.ClosedAt.UTC().Format(timeLayout)
		resp.ClosedAt = &s
	}
	return resp
}
