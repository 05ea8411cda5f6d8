// Package querydelivery manages delivery layer of read-only ledger queries.
package querydelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-yaro/bank-ledger/internal/domain"
	"github.com/go-yaro/bank-ledger/pkg/errorspkg"
	"github.com/go-yaro/bank-ledger/pkg/web"
)

// Service provides service layer interface needed by query delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package querydelivery
type Service interface {
	Balance(ctx context.Context, accountID int32) (string, error)
	Statement(ctx context.Context, accountID, limit int32) ([]domain.Transaction, error)
}

// Handler facilitates query delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns query handler.
func NewHandler(qs Service) *Handler {
	return &Handler{service: qs}
}

type accountURI struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type balanceData struct {
	AccountID int32  `json:"account_id"`
	Balance   string `json:"balance"`
}

// Balance handles http request to read an account's current balance.
func (h *Handler) Balance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	balance, err := h.service.Balance(ctx, uri.ID)
	if err != nil {
		l.Info().Err(err).Send()

		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: balanceData{
		AccountID: uri.ID,
		Balance:   balance,
	}})
}

type statementQuery struct {
	Limit int32 `form:"limit" binding:"omitempty,min=1,max=100"`
}

type statementData struct {
	AccountID    int32                `json:"account_id"`
	Transactions []domain.Transaction `json:"transactions"`
}

// Statement handles http request to read an account's recent transactions,
// most recent first.
func (h *Handler) Statement(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var query statementQuery
	if err := gctx.ShouldBindQuery(&query); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	transactions, err := h.service.Statement(ctx, uri.ID, query.Limit)
	if err != nil {
		l.Info().Err(err).Send()

		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: statementData{
		AccountID:    uri.ID,
		Transactions: transactions,
	}})
}
