// Package ledgerdelivery manages delivery layer of ledger operations.
package ledgerdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-yaro/bank-ledger/internal/domain"
	"github.com/go-yaro/bank-ledger/internal/middleware"
	"github.com/go-yaro/bank-ledger/pkg/errorspkg"
	"github.com/go-yaro/bank-ledger/pkg/web"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Deposit(ctx context.Context, principal string, accountID int32, amount string) (domain.EntryResult, error)
	Withdraw(ctx context.Context, principal string, accountID int32, amount string) (domain.EntryResult, error)
	Transfer(ctx context.Context, principal string, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(ls Service) *Handler {
	return &Handler{service: ls}
}

type accountURI struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type amountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type entryData struct {
	Account     domain.Account     `json:"account"`
	Transaction domain.Transaction `json:"transaction"`
}

func bindingError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		gctx.JSON(http.StatusBadRequest, web.Response{Error: field.Field() + web.GetErrorMsg(field)})

		return
	}

	l.Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Error(err))
}

func statusFromError(err error) int {
	switch err {
	case domain.ErrAccountNotFound,
		domain.ErrFromAccountNotFound,
		domain.ErrToAccountNotFound:
		return http.StatusNotFound
	case domain.ErrInvalidAmount,
		domain.ErrSameAccount:
		return http.StatusBadRequest
	case domain.ErrInsufficientBalance:
		return http.StatusUnprocessableEntity
	case domain.ErrAccessDenied,
		domain.ErrUserNotActive:
		return http.StatusForbidden
	case errorspkg.ErrTimeout:
		return http.StatusGatewayTimeout
	}

	return http.StatusInternalServerError
}

func renderError(gctx *gin.Context, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		err = errorspkg.ErrInternal
	}

	gctx.JSON(status, web.Error(err))
}

func (h *Handler) entryOperation(gctx *gin.Context,
	op func(ctx context.Context, principal string, accountID int32, amount string) (domain.EntryResult, error),
) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindingError(gctx, err)
		return
	}

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindingError(gctx, err)
		return
	}

	principal := gctx.MustGet(middleware.PrincipalKey).(string)

	result, err := op(ctx, principal, uri.ID, req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		renderError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: entryData{
		Account:     result.Account,
		Transaction: result.Transaction,
	}})
}

// Deposit handles http request to deposit money into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.entryOperation(gctx, h.service.Deposit)
}

// Withdraw handles http request to withdraw money from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.entryOperation(gctx, h.service.Withdraw)
}

type transferRequest struct {
	FromAccountID int32  `json:"from_account_id" binding:"required,min=1"`
	ToAccountID   int32  `json:"to_account_id" binding:"required,min=1"`
	Amount        string `json:"amount" binding:"required"`
}

type transferData struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

// Transfer handles http request to move money between two accounts.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindingError(gctx, err)
		return
	}

	principal := gctx.MustGet(middleware.PrincipalKey).(string)

	arg := domain.CreateTransferParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
	}

	result, err := h.service.Transfer(ctx, principal, arg)
	if err != nil {
		l.Info().Err(err).Send()
		renderError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transferData{Transfer: result}})
}
