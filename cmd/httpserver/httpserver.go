// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-yaro/bank-ledger/internal/accessservice"
	"github.com/go-yaro/bank-ledger/internal/accountdelivery"
	"github.com/go-yaro/bank-ledger/internal/accountrepo"
	"github.com/go-yaro/bank-ledger/internal/accountservice"
	"github.com/go-yaro/bank-ledger/internal/domain"
	"github.com/go-yaro/bank-ledger/internal/ledgerdelivery"
	"github.com/go-yaro/bank-ledger/internal/ledgerrepo"
	"github.com/go-yaro/bank-ledger/internal/ledgerservice"
	"github.com/go-yaro/bank-ledger/internal/middleware"
	"github.com/go-yaro/bank-ledger/internal/querydelivery"
	"github.com/go-yaro/bank-ledger/internal/queryservice"
	"github.com/go-yaro/bank-ledger/internal/transactionrepo"
	"github.com/go-yaro/bank-ledger/internal/userrepo"
	"github.com/go-yaro/bank-ledger/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// validAccountType reports whether the bound field is a known account type.
func validAccountType(fl validator.FieldLevel) bool {
	if value, ok := fl.Field().Interface().(string); ok {
		return domain.AccountType(value).Valid()
	}

	return false
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)

	accessService := accessservice.New(accountRepo, userRepo)
	accountService := accountservice.New(accountRepo, ledgerRepo, userRepo)
	ledgerService := ledgerservice.New(ledgerRepo, accessService)
	queryService := queryservice.New(accountRepo, transactionRepo)

	accountHandler := accountdelivery.NewHandler(accountService)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)
	queryHandler := querydelivery.NewHandler(queryService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", accountHandler.Open)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.GET("/accounts", accountHandler.List)

	engine.GET("/accounts/:id/balance", queryHandler.Balance)
	engine.GET("/accounts/:id/statement", queryHandler.Statement)

	principalRoutes := engine.Group("/").Use(middleware.Principal())

	principalRoutes.POST("/accounts/:id/deposits", ledgerHandler.Deposit)
	principalRoutes.POST("/accounts/:id/withdrawals", ledgerHandler.Withdraw)
	principalRoutes.POST("/transfers", ledgerHandler.Transfer)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("accounttype", validAccountType)
		if err != nil {
			return nil, errors.New("cannot register account type validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
