package gateway

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	"github.com/meshplus/txkernel/internal/executor"
	"github.com/meshplus/txkernel/internal/kernel"
	"github.com/meshplus/txkernel/internal/loggers"
	"github.com/meshplus/txkernel/internal/repo"
	"github.com/meshplus/txkernel/pkg/model"
	"github.com/meshplus/txkernel/pkg/ratelimiter"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// TransactionExecutor runs a transaction to completion, or queues it.
type TransactionExecutor interface {
	Execute(ctx context.Context, txCtx *executor.TransactionContext) (*model.ExecutedTransaction, error)
	Submit(txCtx *executor.TransactionContext) error
}

// TransactionReader reads executed transactions back.
type TransactionReader interface {
	Get(id model.TransactionID) (*model.ExecutedTransaction, error)
	ListByAccount(acct model.AccountID) ([]model.TransactionID, error)
}

type Gateway struct {
	server   *http.Server
	config   repo.Config
	provider kernel.ProgramProvider
	executor TransactionExecutor
	reader   TransactionReader
	limiter  *ratelimiter.RateLimiter
	logger   logrus.FieldLogger
}

func NewGateway(config *repo.Config, provider kernel.ProgramProvider, exec TransactionExecutor, reader TransactionReader) (*Gateway, error) {
	gateway := &Gateway{
		config:   *config,
		provider: provider,
		executor: exec,
		reader:   reader,
		logger:   loggers.Logger(loggers.API),
	}
	if err := gateway.init(); err != nil {
		return nil, err
	}

	return gateway, nil
}

func (g *Gateway) init() error {
	limiter, err := ratelimiter.NewRateLimiterWithQuantum(g.config.Limiter.Interval, g.config.Limiter.Capacity, g.config.Limiter.Quantum)
	if err != nil {
		return fmt.Errorf("init gateway rate limiter: %w", err)
	}
	g.limiter = limiter

	g.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", g.config.Port.Gateway),
		Handler: g.Handler(),
	}
	return nil
}

// Handler returns the gateway's routes wrapped with CORS and rate limiting.
func (g *Gateway) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(g.logRequest)

	v1 := router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/kernel", g.getKernel).Methods(http.MethodGet)
	v1.HandleFunc("/kernel/source", g.getKernelSource).Methods(http.MethodGet)
	v1.HandleFunc("/stack/input", g.buildInputStack).Methods(http.MethodPost)
	v1.HandleFunc("/outputs", g.assembleOutputs).Methods(http.MethodPost)
	v1.HandleFunc("/transactions", g.executeTransaction).Methods(http.MethodPost)
	v1.HandleFunc("/transactions/{id}", g.getTransaction).Methods(http.MethodGet)
	v1.HandleFunc("/accounts/{id}/transactions", g.listAccountTransactions).Methods(http.MethodGet)

	handler := cors.New(cors.Options{
		AllowedOrigins: g.config.Gateway.AllowedOrigins,
	}).Handler(router)

	return g.limiter.Handler(handler)
}

func (g *Gateway) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.logger.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Debug("Gateway request")
		next.ServeHTTP(w, r)
	})
}

func (g *Gateway) Start() error {
	g.logger.WithField("port", g.config.Port.Gateway).Info("Gateway service started")

	go func(server *http.Server) {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			g.logger.Errorf("ListenAndServe failed: %v", err)
		}
	}(g.server)

	return nil
}

func (g *Gateway) Stop() error {
	g.logger.Info("Gateway service stopped")
	return g.server.Close()
}

func (g *Gateway) ReConfig(config *repo.Config) error {
	if g.config.Port.Gateway == config.Port.Gateway &&
		g.config.Limiter == config.Limiter &&
		equalAllowedOrigins(g.config.Gateway.AllowedOrigins, config.Gateway.AllowedOrigins) {
		return nil
	}

	if err := g.Stop(); err != nil {
		return err
	}

	g.config.Port.Gateway = config.Port.Gateway
	g.config.Limiter = config.Limiter
	g.config.Gateway.AllowedOrigins = config.Gateway.AllowedOrigins

	if err := g.init(); err != nil {
		return err
	}

	return g.Start()
}

func equalAllowedOrigins(strings0, strings1 []string) bool {
	if len(strings0) != len(strings1) {
		return false
	}

	a := append([]string(nil), strings0...)
	b := append([]string(nil), strings1...)
	sort.Strings(a)
	sort.Strings(b)

	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}

	return true
}
