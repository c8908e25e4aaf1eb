// Package resttest runs v1 handlers against the in-memory repository for handler tests.
package resttest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/kasmoni/payment-service/internal/config"
	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/interaction"
	"github.com/kasmoni/payment-service/internal/logging"
	"github.com/kasmoni/payment-service/internal/paymentlog"
	"github.com/kasmoni/payment-service/internal/repository/database"
	"github.com/kasmoni/payment-service/internal/repository/database/inmemory"
	"github.com/kasmoni/payment-service/internal/repository/downstreams/groupservice"
	"github.com/kasmoni/payment-service/internal/restapi/common"
	"github.com/kasmoni/payment-service/internal/restapi/middleware"
)

const APIKey = "api-key-for-handler-tests"

// Envelope covers both the success and the error response.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type Env struct {
	BaseURL    string
	Repo       database.Repository
	Groups     groupservice.Mock
	Interactor interaction.Interactor
}

// Setup mounts the handlers below /api/rest/v1 behind the api key check.
func Setup(t *testing.T, mount func(chi.Router, interaction.Interactor)) *Env {
	t.Helper()

	return SetupWithRepository(t, inmemory.NewInMemoryProvider(), mount)
}

// SetupWithRepository is Setup on top of repo.
func SetupWithRepository(t *testing.T, repo database.Repository, mount func(chi.Router, interaction.Interactor)) *Env {
	t.Helper()

	groups := groupservice.CreateMock()
	i, err := interaction.NewServiceInteractor(repo, groups, paymentlog.New(), "admin", logging.NewNoopLogger())
	require.NoError(t, err)

	conf := &config.SecurityConfig{Fixed: config.FixedTokenConfig{Api: APIKey}}

	router := chi.NewRouter()
	router.Use(middleware.RequestIdMiddleware())
	router.Use(middleware.LogRequestIdMiddleware())
	router.Use(middleware.ClientInfoMiddleware())
	router.Route("/api/rest/v1", func(r chi.Router) {
		r.Use(middleware.CheckRequestAuthorization(conf))
		mount(r, i)
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &Env{
		BaseURL:    srv.URL + "/api/rest/v1",
		Repo:       repo,
		Groups:     groups,
		Interactor: i,
	}
}

// APICtx authenticates direct interactor calls the same way the api key header does.
func APICtx() context.Context {
	return context.WithValue(context.Background(), common.CtxKeyAPIKey{}, APIKey)
}

func (e *Env) Call(t *testing.T, method, path, body string, authenticated bool) (int, Envelope) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, e.BaseURL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("X-Api-Key", APIKey)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func Decode[T any](t *testing.T, env Envelope) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

// CreatePayment stores a cash payment of 500 in group 3.
func (e *Env) CreatePayment(t *testing.T, memberID uint, slot string) *entities.Payment {
	t.Helper()

	p, err := e.Interactor.CreatePayment(APICtx(), PaymentInput(memberID, slot))
	require.NoError(t, err)
	return p
}

func PaymentInput(memberID uint, slot string) interaction.PaymentInput {
	return interaction.PaymentInput{
		GroupID:      3,
		MemberID:     memberID,
		Amount:       "500",
		PaymentDate:  "2025-03-05",
		PaymentMonth: "2025-03",
		Slot:         slot,
		PaymentType:  entities.PaymentTypeCash,
	}
}

var ErrAuditDown = errors.New("audit disk full")

// AuditFailure makes every audit write inside a unit of work fail once armed.
type AuditFailure struct {
	database.Repository
	armed *atomic.Bool
}

func NewAuditFailure(repo database.Repository) *AuditFailure {
	return &AuditFailure{Repository: repo, armed: &atomic.Bool{}}
}

func (r *AuditFailure) Arm() {
	r.armed.Store(true)
}

func (r *AuditFailure) Transaction(ctx context.Context, fn func(tx database.Repository) error) error {
	return r.Repository.Transaction(ctx, func(tx database.Repository) error {
		return fn(&AuditFailure{Repository: tx, armed: r.armed})
	})
}

func (r *AuditFailure) CreatePaymentLog(ctx context.Context, l *entities.PaymentLog) error {
	if r.armed.Load() {
		return ErrAuditDown
	}
	return r.Repository.CreatePaymentLog(ctx, l)
}
