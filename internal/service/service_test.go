package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/saakhtemaan/internal/auth"
	"github.com/mmynk/saakhtemaan/internal/events"
	"github.com/mmynk/saakhtemaan/internal/middleware"
	"github.com/mmynk/saakhtemaan/internal/storage/sqlite"
	"github.com/mmynk/saakhtemaan/pkg/api"
	"github.com/mmynk/saakhtemaan/pkg/api/apiconnect"
)

// recordingPublisher keeps published events for assertions.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs []events.Message
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, msg events.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) messages() []events.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Message(nil), p.msgs...)
}

type testEnv struct {
	store     *sqlite.SQLiteStore
	publisher *recordingPublisher

	auth     *apiconnect.AuthServiceClient
	building *apiconnect.BuildingServiceClient
	charge   *apiconnect.ChargeServiceClient
	payment  *apiconnect.PaymentServiceClient
	fund     *apiconnect.FundServiceClient
}

// setupTestServer creates a test server with every service behind the same
// interceptor chain the real server uses.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store, bcrypt.MinCost)
	publisher := &recordingPublisher{}

	opts := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
		),
		middleware.ValidationInterceptor(middleware.NewValidator()),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, store, logger), opts))
	mux.Handle(apiconnect.NewBuildingServiceHandler(NewBuildingService(store), opts))
	mux.Handle(apiconnect.NewChargeServiceHandler(NewChargeService(store, publisher), opts))
	mux.Handle(apiconnect.NewPaymentServiceHandler(NewPaymentService(store, publisher), opts))
	mux.Handle(apiconnect.NewFundServiceHandler(NewFundService(store), opts))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		store:     store,
		publisher: publisher,
		auth:      apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		building:  apiconnect.NewBuildingServiceClient(http.DefaultClient, server.URL),
		charge:    apiconnect.NewChargeServiceClient(http.DefaultClient, server.URL),
		payment:   apiconnect.NewPaymentServiceClient(http.DefaultClient, server.URL),
		fund:      apiconnect.NewFundServiceClient(http.DefaultClient, server.URL),
	}
}

// authed wraps msg in a request carrying the bearer token.
func authed[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

// registerManager creates an account and returns its token.
func (e *testEnv) registerManager(t *testing.T, email string) string {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: "مدیر ساختمان",
		Password:    "s3cret-pass",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return resp.Msg.Token
}

// seedBuilding creates a building with units of the given areas. Every unit
// has coefficient 1 and two residents.
func (e *testEnv) seedBuilding(t *testing.T, token string, areas ...float64) (*api.Building, []*api.Unit) {
	t.Helper()
	ctx := context.Background()

	b, err := e.building.CreateBuilding(ctx, authed(token, &api.CreateBuildingRequest{
		Name:    "برج یاس",
		Address: "تهران، خیابان ولیعصر",
	}))
	if err != nil {
		t.Fatalf("CreateBuilding failed: %v", err)
	}

	var units []*api.Unit
	for i, area := range areas {
		u, err := e.building.CreateUnit(ctx, authed(token, &api.CreateUnitRequest{
			BuildingID: b.Msg.Building.ID,
			Unit: api.UnitInput{
				Number:         string(rune('1' + i)),
				Floor:          i + 1,
				Area:           area,
				Coefficient:    1,
				ResidentsCount: 2,
			},
		}))
		if err != nil {
			t.Fatalf("CreateUnit failed: %v", err)
		}
		units = append(units, u.Msg.Unit)
	}
	return b.Msg.Building, units
}

// issueCharge drafts and issues a single-item charge.
func (e *testEnv) issueCharge(t *testing.T, token, buildingID string, amount int64, method string) *api.IssueChargeResponse {
	t.Helper()
	ctx := context.Background()

	created, err := e.charge.CreateCharge(ctx, authed(token, &api.CreateChargeRequest{
		BuildingID:  buildingID,
		Title:       "شارژ ماهانه",
		PeriodYear:  1404,
		PeriodMonth: 7,
		Items:       []*api.ChargeItem{{Title: "نگهداری", Amount: amount, Method: method}},
	}))
	if err != nil {
		t.Fatalf("CreateCharge failed: %v", err)
	}

	issued, err := e.charge.IssueCharge(ctx, authed(token, &api.IssueChargeRequest{ChargeID: created.Msg.Charge.ID}))
	if err != nil {
		t.Fatalf("IssueCharge failed: %v", err)
	}
	return issued.Msg
}

// assertCode fails the test unless err carries the expected Connect code.
func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected code %v, got %v (%v)", want, got, err)
	}
}
