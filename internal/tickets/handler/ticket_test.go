package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paysim/internal/tickets/repository"
	"paysim/internal/tickets/service"
	"paysim/internal/tickets/validator"
	apperrors "paysim/pkg/errors"
	"paysim/pkg/logger"
	"paysim/pkg/model"
	"paysim/pkg/token"

	"github.com/julienschmidt/httprouter"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type testStub struct {
	router       *httprouter.Router
	handler      *TicketHandler
	serviceToken string
}

func newTestStub(t *testing.T) *testStub {
	t.Helper()

	log := logger.Discard()
	repo := repository.NewMemoryTicketRepository()
	h := NewTicketHandler(service.NewTicketService(repo, log), validator.NewTicketValidator(log), testSecret, log)

	router := httprouter.New()
	h.RegisterRoutes(router)
	NewHealthHandler(repo, log).RegisterRoutes(router)

	serviceToken, err := token.MintServiceToken(testSecret, "suspaygateway", time.Hour)
	if err != nil {
		t.Fatalf("MintServiceToken returned error: %v", err)
	}

	return &testStub{router: router, handler: h, serviceToken: serviceToken}
}

func (s *testStub) do(method, path, body, bearer string) *httptest.ResponseRecorder {
	return s.doWithContentType(method, path, body, bearer, "application/json")
}

func (s *testStub) doWithContentType(method, path, body, bearer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func generateBody(t *testing.T, clientToken string) string {
	t.Helper()
	data, err := json.Marshal(model.GenerateTicketRequest{ClientToken: clientToken})
	if err != nil {
		t.Fatalf("failed to encode body: %v", err)
	}
	return string(data)
}

func validClientToken(t *testing.T) string {
	t.Helper()
	raw, err := token.MintClientToken(testSecret, token.ClientClaims{
		Subject:     "tempuser-05",
		PayerID:     "5",
		PaymentID:   "4",
		SeatsBooked: "E1",
		ScreenID:    "2",
		MovieShowID: "1",
	}, time.Hour)
	if err != nil {
		t.Fatalf("MintClientToken returned error: %v", err)
	}
	return raw
}

func TestGenerate_CreatesTicket(t *testing.T) {
	stub := newTestStub(t)

	w := stub.do(http.MethodPost, GeneratePath, generateBody(t, validClientToken(t)), stub.serviceToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var ticket model.Ticket
	if err := json.Unmarshal(w.Body.Bytes(), &ticket); err != nil {
		t.Fatalf("failed to decode ticket: %v", err)
	}
	if ticket.ID == "" || ticket.PaymentID != "4" || ticket.SeatsBooked != "E1" {
		t.Errorf("unexpected ticket %+v", ticket)
	}

	get := stub.do(http.MethodGet, "/api/ticket/id/"+ticket.ID, "", stub.serviceToken)
	if get.Code != http.StatusOK {
		t.Fatalf("expected stored ticket, got %d: %s", get.Code, get.Body.String())
	}

	health := stub.do(http.MethodGet, "/health", "", "")
	var hr HealthResponse
	if err := json.Unmarshal(health.Body.Bytes(), &hr); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	if hr.Status != "ok" || hr.Tickets != 1 {
		t.Errorf("unexpected health %+v", hr)
	}
}

func TestGenerate_Rejections(t *testing.T) {
	stub := newTestStub(t)
	clientToken := validClientToken(t)

	tests := []struct {
		name       string
		body       string
		bearer     string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "no bearer",
			body:       generateBody(t, clientToken),
			wantStatus: http.StatusUnauthorized,
			wantCode:   apperrors.CodeUnauthorized,
		},
		{
			name:       "client token used as service token",
			body:       generateBody(t, clientToken),
			bearer:     clientToken,
			wantStatus: http.StatusForbidden,
			wantCode:   apperrors.CodeForbidden,
		},
		{
			name:       "invalid JSON",
			body:       "{",
			bearer:     stub.serviceToken,
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeInvalidInput,
		},
		{
			name:       "empty client token",
			body:       `{"clientToken":""}`,
			bearer:     stub.serviceToken,
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeValidation,
		},
		{
			name:       "unreadable client token",
			body:       generateBody(t, "garbage"),
			bearer:     stub.serviceToken,
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeEntityCreationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := stub.do(http.MethodPost, GeneratePath, tt.body, tt.bearer)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}

			var resp apperrors.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if resp.ErrorCode != tt.wantCode {
				t.Errorf("expected errorCode %s, got %s", tt.wantCode, resp.ErrorCode)
			}
		})
	}
}

func TestGenerate_AuthenticatesBeforeContentType(t *testing.T) {
	stub := newTestStub(t)
	body := generateBody(t, validClientToken(t))

	tests := []struct {
		name       string
		bearer     string
		wantStatus int
	}{
		{"anonymous text post", "", http.StatusUnauthorized},
		{"authenticated text post", stub.serviceToken, http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := stub.doWithContentType(http.MethodPost, GeneratePath, body, tt.bearer, "text/plain")
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestGenerate_ForcedFailure(t *testing.T) {
	stub := newTestStub(t)
	stub.handler.FailWith(http.StatusInternalServerError)

	w := stub.do(http.MethodPost, GeneratePath, generateBody(t, validClientToken(t)), stub.serviceToken)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
	if w.Body.String() != FailureBody {
		t.Errorf("expected body %q, got %q", FailureBody, w.Body.String())
	}
}

func TestGetByID_NotFound(t *testing.T) {
	stub := newTestStub(t)

	w := stub.do(http.MethodGet, "/api/ticket/id/missing", "", stub.serviceToken)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
