package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pokerface/networking-api/internal/core/domain"
	"github.com/pokerface/networking-api/internal/core/ports"
)

type stubRevealService struct {
	addCardFn       func(ctx context.Context, input ports.AddCardInput) (*ports.CardView, error)
	listCardsFn     func(ctx context.Context, ownerID, viewerID string) ([]ports.CardView, error)
	requestRevealFn func(ctx context.Context, cardID, requesterID string) (*ports.RevealRequestResult, error)
	respondFn       func(ctx context.Context, requestID, ownerID string, accept bool) (*ports.RespondResult, error)
	retractFn       func(ctx context.Context, cardID, ownerID string) error
}

func (s *stubRevealService) AddCard(ctx context.Context, input ports.AddCardInput) (*ports.CardView, error) {
	return s.addCardFn(ctx, input)
}

func (s *stubRevealService) ListCards(ctx context.Context, ownerID, viewerID string) ([]ports.CardView, error) {
	return s.listCardsFn(ctx, ownerID, viewerID)
}

func (s *stubRevealService) RequestReveal(ctx context.Context, cardID, requesterID string) (*ports.RevealRequestResult, error) {
	return s.requestRevealFn(ctx, cardID, requesterID)
}

func (s *stubRevealService) Respond(ctx context.Context, requestID, ownerID string, accept bool) (*ports.RespondResult, error) {
	return s.respondFn(ctx, requestID, ownerID, accept)
}

func (s *stubRevealService) Retract(ctx context.Context, cardID, ownerID string) error {
	return s.retractFn(ctx, cardID, ownerID)
}

func newCardContext(t *testing.T, method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	return c, rec
}

func TestCardHandler_Create_Success(t *testing.T) {
	stub := &stubRevealService{
		addCardFn: func(ctx context.Context, input ports.AddCardInput) (*ports.CardView, error) {
			if input.OwnerID != "alice" || input.Kind != "skill" || input.Level != "expert" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.CardView{ID: "card-1", OwnerID: "alice", Kind: "skill", Name: input.Name, Visibility: "revealed"}, nil
		},
	}
	handler := NewCardHandler(stub)

	c, rec := newCardContext(t, http.MethodPost, "/v1/cards",
		`{"kind":"skill","name":"Go","level":"expert"}`, "alice")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "card-1" || resp["visibility"] != "revealed" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCardHandler_Create_ValidationRejectsKind(t *testing.T) {
	stub := &stubRevealService{
		addCardFn: func(ctx context.Context, input ports.AddCardInput) (*ports.CardView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewCardHandler(stub)

	c, _ := newCardContext(t, http.MethodPost, "/v1/cards", `{"kind":"secret","name":"X"}`, "alice")

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestCardHandler_Create_MissingClaims(t *testing.T) {
	handler := NewCardHandler(&stubRevealService{})

	c, _ := newCardContext(t, http.MethodPost, "/v1/cards", `{"kind":"skill","name":"Go"}`, "")

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestCardHandler_ListForUser(t *testing.T) {
	stub := &stubRevealService{
		listCardsFn: func(ctx context.Context, ownerID, viewerID string) ([]ports.CardView, error) {
			if ownerID != "alice" || viewerID != "bob" {
				t.Fatalf("unexpected args: %s %s", ownerID, viewerID)
			}
			return []ports.CardView{
				{ID: "card-1", OwnerID: "alice", Kind: "skill", Visibility: "hidden"},
			}, nil
		},
	}
	handler := NewCardHandler(stub)

	c, rec := newCardContext(t, http.MethodGet, "/v1/users/alice/cards", "", "bob")
	c.SetParamNames("id")
	c.SetParamValues("alice")

	if err := handler.ListForUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["visibility"] != "hidden" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, present := resp[0]["name"]; present {
		t.Fatalf("hidden card must not expose its name: %+v", resp[0])
	}
}

func TestCardHandler_RequestReveal_Created(t *testing.T) {
	stub := &stubRevealService{
		requestRevealFn: func(ctx context.Context, cardID, requesterID string) (*ports.RevealRequestResult, error) {
			return &ports.RevealRequestResult{RequestID: "req-1"}, nil
		},
	}
	handler := NewCardHandler(stub)

	c, rec := newCardContext(t, http.MethodPost, "/v1/cards/card-1/reveal-requests", "", "bob")
	c.SetParamNames("id")
	c.SetParamValues("card-1")

	if err := handler.RequestReveal(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for a new request, got %d", rec.Code)
	}
}

func TestCardHandler_RequestReveal_Duplicate(t *testing.T) {
	stub := &stubRevealService{
		requestRevealFn: func(ctx context.Context, cardID, requesterID string) (*ports.RevealRequestResult, error) {
			return &ports.RevealRequestResult{RequestID: "req-1", AlreadyPending: true}, nil
		},
	}
	handler := NewCardHandler(stub)

	c, rec := newCardContext(t, http.MethodPost, "/v1/cards/card-1/reveal-requests", "", "bob")
	c.SetParamNames("id")
	c.SetParamValues("card-1")

	if err := handler.RequestReveal(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for an existing request, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["request_id"] != "req-1" || resp["already_pending"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCardHandler_RequestReveal_SelfReveal(t *testing.T) {
	stub := &stubRevealService{
		requestRevealFn: func(ctx context.Context, cardID, requesterID string) (*ports.RevealRequestResult, error) {
			return nil, domain.ErrSelfReveal
		},
	}
	handler := NewCardHandler(stub)

	c, _ := newCardContext(t, http.MethodPost, "/v1/cards/card-1/reveal-requests", "", "alice")
	c.SetParamNames("id")
	c.SetParamValues("card-1")

	if err := handler.RequestReveal(c); !errors.Is(err, domain.ErrSelfReveal) {
		t.Fatalf("expected ErrSelfReveal to propagate, got %v", err)
	}
}

func TestCardHandler_Respond(t *testing.T) {
	stub := &stubRevealService{
		respondFn: func(ctx context.Context, requestID, ownerID string, accept bool) (*ports.RespondResult, error) {
			if requestID != "req-1" || ownerID != "alice" || !accept {
				t.Fatalf("unexpected args: %s %s %v", requestID, ownerID, accept)
			}
			return &ports.RespondResult{Status: "accepted", Visibility: "revealed", MatchAnnounced: true}, nil
		},
	}
	handler := NewCardHandler(stub)

	c, rec := newCardContext(t, http.MethodPost, "/v1/reveal-requests/req-1/respond", `{"accept":true}`, "alice")
	c.SetParamNames("id")
	c.SetParamValues("req-1")

	if err := handler.Respond(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "accepted" || resp["match_announced"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCardHandler_Retract(t *testing.T) {
	called := false
	stub := &stubRevealService{
		retractFn: func(ctx context.Context, cardID, ownerID string) error {
			called = true
			if cardID != "card-1" || ownerID != "alice" {
				t.Fatalf("unexpected args: %s %s", cardID, ownerID)
			}
			return nil
		},
	}
	handler := NewCardHandler(stub)

	c, rec := newCardContext(t, http.MethodPost, "/v1/cards/card-1/retract", "", "alice")
	c.SetParamNames("id")
	c.SetParamValues("card-1")

	if err := handler.Retract(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
