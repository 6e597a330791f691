package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"backoffice/internal/domain"
	"backoffice/internal/order"
	"backoffice/internal/payment"
	id "backoffice/pkg/domain"
)

func newPaymentRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	orders := order.NewInMemory()
	member, err := domain.NewMember(
		id.NewMemberID(),
		domain.MustEmail("jane@example.com"),
		"Jane Kim",
		domain.MustKoreanPhoneNumber("010-1234-5678"),
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("failed to build member: %v", err)
	}
	o, err := domain.NewOrder(
		id.NewOrderID(),
		"ORD-0001",
		member,
		domain.MustMoney(30000, "KRW"),
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("failed to build order: %v", err)
	}
	if err := orders.CreateIfNumberAvailable(context.Background(), o); err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	svc := payment.NewService(payment.NewInMemory(), orders,
		payment.WithLogger(logger),
		payment.WithIdempotencyStore(payment.NewInMemoryIdempotency()),
	)

	h := New(svc, logger, nil)
	r := chi.NewRouter()
	h.Register(r)
	return r, o.ID().String()
}

func createPayment(t *testing.T, router http.Handler, orderID string) PaymentResponse {
	t.Helper()
	payload := map[string]string{
		"order_id": orderID,
		"amount":   "30000",
		"currency": "KRW",
		"method":   "CREDIT_CARD",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating payment, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp PaymentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode payment response: %v", err)
	}
	return resp
}

func TestCreateAndGetPayment(t *testing.T) {
	router, orderID := newPaymentRouter(t)

	created := createPayment(t, router, orderID)
	if created.Status != "PENDING" {
		t.Fatalf("expected PENDING status, got %q", created.Status)
	}
	if created.OrderID != orderID {
		t.Fatalf("expected order id %q, got %q", orderID, created.OrderID)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/payments/"+created.ID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching payment, got %d", getRec.Code)
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	router, orderID := newPaymentRouter(t)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"bad order id", map[string]string{"order_id": "nope", "amount": "30000", "currency": "KRW", "method": "CASH"}},
		{"malformed amount", map[string]string{"order_id": orderID, "amount": "lots", "currency": "KRW", "method": "CASH"}},
		{"unknown method", map[string]string{"order_id": orderID, "amount": "30000", "currency": "KRW", "method": "BARTER"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.payload)
			req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPaymentLifecycleEndpoints(t *testing.T) {
	router, orderID := newPaymentRouter(t)
	created := createPayment(t, router, orderID)

	processBody, _ := json.Marshal(map[string]string{"transaction_id": "txn-100"})
	processReq := httptest.NewRequest(http.MethodPost, "/payments/"+created.ID+"/process", bytes.NewReader(processBody))
	processRec := httptest.NewRecorder()
	router.ServeHTTP(processRec, processReq)
	if processRec.Code != http.StatusOK {
		t.Fatalf("expected 200 processing payment, got %d: %s", processRec.Code, processRec.Body.String())
	}

	var processed PaymentResponse
	if err := json.NewDecoder(processRec.Body).Decode(&processed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if processed.Status != "COMPLETED" {
		t.Fatalf("expected COMPLETED after process, got %q", processed.Status)
	}
	if processed.TransactionID != "txn-100" {
		t.Fatalf("expected recorded transaction id, got %q", processed.TransactionID)
	}

	refundReq := httptest.NewRequest(http.MethodPost, "/payments/"+created.ID+"/refund", nil)
	refundRec := httptest.NewRecorder()
	router.ServeHTTP(refundRec, refundReq)
	if refundRec.Code != http.StatusOK {
		t.Fatalf("expected 200 refunding payment, got %d", refundRec.Code)
	}

	var refunded PaymentResponse
	if err := json.NewDecoder(refundRec.Body).Decode(&refunded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if refunded.Status != "REFUNDED" {
		t.Fatalf("expected REFUNDED after refund, got %q", refunded.Status)
	}
}

func TestFailPayment(t *testing.T) {
	router, orderID := newPaymentRouter(t)
	created := createPayment(t, router, orderID)

	body, _ := json.Marshal(map[string]string{"reason": "card declined"})
	req := httptest.NewRequest(http.MethodPost, "/payments/"+created.ID+"/fail", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 failing payment, got %d: %s", rec.Code, rec.Body.String())
	}

	var failed PaymentResponse
	if err := json.NewDecoder(rec.Body).Decode(&failed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if failed.Status != "FAILED" || failed.FailureReason != "card declined" {
		t.Fatalf("unexpected failure state: %+v", failed)
	}

	processBody, _ := json.Marshal(map[string]string{"transaction_id": "txn-200"})
	processReq := httptest.NewRequest(http.MethodPost, "/payments/"+created.ID+"/process", bytes.NewReader(processBody))
	processRec := httptest.NewRecorder()
	router.ServeHTTP(processRec, processReq)
	if processRec.Code == http.StatusOK {
		t.Fatalf("expected re-processing a failed payment to be rejected")
	}
}

func TestQuoteEndpoint(t *testing.T) {
	router, _ := newPaymentRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/payments/quote?method=credit_card&amount=10000&currency=KRW", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 quoting fee, got %d: %s", rec.Code, rec.Body.String())
	}

	var quote QuoteResponse
	if err := json.NewDecoder(rec.Body).Decode(&quote); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !quote.Supported {
		t.Fatalf("expected credit card to be supported at 10000")
	}
	if quote.Fee.Amount != "250" {
		t.Fatalf("expected fee 250, got %q", quote.Fee.Amount)
	}

	badReq := httptest.NewRequest(http.MethodGet, "/payments/quote?method=barter&amount=10000&currency=KRW", nil)
	badRec := httptest.NewRecorder()
	router.ServeHTTP(badRec, badReq)
	if badRec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown method, got %d", badRec.Code)
	}
}

func TestPaymentNotFoundAndBadID(t *testing.T) {
	router, _ := newPaymentRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/payments/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown payment, got %d", rec.Code)
	}

	badReq := httptest.NewRequest(http.MethodGet, "/payments/not-a-uuid", nil)
	badRec := httptest.NewRecorder()
	router.ServeHTTP(badRec, badReq)
	if badRec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", badRec.Code)
	}
}
