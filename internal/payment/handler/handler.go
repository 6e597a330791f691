package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain"
	"backoffice/internal/payment"
	paymentmetrics "backoffice/internal/payment/metrics"
	id "backoffice/pkg/domain"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/httputil"
	"backoffice/pkg/requestcontext"
)

// Service defines the interface for payment operations.
type Service interface {
	Create(ctx context.Context, req payment.CreateRequest) (*domain.Payment, error)
	Get(ctx context.Context, paymentID id.PaymentID) (*domain.Payment, error)
	Process(ctx context.Context, paymentID id.PaymentID, transactionID string) (*domain.Payment, error)
	MarkFailed(ctx context.Context, paymentID id.PaymentID, reason string) (*domain.Payment, error)
	Refund(ctx context.Context, paymentID id.PaymentID) (*domain.Payment, error)
	QuoteFee(ctx context.Context, method domain.PaymentMethod, amount domain.Money) (*payment.Quote, error)
}

// Handler wires payment endpoints to the payment service.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *paymentmetrics.Metrics
}

// New constructs a payment handler with its dependencies.
func New(service Service, logger *slog.Logger, metrics *paymentmetrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Register mounts payment endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/payments", h.HandleCreate)
	r.Get("/payments/quote", h.HandleQuote)
	r.Get("/payments/{paymentID}", h.HandleGet)
	r.Post("/payments/{paymentID}/process", h.HandleProcess)
	r.Post("/payments/{paymentID}/fail", h.HandleFail)
	r.Post("/payments/{paymentID}/refund", h.HandleRefund)
}

// HandleCreate handles POST /payments requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.Create(ctx, payment.CreateRequest{
		OrderID: req.ParsedOrderID(),
		Amount:  req.ParsedAmount(),
		Method:  req.ParsedMethod(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "payment creation failed",
			"request_id", requestID,
			"order_id", req.OrderID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "payment created",
		"request_id", requestID,
		"payment_id", created.ID(),
		"order_id", created.Order().ID(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromPayment(created))
}

// HandleGet handles GET /payments/{paymentID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	paymentID, ok := h.pathPaymentID(w, r)
	if !ok {
		return
	}

	found, err := h.service.Get(ctx, paymentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromPayment(found))
}

// HandleProcess handles POST /payments/{paymentID}/process requests.
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	paymentID, ok := h.pathPaymentID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ProcessRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	processed, err := h.service.Process(ctx, paymentID, req.TransactionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ObserveProcess(start)
	}
	h.logger.InfoContext(ctx, "payment processed",
		"request_id", requestID,
		"payment_id", processed.ID(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromPayment(processed))
}

// HandleFail handles POST /payments/{paymentID}/fail requests.
func (h *Handler) HandleFail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	paymentID, ok := h.pathPaymentID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[FailRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	failed, err := h.service.MarkFailed(ctx, paymentID, req.Reason)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "payment marked failed",
		"request_id", requestID,
		"payment_id", failed.ID(),
		"reason", failed.FailureReason(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromPayment(failed))
}

// HandleRefund handles POST /payments/{paymentID}/refund requests.
func (h *Handler) HandleRefund(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	paymentID, ok := h.pathPaymentID(w, r)
	if !ok {
		return
	}

	refunded, err := h.service.Refund(ctx, paymentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "payment refunded",
		"request_id", requestID,
		"payment_id", refunded.ID(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromPayment(refunded))
}

// HandleQuote handles GET /payments/quote requests. Method, amount, and
// currency arrive as query parameters.
func (h *Handler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	method, err := domain.ParsePaymentMethod(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("method"))))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	amount, err := domain.MoneyFromString(r.URL.Query().Get("amount"), r.URL.Query().Get("currency"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid amount"))
		return
	}

	quote, err := h.service.QuoteFee(ctx, method, amount)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromQuote(quote))
}

func (h *Handler) pathPaymentID(w http.ResponseWriter, r *http.Request) (id.PaymentID, bool) {
	paymentID, err := id.ParsePaymentID(chi.URLParam(r, "paymentID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid payment id"))
		return id.PaymentID{}, false
	}
	return paymentID, true
}
