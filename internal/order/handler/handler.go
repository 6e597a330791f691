package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain"
	"backoffice/internal/order"
	ordermetrics "backoffice/internal/order/metrics"
	id "backoffice/pkg/domain"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/httputil"
	"backoffice/pkg/requestcontext"
)

// Service defines the interface for order operations.
type Service interface {
	Place(ctx context.Context, req order.PlaceRequest) (*domain.Order, error)
	Get(ctx context.Context, orderID id.OrderID) (*domain.Order, error)
	Confirm(ctx context.Context, orderID id.OrderID) (*domain.Order, error)
	Cancel(ctx context.Context, orderID id.OrderID) (*domain.Order, error)
	Complete(ctx context.Context, orderID id.OrderID) (*domain.Order, error)
	AddItem(ctx context.Context, orderID id.OrderID, input order.ItemInput) (*domain.Order, error)
	ValidateTotal(ctx context.Context, orderID id.OrderID) (*order.TotalValidation, error)
}

// Handler wires order endpoints to the order service.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *ordermetrics.Metrics
}

// New constructs an order handler with its dependencies.
func New(service Service, logger *slog.Logger, metrics *ordermetrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Register mounts order endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/orders", h.HandlePlace)
	r.Get("/orders/{orderID}", h.HandleGet)
	r.Post("/orders/{orderID}/confirm", h.HandleConfirm)
	r.Post("/orders/{orderID}/cancel", h.HandleCancel)
	r.Post("/orders/{orderID}/complete", h.HandleComplete)
	r.Post("/orders/{orderID}/items", h.HandleAddItem)
	r.Get("/orders/{orderID}/total/validate", h.HandleValidateTotal)
}

// HandlePlace handles POST /orders requests.
func (h *Handler) HandlePlace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[PlaceRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	placed, err := h.service.Place(ctx, order.PlaceRequest{
		MemberID:    req.ParsedMemberID(),
		OrderNumber: req.OrderNumber,
		TotalAmount: req.ParsedTotal(),
		Items:       req.ParsedItems(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "order placement failed",
			"request_id", requestID,
			"order_number", req.OrderNumber,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ObservePlace(start)
	}
	h.logger.InfoContext(ctx, "order placed",
		"request_id", requestID,
		"order_id", placed.ID(),
		"order_number", placed.OrderNumber(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromOrder(placed))
}

// HandleGet handles GET /orders/{orderID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, ok := h.pathOrderID(w, r)
	if !ok {
		return
	}

	found, err := h.service.Get(ctx, orderID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromOrder(found))
}

// HandleConfirm handles POST /orders/{orderID}/confirm requests.
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "confirmed", h.service.Confirm)
}

// HandleCancel handles POST /orders/{orderID}/cancel requests.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "cancelled", h.service.Cancel)
}

// HandleComplete handles POST /orders/{orderID}/complete requests.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "completed", h.service.Complete)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, action string, apply func(context.Context, id.OrderID) (*domain.Order, error)) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	orderID, ok := h.pathOrderID(w, r)
	if !ok {
		return
	}

	updated, err := apply(ctx, orderID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "order "+action,
		"request_id", requestID,
		"order_id", updated.ID(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromOrder(updated))
}

// HandleAddItem handles POST /orders/{orderID}/items requests.
func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	orderID, ok := h.pathOrderID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddItemRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	updated, err := h.service.AddItem(ctx, orderID, req.ParsedItem())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "order item added",
		"request_id", requestID,
		"order_id", updated.ID(),
		"item_count", updated.ItemCount(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromOrder(updated))
}

// HandleValidateTotal handles GET /orders/{orderID}/total/validate requests.
func (h *Handler) HandleValidateTotal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, ok := h.pathOrderID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ValidateTotal(ctx, orderID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromTotalValidation(result))
}

func (h *Handler) pathOrderID(w http.ResponseWriter, r *http.Request) (id.OrderID, bool) {
	orderID, err := id.ParseOrderID(chi.URLParam(r, "orderID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid order id"))
		return id.OrderID{}, false
	}
	return orderID, true
}
