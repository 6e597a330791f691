package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain"
	"backoffice/internal/member"
	membermetrics "backoffice/internal/member/metrics"
	id "backoffice/pkg/domain"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/httputil"
	"backoffice/pkg/requestcontext"
)

// Service defines the interface for member operations.
type Service interface {
	Register(ctx context.Context, req member.RegisterRequest) (*domain.Member, error)
	Get(ctx context.Context, memberID id.MemberID) (*domain.Member, error)
	Activate(ctx context.Context, memberID id.MemberID) (*domain.Member, error)
	Deactivate(ctx context.Context, memberID id.MemberID) (*domain.Member, error)
}

// Handler wires member endpoints to the member service.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *membermetrics.Metrics
}

// New constructs a member handler with its dependencies.
func New(service Service, logger *slog.Logger, metrics *membermetrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Register mounts member endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/members", h.HandleRegister)
	r.Get("/members/{memberID}", h.HandleGet)
	r.Post("/members/{memberID}/activate", h.HandleActivate)
	r.Post("/members/{memberID}/deactivate", h.HandleDeactivate)
}

// HandleRegister handles POST /members requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.Register(ctx, member.RegisterRequest{
		Email: req.ParsedEmail(),
		Name:  req.Name,
		Phone: req.ParsedPhone(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "member registration failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ObserveRegister(start)
	}
	h.logger.InfoContext(ctx, "member registered",
		"request_id", requestID,
		"member_id", created.ID(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromMember(created))
}

// HandleGet handles GET /members/{memberID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	memberID, ok := h.pathMemberID(w, r)
	if !ok {
		return
	}

	found, err := h.service.Get(ctx, memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromMember(found))
}

// HandleActivate handles POST /members/{memberID}/activate requests.
func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "activated", h.service.Activate)
}

// HandleDeactivate handles POST /members/{memberID}/deactivate requests.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "deactivated", h.service.Deactivate)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, action string, apply func(context.Context, id.MemberID) (*domain.Member, error)) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	memberID, ok := h.pathMemberID(w, r)
	if !ok {
		return
	}

	updated, err := apply(ctx, memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "member "+action,
		"request_id", requestID,
		"member_id", updated.ID(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromMember(updated))
}

func (h *Handler) pathMemberID(w http.ResponseWriter, r *http.Request) (id.MemberID, bool) {
	memberID, err := id.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid member id"))
		return id.MemberID{}, false
	}
	return memberID, true
}
