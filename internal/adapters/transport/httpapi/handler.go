package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bnema/scantally/internal/application"
	"github.com/bnema/scantally/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Service is the part of application.Service the HTTP surface drives.
type Service interface {
	ObserveBatch(ctx context.Context, observations []domain.Observation) (int, error)
	Suspend(ctx context.Context) (domain.CarryOver, error)
	Resume(ctx context.Context) (int, error)
	Restart(ctx context.Context) error
	Items(ctx context.Context) (application.Listing, error)
}

type handler struct {
	svc    Service
	logger *zap.Logger
}

type observationRequest struct {
	Payload  string `json:"payload"`
	Category string `json:"category"`
}

type observeResponse struct {
	Received int `json:"received"`
	Accepted int `json:"accepted"`
}

type itemResponse struct {
	Key       string     `json:"key"`
	Category  string     `json:"category"`
	Quantity  int        `json:"quantity"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired"`
}

type listingResponse struct {
	SessionID        string         `json:"session_id"`
	Items            []itemResponse `json:"items"`
	Distinct         int            `json:"distinct"`
	Total            int            `json:"total"`
	PendingCarryOver int            `json:"pending_carry_over"`
}

type carryOverEntryResponse struct {
	Payload  string `json:"payload"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type suspendResponse struct {
	CarryOver []carryOverEntryResponse `json:"carry_over"`
}

type resumeResponse struct {
	Merged int `json:"merged"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewRouter(svc Service, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &handler{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", h.health)
	r.Post("/observations", h.postObservations)
	r.Get("/items", h.getItems)
	r.Route("/lifecycle", func(r chi.Router) {
		r.Post("/suspend", h.suspend)
		r.Post("/resume", h.resume)
		r.Post("/reset", h.reset)
	})

	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) postObservations(w http.ResponseWriter, r *http.Request) {
	observations, err := decodeObservations(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	accepted, err := h.svc.ObserveBatch(r.Context(), observations)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, observeResponse{Received: len(observations), Accepted: accepted})
}

func (h *handler) getItems(w http.ResponseWriter, r *http.Request) {
	order := application.SortFirstSeen
	if raw := r.URL.Query().Get("sort"); raw != "" {
		order = application.SortOrder(raw)
		if !order.Valid() {
			writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported sort %q", raw))
			return
		}
	}

	listing, err := h.svc.Items(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	items := application.SortItems(listing.Items, order)
	resp := listingResponse{
		SessionID:        string(listing.SessionID),
		Items:            make([]itemResponse, 0, len(items)),
		Distinct:         listing.Distinct,
		Total:            listing.Total,
		PendingCarryOver: listing.PendingCarryOver,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, itemResponse{
			Key:       item.Key,
			Category:  item.Category,
			Quantity:  item.Quantity,
			ExpiresAt: item.ExpiresAt,
			Expired:   item.Expired,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) suspend(w http.ResponseWriter, r *http.Request) {
	carryOver, err := h.svc.Suspend(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	resp := suspendResponse{CarryOver: make([]carryOverEntryResponse, 0, len(carryOver.Entries))}
	for _, entry := range carryOver.Entries {
		resp.CarryOver = append(resp.CarryOver, carryOverEntryResponse{
			Payload:  entry.Payload,
			Category: entry.Category,
			Quantity: entry.Quantity,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) resume(w http.ResponseWriter, r *http.Request) {
	merged, err := h.svc.Resume(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resumeResponse{Merged: merged})
}

func (h *handler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Restart(r.Context()); err != nil {
		h.internalError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, errors.New("internal error"))
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		h.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// decodeObservations accepts a single observation object or an array of them.
func decodeObservations(body io.Reader) ([]domain.Observation, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("request body is empty")
	}

	var requests []observationRequest
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &requests); err != nil {
			return nil, fmt.Errorf("decode observations: %w", err)
		}
	} else {
		var single observationRequest
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("decode observation: %w", err)
		}
		requests = append(requests, single)
	}

	observations := make([]domain.Observation, 0, len(requests))
	for _, req := range requests {
		observations = append(observations, domain.Observation{Payload: req.Payload, Category: req.Category})
	}

	return observations, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
