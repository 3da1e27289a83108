// Package api is the caller-facing HTTP surface of the assistant.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stor-a-gentic/server/internal/agent/booking"
	"github.com/stor-a-gentic/server/internal/agent/model"
	errx "github.com/stor-a-gentic/server/internal/core/error"
	logx "github.com/stor-a-gentic/server/pkg/logger"
)

const maxBodySize = 1 << 20

type Asker interface {
	Ask(ctx context.Context, message, userID string) (model.ResolutionResult, bool)
}

type FAQWriter interface {
	CreateFAQ(ctx context.Context, faq model.FaqEntry) model.InsertResult
}

// KnowledgeLoader reloads the knowledge base after an FAQ is added.
type KnowledgeLoader interface {
	Load(ctx context.Context) []model.FaqEntry
}

type Booker interface {
	BookCollection(ctx context.Context, b booking.CollectionBooking) (model.InsertResult, error)
	CreateServiceRequest(ctx context.Context, req model.ServiceRequest) (model.InsertResult, error)
}

type HealthReporter interface {
	Last() (model.HealthStatus, bool)
	Probe(ctx context.Context) model.HealthStatus
}

type Deps struct {
	Chat      Asker
	Data      model.ReferenceData
	FAQs      FAQWriter
	Knowledge KnowledgeLoader // optional
	Booking   Booker
	Health    HealthReporter
	Gatherer  prometheus.Gatherer // optional; nil disables /metrics
}

func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", handleHealth(deps))
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", handleChat(deps))
		r.Get("/faqs", list(deps.Data.FAQs))
		r.Post("/faqs", handleCreateFAQ(deps))
		r.Get("/locations", list(deps.Data.Locations))
		r.Get("/collection-slots", list(deps.Data.CollectionSlots))
		r.Get("/service-requests", list(deps.Data.ServiceRequests))
		r.Post("/service-requests", handleCreateServiceRequest(deps))
		r.Get("/inquiries", list(deps.Data.Inquiries))
		r.Post("/collections", handleBookCollection(deps))
	})
	return r
}

type chatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

func handleChat(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if !decode(w, r, &req) {
			return
		}
		res, ok := deps.Chat.Ask(r.Context(), req.Message, req.UserID)
		if !ok {
			writeError(w, errx.Invalid("message is required"))
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func handleCreateFAQ(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var faq model.FaqEntry
		if !decode(w, r, &faq) {
			return
		}
		faq.Question = strings.TrimSpace(faq.Question)
		faq.Answer = strings.TrimSpace(faq.Answer)
		if faq.Question == "" || faq.Answer == "" {
			writeError(w, errx.Invalid("question and answer are required"))
			return
		}
		res := deps.FAQs.CreateFAQ(r.Context(), faq)
		if res.Success && deps.Knowledge != nil {
			deps.Knowledge.Load(r.Context())
		}
		writeInsert(w, res)
	}
}

func handleCreateServiceRequest(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.ServiceRequest
		if !decode(w, r, &req) {
			return
		}
		res, err := deps.Booking.CreateServiceRequest(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeInsert(w, res)
	}
}

func handleBookCollection(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var b booking.CollectionBooking
		if !decode(w, r, &b) {
			return
		}
		res, err := deps.Booking.BookCollection(r.Context(), b)
		if err != nil {
			writeError(w, err)
			return
		}
		writeInsert(w, res)
	}
}

// handleHealth reports the startup probe. It probes on demand only when no
// probe has run yet.
func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, ok := deps.Health.Last()
		if !ok {
			status = deps.Health.Probe(r.Context())
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func list[T any](fetch func(context.Context) []T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows := fetch(r.Context())
		if rows == nil {
			rows = []T{}
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// writeInsert answers 201 on success. A failed write is still a 200 with
// success=false; the store's failure is not the caller's error.
func writeInsert(w http.ResponseWriter, res model.InsertResult) {
	code := http.StatusOK
	if res.Success {
		code = http.StatusCreated
	}
	writeJSON(w, code, res)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, errx.Invalid("invalid request body"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errx.StatusOf(err)
	msg := errx.SystemErrorMessage
	var appErr *errx.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		msg = appErr.Message
	}
	if code >= http.StatusInternalServerError {
		logx.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    string(errx.KindOf(err)),
		},
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logx.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}
