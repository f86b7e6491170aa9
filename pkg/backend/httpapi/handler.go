package httpapi

import (
	"net/http"

	"github.com/decker502/slots/pkg/backend"
	"github.com/decker502/slots/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Handler 把 backend.Backend 暴露为 HTTP 接口
type Handler struct {
	backend backend.Backend
	logger  *zap.Logger
}

// NewHTTPHandler 创建路由
//
// 参数:
//   - b: 出奖服务实现
//   - l: 日志器，可为 nil
func NewHTTPHandler(b backend.Backend, l *zap.Logger) http.Handler {
	h := &Handler{backend: b, logger: logger.OrNop(l).Named("HTTPHandler")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         60 * 15,
	}))

	r.Route("/v1", func(rr chi.Router) {
		rr.Get("/reels", h.GetReelConfiguration)
		rr.Post("/spins", h.RequestSpinOutcome)
		rr.Put("/reels/count", h.SetReelCount)
		rr.Put("/rows/count", h.SetRowCount)
	})

	return r
}

func (h *Handler) GetReelConfiguration(w http.ResponseWriter, r *http.Request) {
	rc, err := h.backend.GetReelConfiguration(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rc)
}

func (h *Handler) RequestSpinOutcome(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.backend.RequestSpinOutcome(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) SetReelCount(w http.ResponseWriter, r *http.Request) {
	req, err := decode[CountRequest](r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	if err := h.backend.SetReelCount(r.Context(), req.Count); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetRowCount(w http.ResponseWriter, r *http.Request) {
	req, err := decode[CountRequest](r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	if err := h.backend.SetRowCount(r.Context(), req.Count); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	h.logger.Warn("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("status", status),
		zap.Error(err))
	writeError(w, status, code, err)
}
