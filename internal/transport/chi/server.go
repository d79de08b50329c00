package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/retail-cloud/pricedex/internal/domain"
	healthuc "github.com/retail-cloud/pricedex/internal/usecase/health"
	ingestuc "github.com/retail-cloud/pricedex/internal/usecase/ingest"
	searchuc "github.com/retail-cloud/pricedex/internal/usecase/search"
)

// errorCode identifies a machine-readable error class in API responses.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeValidationFailed errorCode = "validation_failed"
	codeInvalidPriceList errorCode = "invalid_price_list"
	codeNotIngested      errorCode = "not_ingested"
	codeInternalError    errorCode = "internal_error"
)

// errorResponse is the standard error payload.
type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Options holds transport-level tunables.
type Options struct {
	MaxUploadBytes  int64
	DefaultSkipRows int
}

// Server exposes the price list API over HTTP.
type Server struct {
	ingest        *ingestuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	opts          Options
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	ingest *ingestuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	opts Options,
) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	s := &Server{
		ingest: ingest,
		search: search,
		health: health,
		logger: logger,
		opts:   opts,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotIngested, http.StatusNotFound, codeNotIngested),
		sentinelHandler(domain.ErrDecode, http.StatusBadRequest, codeInvalidPriceList),
	}
	return s
}

// Register mounts all routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Post("/api/v1/pricelist", s.UploadPriceList)
	r.Get("/api/v1/search", s.SearchProducts)
}

// UploadPriceList handles POST /api/v1/pricelist. The body is multipart form
// data with a "file" part holding the CSV and an optional "skip_rows" part.
// The file part streams straight into ingestion, it is never buffered whole.
func (s *Server) UploadPriceList(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	mr, err := r.MultipartReader()
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "expected multipart form data: "+err.Error())
		return
	}

	// skip_rows must precede file in the form for its value to apply.
	skipRows := s.opts.DefaultSkipRows
	if v := r.URL.Query().Get("skip_rows"); v != "" {
		skipRows, err = parseSkipRows(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
	}

	for {
		part, err := mr.NextPart()
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, `multipart form must contain a "file" part`)
			return
		}

		switch part.FormName() {
		case "skip_rows":
			val, err := io.ReadAll(io.LimitReader(part, 16))
			if err != nil {
				writeError(w, http.StatusBadRequest, codeBadRequest, "read skip_rows: "+err.Error())
				return
			}
			skipRows, err = parseSkipRows(string(val))
			if err != nil {
				writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
				return
			}
		case "file":
			rows, err := s.ingest.Ingest(r.Context(), part, skipRows)
			if err != nil {
				s.handleDomainError(w, err)
				return
			}
			s.logger.Info("price list ingested", zap.Int("rows", rows), zap.Int("skip_rows", skipRows))
			writeJSON(w, http.StatusOK, map[string]int{"rows": rows})
			return
		default:
			// Unknown parts are skipped, not rejected.
		}
	}
}

// SearchProducts handles GET /api/v1/search.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed,
				fmt.Sprintf("limit must be a positive integer, got %q", v))
			return
		}
		limit = n
	}

	results, err := s.search.Search(r.Context(), query, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResultItem, len(results))
	for i, res := range results {
		items[i] = searchResultItem{Record: res.Record, Score: res.Score}
	}

	// Echo the requested limit, or the result count when it was left unset.
	if limit == 0 {
		limit = len(items)
	}
	writeJSON(w, http.StatusOK, searchResultListResponse{
		Items: items,
		Limit: limit,
		Total: len(items),
	})
}

// searchResultItem is a matched record with its relevance score.
type searchResultItem struct {
	domain.Record
	Score float64 `json:"score"`
}

type searchResultListResponse struct {
	Items []searchResultItem `json:"items"`
	Limit int                `json:"limit"`
	Total int                `json:"total"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func parseSkipRows(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("skip_rows must be a non-negative integer, got %q", v)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotIngested,
		domain.ErrDecode,
		domain.ErrIndexBuild,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			if errors.Is(err, domain.ErrDecode) {
				// Decode errors carry the failing line number; that is
				// exactly what the uploader needs to fix the file.
				return err.Error()
			}
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
