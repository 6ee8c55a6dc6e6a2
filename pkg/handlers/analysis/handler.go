package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/smaport/insight/pkg/adapters"
	"github.com/smaport/insight/pkg/models/api"
	"github.com/smaport/insight/pkg/models/domain"
	analysissvc "github.com/smaport/insight/pkg/services/analysis"
	"github.com/smaport/insight/pkg/services/ingest"
	"github.com/smaport/insight/pkg/services/report"
)

// maxUploadBytes bounds a single multipart upload.
const maxUploadBytes = 32 << 20

// Service is the slice of the analysis controller the handler needs.
type Service interface {
	Analyze(ctx context.Context, fileName string, data []byte, cfg domain.AnalysisConfig) (*domain.Analysis, error)
	Get(ctx context.Context, id string) (*domain.Analysis, error)
	Filter(ctx context.Context, id string, filter domain.TableFilter) (*domain.Analysis, error)
	Snapshot(ctx context.Context, id string, cfg domain.AnalysisConfig) (domain.Snapshot, error)
}

type Handler struct {
	analyses  Service
	requester report.Requester
	defaults  domain.AnalysisConfig
}

func NewHandler(analyses Service, requester report.Requester, defaults domain.AnalysisConfig) *Handler {
	return &Handler{
		analyses:  analyses,
		requester: requester,
		defaults:  defaults,
	}
}

// Upload ingests a multipart file and returns the created analysis.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	cfg, err := h.configFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.analyses.Analyze(ctx, header.Filename, data, cfg)
	if err != nil {
		if errors.Is(err, ingest.ErrUnreadableFile) || errors.Is(err, ingest.ErrEmptyTable) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		logger.Error().Err(err).Str("file", header.Filename).Msg("upload analysis failed")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	writeJSON(w, http.StatusCreated, adapters.MapAnalysisDomainToApi(a))
}

// Get returns a previously created analysis.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.analyses.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, adapters.MapAnalysisDomainToApi(a))
}

// Filter derives a new analysis restricted by product and/or date range.
func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	var req api.FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter body")
		return
	}

	filter := domain.TableFilter{Product: req.Product}
	if req.Start != "" {
		t, err := time.Parse("2006-01-02", req.Start)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start date, want YYYY-MM-DD")
			return
		}
		filter.Start = &t
	}
	if req.End != "" {
		t, err := time.Parse("2006-01-02", req.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end date, want YYYY-MM-DD")
			return
		}
		filter.End = &t
	}

	a, err := h.analyses.Filter(r.Context(), chi.URLParam(r, "id"), filter)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, adapters.MapAnalysisDomainToApi(a))
}

// Metrics recomputes the snapshot, optionally under overridden top_n and
// sigma query parameters.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshot, err := h.analyses.Snapshot(r.Context(), chi.URLParam(r, "id"), cfg)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, adapters.MapSnapshotDomainToApi(snapshot))
}

// Report runs the single blocking call to the external text-generation
// collaborator. Failures surface as 502; there is no retry.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	a, err := h.analyses.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	text, err := h.requester.Generate(ctx, report.BuildPayload(a))
	if err != nil {
		logger.Error().Err(err).Str("analysis_id", a.ID).Msg("report generation failed")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, api.Report{Text: text})
}

// configFromQuery reads top_n and sigma overrides, falling back to the
// configured defaults, and validates the documented ranges.
func (h *Handler) configFromQuery(r *http.Request) (domain.AnalysisConfig, error) {
	cfg := h.defaults

	if raw := r.URL.Query().Get("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, errors.New("top_n must be an integer")
		}
		cfg.TopN = n
	}
	if raw := r.URL.Query().Get("sigma"); raw != "" {
		s, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cfg, errors.New("sigma must be a number")
		}
		cfg.Sigma = s
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.Error{Error: message})
}

var _ Service = (*analysissvc.Controller)(nil)
