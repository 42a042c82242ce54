package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"primelab/internal/primality/models"
	dErrors "primelab/pkg/domain-errors"
	"primelab/pkg/platform/httputil"
	"primelab/pkg/requestcontext"
)

// Service defines the interface for primality engine operations.
type Service interface {
	ListTests() []models.AlgorithmInfo
	IsSupported(id string) bool
	RecommendedRounds(id string) (int, error)
	RoundsForReliability(id string, target float64) (rounds int, capped bool, err error)
	RunTest(ctx context.Context, id string, number string, rounds int) (*models.TestResult, error)
	RunAllTests(ctx context.Context, number string, rounds int) (*models.ComparisonResult, error)
}

// Handler wires the primality endpoints to the engine service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a primality handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts primality endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/tests", h.HandleListTests)
	r.Get("/api/tests/{testID}", h.HandleGetTest)
	r.Post("/api/tests/run-all", h.HandleRunAll)
	r.Post("/api/tests/{testID}/run", h.HandleRunTest)
	r.Get("/api/probability/rounds", h.HandleRecommendRounds)
}

// HandleListTests handles GET /api/tests.
func (h *Handler) HandleListTests(w http.ResponseWriter, r *http.Request) {
	infos := h.service.ListTests()
	httputil.WriteJSON(w, http.StatusOK, FromAlgorithmInfos(infos))
}

// HandleGetTest handles GET /api/tests/{testID}.
func (h *Handler) HandleGetTest(w http.ResponseWriter, r *http.Request) {
	testID := chi.URLParam(r, "testID")
	if !h.service.IsSupported(testID) {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeNotFound, "unknown test id: %s", testID))
		return
	}

	for _, info := range h.service.ListTests() {
		if string(info.ID) == testID {
			httputil.WriteJSON(w, http.StatusOK, FromAlgorithmInfo(info))
			return
		}
	}
}

// HandleRunTest handles POST /api/tests/{testID}/run.
func (h *Handler) HandleRunTest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	testID := chi.URLParam(r, "testID")
	start := time.Now()

	req, ok := httputil.Decode[RunRequest](w, r, h.logger)
	if !ok {
		return
	}

	rounds := req.Rounds
	if rounds == 0 {
		recommended, err := h.service.RecommendedRounds(testID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		rounds = recommended
	}

	result, err := h.service.RunTest(ctx, testID, req.Number, rounds)
	if err != nil {
		h.logger.ErrorContext(ctx, "test run failed",
			"request_id", requestID,
			"test_id", testID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "test run completed",
		"request_id", requestID,
		"test_id", testID,
		"verdict", result.Verdict,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleRunAll handles POST /api/tests/run-all.
func (h *Handler) HandleRunAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[RunRequest](w, r, h.logger)
	if !ok {
		return
	}

	rounds := req.Rounds
	if rounds == 0 {
		rounds = defaultComparisonRounds
	}

	comparison, err := h.service.RunAllTests(ctx, req.Number, rounds)
	if err != nil {
		h.logger.ErrorContext(ctx, "comparison failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "comparison completed",
		"request_id", requestID,
		"candidate", comparison.Candidate,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromComparison(comparison))
}

// HandleRecommendRounds handles GET /api/probability/rounds.
func (h *Handler) HandleRecommendRounds(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRecommendQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rounds, capped, err := h.service.RoundsForReliability(req.TestID, req.Reliability)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, RecommendResponse{
		TestID:      req.TestID,
		Reliability: req.Reliability,
		Rounds:      rounds,
		Capped:      capped,
	})
}
