package handler

import (
	"net/http"
	"strconv"

	dErrors "primelab/pkg/domain-errors"
)

// defaultComparisonRounds is used by run-all when the request leaves rounds
// unset; per-algorithm defaults don't apply since one count drives all
// algorithms.
const defaultComparisonRounds = 20

// RunRequest is the body for POST /api/tests/{testID}/run and
// POST /api/tests/run-all. Rounds = 0 means "use the default".
type RunRequest struct {
	Number string `json:"number"`
	Rounds int    `json:"rounds"`
}

// RecommendQuery is the parsed query for GET /api/probability/rounds.
type RecommendQuery struct {
	TestID      string
	Reliability float64
}

// ParseRecommendQuery validates the recommendation query parameters.
func ParseRecommendQuery(r *http.Request) (RecommendQuery, error) {
	q := r.URL.Query()

	testID := q.Get("test")
	if testID == "" {
		return RecommendQuery{}, dErrors.New(dErrors.CodeBadRequest, "query parameter 'test' is required")
	}

	raw := q.Get("reliability")
	if raw == "" {
		return RecommendQuery{}, dErrors.New(dErrors.CodeBadRequest, "query parameter 'reliability' is required")
	}
	reliability, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return RecommendQuery{}, dErrors.Newf(dErrors.CodeBadRequest, "reliability is not a number: %q", raw)
	}

	return RecommendQuery{TestID: testID, Reliability: reliability}, nil
}
