package handler

import (
	"primelab/internal/primality/models"
)

// AlgorithmResponse is the transport shape of one algorithm descriptor.
type AlgorithmResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Deterministic bool   `json:"deterministic"`
	Certified     bool   `json:"certified"`
	DefaultRounds int    `json:"default_rounds"`
}

// TestResultResponse is the transport shape of one test result.
type TestResultResponse struct {
	ID         string   `json:"id"`
	Candidate  string   `json:"candidate"`
	Algorithm  string   `json:"algorithm"`
	Verdict    string   `json:"verdict"`
	ElapsedMS  float64  `json:"elapsed_ms"`
	Iterations int      `json:"iterations"`
	Confidence float64  `json:"confidence"`
	Display    string   `json:"confidence_display"`
	Message    string   `json:"message"`
	LimitHit   bool     `json:"limit_hit,omitempty"`
	Trace      []string `json:"trace"`
}

// ComparisonResponse is the transport shape of a run-all result.
type ComparisonResponse struct {
	Candidate      string               `json:"candidate"`
	Results        []TestResultResponse `json:"results"`
	TotalElapsedMS float64              `json:"total_elapsed_ms"`
}

// RecommendResponse is the transport shape of a rounds recommendation.
type RecommendResponse struct {
	TestID      string  `json:"test_id"`
	Reliability float64 `json:"reliability"`
	Rounds      int     `json:"rounds"`
	// Capped reports that the recommendation search hit its iteration
	// ceiling and returned the documented fallback.
	Capped bool `json:"capped"`
}

// FromAlgorithmInfo converts a descriptor to its transport shape.
func FromAlgorithmInfo(info models.AlgorithmInfo) AlgorithmResponse {
	return AlgorithmResponse{
		ID:            string(info.ID),
		Name:          info.Name,
		Description:   info.Description,
		Deterministic: info.Deterministic,
		Certified:     info.Certified,
		DefaultRounds: info.DefaultRounds,
	}
}

// FromAlgorithmInfos converts a descriptor list, preserving order.
func FromAlgorithmInfos(infos []models.AlgorithmInfo) []AlgorithmResponse {
	out := make([]AlgorithmResponse, len(infos))
	for i, info := range infos {
		out[i] = FromAlgorithmInfo(info)
	}
	return out
}

// FromResult converts a test result to its transport shape. The trace is
// rendered from the structured steps at the boundary; the structured form
// never leaves the engine.
func FromResult(res *models.TestResult) TestResultResponse {
	return TestResultResponse{
		ID:         res.ID,
		Candidate:  res.Candidate,
		Algorithm:  string(res.Algorithm),
		Verdict:    string(res.Verdict),
		ElapsedMS:  float64(res.Elapsed.Microseconds()) / 1000,
		Iterations: res.Iterations,
		Confidence: res.Confidence,
		Display:    res.ConfidenceLabel,
		Message:    res.Message,
		LimitHit:   res.LimitHit,
		Trace:      models.RenderSteps(res.Trace),
	}
}

// FromComparison converts a comparison result to its transport shape.
func FromComparison(cmp *models.ComparisonResult) ComparisonResponse {
	results := make([]TestResultResponse, len(cmp.Results))
	for i := range cmp.Results {
		results[i] = FromResult(&cmp.Results[i])
	}
	return ComparisonResponse{
		Candidate:      cmp.Candidate,
		Results:        results,
		TotalElapsedMS: float64(cmp.TotalElapsed.Microseconds()) / 1000,
	}
}
