package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	solutionmodels "vidya_assessment/internal/api/solution/models"
	submissionmodels "vidya_assessment/internal/api/submission/models"
	"vidya_assessment/internal/common"
	"vidya_assessment/internal/logger"
)

// Rating modes accepted by the engine.
const (
	ModeSingleRate = "singleRateApi"
	ModeBatchRate  = "batchRateApi"
)

// EnrichedSubmission is one submission expanded with everything the rating
// engine needs to score it: the flattened rubric, level mapping and the
// question score index.
type EnrichedSubmission struct {
	Submission submissionmodels.ObservationSubmission `json:"submission"`

	SubmissionCollection string                               `json:"submissionCollection"`
	ScoringSystem        string                               `json:"scoringSystem"`
	Themes               []interface{}                        `json:"themes,omitempty"`
	LevelToScoreMapping  map[string]solutionmodels.LevelScore `json:"levelToScoreMapping,omitempty"`
	QuestionDocuments    map[string]QuestionScoreCard         `json:"questionDocuments,omitempty"`
}

// RatingResult is the engine's verdict for a rating call. On the wire it
// arrives wrapped under the reply's result key.
type RatingResult struct {
	// RunUpdateQuery reports whether the scored outcome should be persisted.
	RunUpdateQuery bool `json:"runUpdateQuery"`

	Message string                 `json:"message,omitempty"`
	Result  map[string]interface{} `json:"result,omitempty"`
}

// RatingEngine rates enriched submissions. Implementations must not mutate
// the submissions.
type RatingEngine interface {
	Rate(ctx context.Context, submissions []EnrichedSubmission, mode string) (*RatingResult, error)
}

// HTTPRatingEngine calls the external rating engine over HTTP.
type HTTPRatingEngine struct {
	url    string
	client *http.Client
}

// NewHTTPRatingEngine creates an engine client for url with the given
// call timeout.
func NewHTTPRatingEngine(url string, timeout time.Duration) *HTTPRatingEngine {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPRatingEngine{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Rate POSTs the enriched submissions to the engine and decodes its verdict.
// Transport and non-2xx failures come back as EngineFailure errors.
func (e *HTTPRatingEngine) Rate(ctx context.Context, submissions []EnrichedSubmission, mode string) (*RatingResult, error) {
	log := logger.GetDeliveryLogger()

	payload := map[string]interface{}{
		"entities": submissions,
		"mode":     mode,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, common.NewError(common.ErrCodeRatingEngine, fmt.Sprintf("cannot encode engine payload: %v", err), common.StatusInternalServerError, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, common.NewError(common.ErrCodeRatingEngine, fmt.Sprintf("cannot build engine request: %v", err), common.StatusInternalServerError, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		log.WithError(err).WithField("url", e.url).Error("Rating engine call failed")
		return nil, common.NewError(common.ErrCodeRatingEngine, fmt.Sprintf("rating engine unreachable: %v", err), common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithField("status", resp.StatusCode).Error("Rating engine returned error status")
		return nil, common.NewError(common.ErrCodeRatingEngine, fmt.Sprintf("rating engine returned status %d", resp.StatusCode), common.StatusBadGateway, nil)
	}

	var envelope struct {
		Result RatingResult `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, common.NewError(common.ErrCodeRatingEngine, fmt.Sprintf("cannot decode engine response: %v", err), common.StatusBadGateway, err)
	}

	return &envelope.Result, nil
}
