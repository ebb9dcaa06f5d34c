package submissionsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	questionmodels "vidya_assessment/internal/api/question/models"
	solutionmodels "vidya_assessment/internal/api/solution/models"
	submissionmodels "vidya_assessment/internal/api/submission/models"
	"vidya_assessment/internal/common"
	"vidya_assessment/internal/delivery"
	"vidya_assessment/internal/logger"
	"vidya_assessment/internal/reporting"
	"vidya_assessment/internal/scoring"
)

// MsgRatingCompleted is the acknowledgement returned for every finished
// rating run, whether or not the outcome was persisted. Callers learn about
// a rejected run from the outcome email, not the response.
const MsgRatingCompleted = "Criteria rating completed"

// Rating email subjects; the submission id is appended.
const (
	subjectRatingSuccess = "Auto rating completed for submission "
	subjectRatingFailed  = "Auto rating failed for submission "
)

// Narrow store views the orchestrator depends on, so tests can substitute
// fakes without a running database.
type (
	submissionRatingStore interface {
		FindForRating(ctx context.Context, id primitive.ObjectID) (submissionmodels.ObservationSubmission, error)
		FindCompleted(ctx context.Context, id primitive.ObjectID) (submissionmodels.ObservationSubmission, error)
		MarkRatingComplete(ctx context.Context, id primitive.ObjectID) error
	}

	solutionRatingStore interface {
		FindForRating(ctx context.Context, externalID string) (solutionmodels.Solution, error)
	}

	criterionRatingStore interface {
		FindEvidencesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]questionmodels.Criterion, error)
	}

	questionRatingStore interface {
		FindScorableByIDs(ctx context.Context, ids []primitive.ObjectID) ([]questionmodels.Question, error)
	}

	ratingEmailSender interface {
		Send(recipients []string, subject string, body string) error
	}
)

// RatingService orchestrates the auto rating of one completed submission:
// load, enrich with the solution's rubric, call the engine, persist and
// notify.
type RatingService struct {
	submissions submissionRatingStore
	solutions   solutionRatingStore
	criteria    criterionRatingStore
	questions   questionRatingStore

	engine    scoring.RatingEngine
	publisher reporting.Publisher
	email     ratingEmailSender
	alerter   delivery.OpsAlerter

	// Fallback recipients for outcome emails, used when the solution does
	// not name its own.
	defaultRecipients []string
}

// NewRatingService wires the orchestrator from its dependencies.
func NewRatingService(
	submissions submissionRatingStore,
	solutions solutionRatingStore,
	criteria criterionRatingStore,
	questions questionRatingStore,
	engine scoring.RatingEngine,
	publisher reporting.Publisher,
	email ratingEmailSender,
	alerter delivery.OpsAlerter,
	defaultRecipients []string,
) *RatingService {
	return &RatingService{
		submissions:       submissions,
		solutions:         solutions,
		criteria:          criteria,
		questions:         questions,
		engine:            engine,
		publisher:         publisher,
		email:             email,
		alerter:           alerter,
		defaultRecipients: defaultRecipients,
	}
}

// RateByID rates one completed submission end to end and returns the
// generic acknowledgement. Every error path sends a failure email to the
// current recipients before the error is returned.
func (s *RatingService) RateByID(ctx context.Context, submissionID primitive.ObjectID) (string, error) {
	log := logger.GetAppLogger()

	// Recipients are resolved before any fallible step so failure emails
	// always have somewhere to go.
	recipients := append([]string{}, s.defaultRecipients...)

	submission, err := s.submissions.FindForRating(ctx, submissionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			err = common.NewError(common.ErrCodeDatabaseQuery,
				fmt.Sprintf("submission %s not found or not completed", submissionID.Hex()),
				common.StatusNotFound, nil)
		}
		return "", s.fail(submissionID, recipients, err)
	}

	solution, err := s.solutions.FindForRating(ctx, submission.SolutionExternalID)
	if err != nil {
		// The lookup is pinned to points based observation solutions, so a
		// miss means the submission's solution cannot be auto rated.
		if errors.Is(err, common.ErrNotFound) {
			err = common.ErrUnsupportedScoringSystem
		}
		return "", s.fail(submissionID, recipients, err)
	}

	if solution.SendSubmissionRatingEmailsTo != "" {
		recipients = splitRecipients(solution.SendSubmissionRatingEmailsTo)
	}

	enriched, err := s.enrich(ctx, submission, solution)
	if err != nil {
		return "", s.fail(submissionID, recipients, err)
	}

	result, err := s.engine.Rate(ctx, []scoring.EnrichedSubmission{*enriched}, scoring.ModeSingleRate)
	if err != nil {
		return "", s.fail(submissionID, recipients, err)
	}

	resultJSON, _ := json.Marshal(result)

	if !result.RunUpdateQuery {
		// The engine rejected the run: nothing is written, nothing is
		// pushed for reporting, but the recipients hear about it.
		log.WithField("submissionId", submissionID.Hex()).
			WithField("message", result.Message).
			Warn("Rating engine declined to persist submission scores")
		s.sendMail(recipients, subjectRatingFailed+submissionID.Hex(), string(resultJSON))
		return MsgRatingCompleted, nil
	}

	if err := s.submissions.MarkRatingComplete(ctx, submissionID); err != nil {
		return "", s.fail(submissionID, recipients, err)
	}

	// Reporting is best effort: a rated submission stays rated even when
	// the downstream pipeline is unreachable.
	if err := s.PushCompletedByID(ctx, submissionID); err != nil {
		s.alerter.Alert(ctx, "Reporting push failed after rating", map[string]string{
			"submissionId": submissionID.Hex(),
			"error":        err.Error(),
		})
	}

	s.sendMail(recipients, subjectRatingSuccess+submissionID.Hex(), string(resultJSON))

	log.WithField("submissionId", submissionID.Hex()).Info("Submission auto rating completed")
	return MsgRatingCompleted, nil
}

// PushCompletedByID loads one completed submission in full and pushes it for
// reporting.
func (s *RatingService) PushCompletedByID(ctx context.Context, submissionID primitive.ObjectID) error {
	submission, err := s.submissions.FindCompleted(ctx, submissionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewError(common.ErrCodeDatabaseQuery,
				fmt.Sprintf("submission %s not found or not completed", submissionID.Hex()),
				common.StatusNotFound, nil)
		}
		return err
	}

	return s.publisher.PushCompletedSubmission(ctx, submission)
}

// enrich expands the submission with the solution's rubric and the question
// score index.
func (s *RatingService) enrich(ctx context.Context, submission submissionmodels.ObservationSubmission, solution solutionmodels.Solution) (*scoring.EnrichedSubmission, error) {
	enriched := &scoring.EnrichedSubmission{
		Submission:           submission,
		SubmissionCollection: "observationSubmissions",
		ScoringSystem:        solutionmodels.ScoringSystemPointsBased,
		LevelToScoreMapping:  solution.LevelToScoreMapping,
	}

	criteriaIDs := scoring.CriteriaIDsFromThemes(solution.Themes)
	if len(criteriaIDs) == 0 {
		return enriched, nil
	}

	enriched.Themes = solution.FlattenedThemes

	criteria, err := s.criteria.FindEvidencesByIDs(ctx, criteriaIDs)
	if err != nil {
		return nil, err
	}

	questionIDs := scoring.QuestionIDsFromCriteria(criteria)
	if len(questionIDs) == 0 {
		return enriched, nil
	}

	questions, err := s.questions.FindScorableByIDs(ctx, questionIDs)
	if err != nil {
		return nil, err
	}
	if len(questions) > 0 {
		enriched.QuestionDocuments = scoring.BuildQuestionScoreIndex(questions)
	}

	return enriched, nil
}

// fail emails the failure to the current recipients and passes the error
// through.
func (s *RatingService) fail(submissionID primitive.ObjectID, recipients []string, cause error) error {
	s.sendMail(recipients, subjectRatingFailed+submissionID.Hex(), cause.Error())
	return cause
}

// sendMail delivers an outcome email, logging delivery failures instead of
// surfacing them.
func (s *RatingService) sendMail(recipients []string, subject, body string) {
	if err := s.email.Send(recipients, subject, body); err != nil {
		logger.GetDeliveryLogger().WithError(err).
			WithField("subject", subject).
			Error("Failed to send rating outcome email")
	}
}

func splitRecipients(raw string) []string {
	parts := strings.Split(raw, ",")
	recipients := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	return recipients
}
