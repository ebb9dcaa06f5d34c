package submissionsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	questionmodels "vidya_assessment/internal/api/question/models"
	solutionmodels "vidya_assessment/internal/api/solution/models"
	submissionmodels "vidya_assessment/internal/api/submission/models"
	"vidya_assessment/internal/common"
	"vidya_assessment/internal/scoring"
)

type fakeSubmissionStore struct {
	submission submissionmodels.ObservationSubmission
	findErr    error
	markErr    error

	markCalls int
}

func (f *fakeSubmissionStore) FindForRating(ctx context.Context, id primitive.ObjectID) (submissionmodels.ObservationSubmission, error) {
	if f.findErr != nil {
		return submissionmodels.ObservationSubmission{}, f.findErr
	}
	return f.submission, nil
}

func (f *fakeSubmissionStore) FindCompleted(ctx context.Context, id primitive.ObjectID) (submissionmodels.ObservationSubmission, error) {
	if f.findErr != nil {
		return submissionmodels.ObservationSubmission{}, f.findErr
	}
	return f.submission, nil
}

func (f *fakeSubmissionStore) MarkRatingComplete(ctx context.Context, id primitive.ObjectID) error {
	f.markCalls++
	return f.markErr
}

type fakeSolutionStore struct {
	solution solutionmodels.Solution
	err      error
}

func (f *fakeSolutionStore) FindForRating(ctx context.Context, externalID string) (solutionmodels.Solution, error) {
	if f.err != nil {
		return solutionmodels.Solution{}, f.err
	}
	return f.solution, nil
}

type fakeCriterionStore struct {
	criteria []questionmodels.Criterion
}

func (f *fakeCriterionStore) FindEvidencesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]questionmodels.Criterion, error) {
	return f.criteria, nil
}

type fakeQuestionStore struct {
	questions []questionmodels.Question
}

func (f *fakeQuestionStore) FindScorableByIDs(ctx context.Context, ids []primitive.ObjectID) ([]questionmodels.Question, error) {
	return f.questions, nil
}

type fakeEngine struct {
	result *scoring.RatingResult
	err    error

	calls     int
	lastBatch []scoring.EnrichedSubmission
	lastMode  string
}

func (f *fakeEngine) Rate(ctx context.Context, submissions []scoring.EnrichedSubmission, mode string) (*scoring.RatingResult, error) {
	f.calls++
	f.lastBatch = submissions
	f.lastMode = mode
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakePublisher struct {
	err   error
	calls int
}

func (f *fakePublisher) PushCompletedSubmission(ctx context.Context, submission submissionmodels.ObservationSubmission) error {
	f.calls++
	return f.err
}

type sentMail struct {
	recipients []string
	subject    string
	body       string
}

type fakeEmail struct {
	sent []sentMail
}

func (f *fakeEmail) Send(recipients []string, subject string, body string) error {
	f.sent = append(f.sent, sentMail{recipients: recipients, subject: subject, body: body})
	return nil
}

type fakeAlerter struct {
	alerts []string
}

func (f *fakeAlerter) Alert(ctx context.Context, title string, fields map[string]string) {
	f.alerts = append(f.alerts, title)
}

type ratingFixture struct {
	submissions *fakeSubmissionStore
	solutions   *fakeSolutionStore
	engine      *fakeEngine
	publisher   *fakePublisher
	email       *fakeEmail
	alerter     *fakeAlerter

	service *RatingService
}

func newRatingFixture() *ratingFixture {
	f := &ratingFixture{
		submissions: &fakeSubmissionStore{
			submission: submissionmodels.ObservationSubmission{
				ID:                 primitive.NewObjectID(),
				SolutionExternalID: "SOL-001",
				Status:             submissionmodels.StatusCompleted,
			},
		},
		solutions: &fakeSolutionStore{
			solution: solutionmodels.Solution{
				ExternalID:    "SOL-001",
				ScoringSystem: solutionmodels.ScoringSystemPointsBased,
			},
		},
		engine:    &fakeEngine{result: &scoring.RatingResult{RunUpdateQuery: true}},
		publisher: &fakePublisher{},
		email:     &fakeEmail{},
		alerter:   &fakeAlerter{},
	}

	f.service = NewRatingService(
		f.submissions,
		f.solutions,
		&fakeCriterionStore{},
		&fakeQuestionStore{},
		f.engine,
		f.publisher,
		f.email,
		f.alerter,
		[]string{"ops@example.org"},
	)
	return f
}

func TestRateByID_PersistedOutcome(t *testing.T) {
	f := newRatingFixture()

	message, err := f.service.RateByID(context.Background(), f.submissions.submission.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgRatingCompleted, message)

	assert.Equal(t, 1, f.engine.calls)
	assert.Equal(t, scoring.ModeSingleRate, f.engine.lastMode)
	assert.Equal(t, 1, f.submissions.markCalls)
	assert.Equal(t, 1, f.publisher.calls)

	require.Len(t, f.email.sent, 1)
	assert.Contains(t, f.email.sent[0].subject, "completed")
	assert.Equal(t, []string{"ops@example.org"}, f.email.sent[0].recipients)
}

func TestRateByID_DeclinedOutcomeIsNotPersisted(t *testing.T) {
	f := newRatingFixture()
	f.engine.result = &scoring.RatingResult{RunUpdateQuery: false, Message: "score below threshold"}

	message, err := f.service.RateByID(context.Background(), f.submissions.submission.ID)
	require.NoError(t, err)

	// The caller gets the same acknowledgement either way.
	assert.Equal(t, MsgRatingCompleted, message)

	assert.Equal(t, 0, f.submissions.markCalls)
	assert.Equal(t, 0, f.publisher.calls)

	require.Len(t, f.email.sent, 1)
	assert.Contains(t, f.email.sent[0].subject, "failed")
}

func TestRateByID_NotCompletedFailsBeforeEngine(t *testing.T) {
	f := newRatingFixture()
	f.submissions.findErr = common.ErrNotFound

	_, err := f.service.RateByID(context.Background(), f.submissions.submission.ID)
	require.Error(t, err)

	assert.Equal(t, 0, f.engine.calls)
	assert.Equal(t, 0, f.submissions.markCalls)

	// Failure email still goes to the configured default recipients.
	require.Len(t, f.email.sent, 1)
	assert.Equal(t, []string{"ops@example.org"}, f.email.sent[0].recipients)
	assert.Contains(t, f.email.sent[0].subject, "failed")
}

func TestRateByID_UnsupportedScoringSystem(t *testing.T) {
	f := newRatingFixture()
	f.solutions.err = common.ErrNotFound

	_, err := f.service.RateByID(context.Background(), f.submissions.submission.ID)
	require.ErrorIs(t, err, common.ErrUnsupportedScoringSystem)

	assert.Equal(t, 0, f.engine.calls)
	require.Len(t, f.email.sent, 1)
}

func TestRateByID_SolutionRecipientsOverrideDefaults(t *testing.T) {
	f := newRatingFixture()
	f.solutions.solution.SendSubmissionRatingEmailsTo = "pm@example.org, qa@example.org"

	_, err := f.service.RateByID(context.Background(), f.submissions.submission.ID)
	require.NoError(t, err)

	require.Len(t, f.email.sent, 1)
	assert.Equal(t, []string{"pm@example.org", "qa@example.org"}, f.email.sent[0].recipients)
}

func TestRateByID_EngineFailureSendsFailureEmail(t *testing.T) {
	f := newRatingFixture()
	f.engine.err = common.ErrEngineFailure

	_, err := f.service.RateByID(context.Background(), f.submissions.submission.ID)
	require.ErrorIs(t, err, common.ErrEngineFailure)

	assert.Equal(t, 0, f.submissions.markCalls)
	require.Len(t, f.email.sent, 1)
	assert.Contains(t, f.email.sent[0].subject, "failed")
}

func TestRateByID_ReportingFailureOnlyAlerts(t *testing.T) {
	f := newRatingFixture()
	f.publisher.err = common.ErrConnection

	message, err := f.service.RateByID(context.Background(), f.submissions.submission.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgRatingCompleted, message)

	assert.Equal(t, 1, f.submissions.markCalls)
	require.Len(t, f.alerter.alerts, 1)

	// A reporting outage never downgrades the success email.
	require.Len(t, f.email.sent, 1)
	assert.Contains(t, f.email.sent[0].subject, "completed")
}

func TestRateByID_PersistenceFailurePropagates(t *testing.T) {
	f := newRatingFixture()
	f.submissions.markErr = common.ErrPersistenceFailure

	_, err := f.service.RateByID(context.Background(), f.submissions.submission.ID)
	require.ErrorIs(t, err, common.ErrPersistenceFailure)

	assert.Equal(t, 0, f.publisher.calls)
	require.Len(t, f.email.sent, 1)
	assert.Contains(t, f.email.sent[0].subject, "failed")
}

func TestRateByID_EnrichmentCarriesRubric(t *testing.T) {
	f := newRatingFixture()

	criterionID := primitive.NewObjectID()
	questionID := primitive.NewObjectID()

	f.solutions.solution.Themes = []solutionmodels.Theme{
		{Name: "T1", Criteria: []solutionmodels.ThemeCriterion{{CriteriaID: criterionID}}},
	}
	f.solutions.solution.FlattenedThemes = []interface{}{map[string]interface{}{"name": "T1"}}

	f.service = NewRatingService(
		f.submissions,
		f.solutions,
		&fakeCriterionStore{criteria: []questionmodels.Criterion{
			{
				ID: criterionID,
				Evidences: []questionmodels.CriterionEvidence{
					{Sections: []questionmodels.CriterionSection{{Questions: []primitive.ObjectID{questionID}}}},
				},
			},
		}},
		&fakeQuestionStore{questions: []questionmodels.Question{
			{
				ID:           questionID,
				ResponseType: questionmodels.ResponseTypeRadio,
				Options:      []questionmodels.QuestionOption{{Value: "a", Score: 2}, {Value: "b", Score: 5}},
			},
		}},
		f.engine,
		f.publisher,
		f.email,
		f.alerter,
		nil,
	)

	_, err := f.service.RateByID(context.Background(), f.submissions.submission.ID)
	require.NoError(t, err)

	require.Len(t, f.engine.lastBatch, 1)
	enriched := f.engine.lastBatch[0]

	assert.Equal(t, "observationSubmissions", enriched.SubmissionCollection)
	assert.Equal(t, solutionmodels.ScoringSystemPointsBased, enriched.ScoringSystem)
	assert.Equal(t, f.solutions.solution.FlattenedThemes, enriched.Themes)

	require.Contains(t, enriched.QuestionDocuments, questionID.Hex())
	card := enriched.QuestionDocuments[questionID.Hex()]
	assert.Equal(t, float64(5), card[scoring.CardKeyMaxScore])
}
