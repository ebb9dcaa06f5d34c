// Package submissionmodels defines observation submissions and the async
// rating queue.
package submissionmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission statuses.
const (
	StatusStarted       = "started"
	StatusInProgress    = "inprogress"
	StatusCompleted     = "completed"
	StatusRatingPending = "ratingPending"
)

// SubmissionCriterion is a criterion copy carried on the submission; the
// rating engine fills in score and level.
type SubmissionCriterion struct {
	CriteriaID primitive.ObjectID     `json:"criteriaId" bson:"criteriaId"`
	Name       string                 `json:"name,omitempty" bson:"name,omitempty"`
	Score      interface{}            `json:"score,omitempty" bson:"score,omitempty"`
	Rubric     map[string]interface{} `json:"rubric,omitempty" bson:"rubric,omitempty"`
}

// ObservationSubmission is one observer's submission against an entity.
type ObservationSubmission struct {
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	Answers         map[string]interface{} `json:"answers,omitempty" bson:"answers,omitempty"`
	Criteria        []SubmissionCriterion  `json:"criteria,omitempty" bson:"criteria,omitempty"`
	EvidencesStatus []interface{}          `json:"evidencesStatus,omitempty" bson:"evidencesStatus,omitempty"`

	EntityID          primitive.ObjectID     `json:"entityId,omitempty" bson:"entityId,omitempty" index:"single"`
	EntityExternalID  string                 `json:"entityExternalId,omitempty" bson:"entityExternalId,omitempty"`
	EntityInformation map[string]interface{} `json:"entityInformation,omitempty" bson:"entityInformation,omitempty"`
	EntityProfile     map[string]interface{} `json:"entityProfile,omitempty" bson:"entityProfile,omitempty"`

	SolutionID         primitive.ObjectID `json:"solutionId,omitempty" bson:"solutionId,omitempty" index:"single"`
	SolutionExternalID string             `json:"solutionExternalId,omitempty" bson:"solutionExternalId,omitempty"`
	ProgramID          primitive.ObjectID `json:"programId,omitempty" bson:"programId,omitempty"`
	ProgramExternalID  string             `json:"programExternalId,omitempty" bson:"programExternalId,omitempty"`

	ObservationID primitive.ObjectID `json:"observationId,omitempty" bson:"observationId,omitempty"`
	CreatedBy     string             `json:"createdBy,omitempty" bson:"createdBy,omitempty" index:"single"`

	Status        string `json:"status" bson:"status" index:"single"`
	CompletedDate int64  `json:"completedDate,omitempty" bson:"completedDate,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
