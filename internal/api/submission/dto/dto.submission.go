// Package dto holds the request inputs for the submission domain.
package dto

// SubmissionCreateInput is the input for creating an observation submission.
type SubmissionCreateInput struct {
	EntityID         string                 `json:"entityId,omitempty"`
	EntityExternalID string                 `json:"entityExternalId,omitempty"`
	SolutionID       string                 `json:"solutionId,omitempty"`
	SolutionExternal string                 `json:"solutionExternalId" validate:"required"`
	ProgramExternal  string                 `json:"programExternalId,omitempty"`
	Answers          map[string]interface{} `json:"answers,omitempty"`
	Status           string                 `json:"status,omitempty"`
	CreatedBy        string                 `json:"createdBy,omitempty"`
}

// SubmissionUpdateInput is the input for updating an observation submission.
type SubmissionUpdateInput struct {
	Answers map[string]interface{} `json:"answers,omitempty"`
	Status  string                 `json:"status,omitempty"`
}
