// Package dto holds the request inputs for the solution domain.
package dto

// SolutionCreateInput is the input for creating a solution.
type SolutionCreateInput struct {
	ExternalID  string `json:"externalId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	SubType     string `json:"subType,omitempty"`
	IsReusable  bool   `json:"isReusable,omitempty"`

	ScoringSystem       string                 `json:"scoringSystem,omitempty"`
	Themes              []interface{}          `json:"themes,omitempty"`
	FlattenedThemes     []interface{}          `json:"flattenedThemes,omitempty"`
	LevelToScoreMapping map[string]interface{} `json:"levelToScoreMapping,omitempty"`

	SendSubmissionRatingEmailsTo string `json:"sendSubmissionRatingEmailsTo,omitempty"`

	ProgramID         string `json:"programId,omitempty"`
	ProgramExternalID string `json:"programExternalId,omitempty"`
	ProgramName       string `json:"programName,omitempty"`

	EntityType string                 `json:"entityType,omitempty"`
	Scope      map[string]interface{} `json:"scope,omitempty"`

	Status string `json:"status,omitempty"`
}

// SolutionUpdateInput is the input for updating a solution.
type SolutionUpdateInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	SubType     string `json:"subType,omitempty"`
	IsReusable  *bool  `json:"isReusable,omitempty"`

	ScoringSystem       string                 `json:"scoringSystem,omitempty"`
	Themes              []interface{}          `json:"themes,omitempty"`
	FlattenedThemes     []interface{}          `json:"flattenedThemes,omitempty"`
	LevelToScoreMapping map[string]interface{} `json:"levelToScoreMapping,omitempty"`

	SendSubmissionRatingEmailsTo string `json:"sendSubmissionRatingEmailsTo,omitempty"`

	Scope  map[string]interface{} `json:"scope,omitempty"`
	Status string                 `json:"status,omitempty"`
}

// ProgramCreateInput is the input for creating a program.
type ProgramCreateInput struct {
	ExternalID  string                 `json:"externalId" validate:"required"`
	Name        string                 `json:"name" validate:"required"`
	Description string                 `json:"description,omitempty"`
	Components  []string               `json:"components,omitempty"`
	Scope       map[string]interface{} `json:"scope,omitempty"`
	Status      string                 `json:"status,omitempty"`
}

// ProgramUpdateInput is the input for updating a program.
type ProgramUpdateInput struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Components  []string               `json:"components,omitempty"`
	Scope       map[string]interface{} `json:"scope,omitempty"`
	Status      string                 `json:"status,omitempty"`
}

// TargetedRequest carries the caller's role and entity context for the
// targeting queries.
type TargetedRequest struct {
	Role         string                 `json:"role" validate:"required"`
	Entities     []string               `json:"entities" validate:"required,min=1,dive,required"`
	FilteredData map[string]interface{} `json:"filteredData,omitempty"`
}
