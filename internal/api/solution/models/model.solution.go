// Package solutionmodels defines solutions, programs and the program to
// solution targeting map.
package solutionmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scoring systems a solution may declare. Only points based scoring is
// resolvable by the rating pipeline.
const (
	ScoringSystemPointsBased = "pointsBasedScoring"
)

// Lifecycle status values for solutions and programs.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// TypeObservation is the solution type served by the rating pipeline.
const TypeObservation = "observation"

// RoleAll in a scope matches every user role.
const RoleAll = "all"

// ScopeRole names a user role a solution or program is targeted at.
// Code "all" matches every role.
type ScopeRole struct {
	Code string `json:"code" bson:"code"`
}

// Scope restricts who a solution or program is rolled out to.
type Scope struct {
	EntityType   string               `json:"entityType" bson:"entityType"`
	EntityTypeID primitive.ObjectID   `json:"entityTypeId,omitempty" bson:"entityTypeId,omitempty"`
	Entities     []primitive.ObjectID `json:"entities" bson:"entities"`
	Roles        []ScopeRole          `json:"roles" bson:"roles"`
}

// ThemeCriterion references one criterion from a rubric theme.
type ThemeCriterion struct {
	CriteriaID primitive.ObjectID `json:"criteriaId" bson:"criteriaId"`
	Weightage  float64            `json:"weightage,omitempty" bson:"weightage,omitempty"`
}

// Theme is one node of the rubric theme tree. A theme either has Children
// (intermediate node) or Criteria (leaf node).
type Theme struct {
	Name      string           `json:"name" bson:"name"`
	Type      string           `json:"type,omitempty" bson:"type,omitempty"`
	Weightage float64          `json:"weightage,omitempty" bson:"weightage,omitempty"`
	Children  []Theme          `json:"children,omitempty" bson:"children,omitempty"`
	Criteria  []ThemeCriterion `json:"criteria,omitempty" bson:"criteria,omitempty"`
}

// LevelScore maps a rubric level to its points and label.
type LevelScore struct {
	Points int    `json:"points" bson:"points"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
}

// Solution is an observation solution: the rubric definition plus rollout
// scope and rating configuration.
type Solution struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ExternalID  string             `json:"externalId" bson:"externalId" index:"unique"`
	Name        string             `json:"name" bson:"name" index:"text"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Type        string             `json:"type,omitempty" bson:"type,omitempty"`
	SubType     string             `json:"subType,omitempty" bson:"subType,omitempty"`
	IsReusable  bool               `json:"isReusable" bson:"isReusable" index:"single"`

	ScoringSystem       string                `json:"scoringSystem,omitempty" bson:"scoringSystem,omitempty"`
	Themes              []Theme               `json:"themes,omitempty" bson:"themes,omitempty"`
	FlattenedThemes     []interface{}         `json:"flattenedThemes,omitempty" bson:"flattenedThemes,omitempty"`
	LevelToScoreMapping map[string]LevelScore `json:"levelToScoreMapping,omitempty" bson:"levelToScoreMapping,omitempty"`

	// Overrides the configured default recipients for rating outcome emails.
	SendSubmissionRatingEmailsTo string `json:"sendSubmissionRatingEmailsTo,omitempty" bson:"sendSubmissionRatingEmailsTo,omitempty"`

	ProgramID         primitive.ObjectID `json:"programId,omitempty" bson:"programId,omitempty" index:"single"`
	ProgramExternalID string             `json:"programExternalId,omitempty" bson:"programExternalId,omitempty"`
	ProgramName       string             `json:"programName,omitempty" bson:"programName,omitempty"`

	EntityType string `json:"entityType,omitempty" bson:"entityType,omitempty"`
	Scope      *Scope `json:"scope,omitempty" bson:"scope,omitempty"`

	Status    string `json:"status" bson:"status" index:"single"`
	IsDeleted bool   `json:"isDeleted" bson:"isDeleted"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
