package solutionmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MapScope carries the rollout scope of a program/solution pairing. The
// solution and program sides are kept separately so either one can match a
// user during targeting.
type MapScope struct {
	Solutions *Scope `json:"solutions,omitempty" bson:"solutions,omitempty"`
	Programs  *Scope `json:"programs,omitempty" bson:"programs,omitempty"`
}

// ProgramSolutionMap links a solution to a program with its own targeting
// scope, so a solution can be rolled out differently per program. Solution
// type and reusability are denormalized here to keep targeting queries on a
// single collection.
type ProgramSolutionMap struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProgramID  primitive.ObjectID `json:"programId" bson:"programId" index:"compound:program_solution_map_unique"`
	SolutionID primitive.ObjectID `json:"solutionId" bson:"solutionId" index:"compound:program_solution_map_unique"`

	SolutionType    string `json:"solutionType,omitempty" bson:"solutionType,omitempty"`
	SolutionSubType string `json:"solutionSubType,omitempty" bson:"solutionSubType,omitempty"`
	IsReusable      bool   `json:"isReusable" bson:"isReusable"`

	Scope *MapScope `json:"scope,omitempty" bson:"scope,omitempty"`

	Status    string `json:"status" bson:"status"`
	IsDeleted bool   `json:"isDeleted" bson:"isDeleted"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
