// Package questionmodels defines rubric criteria and questions.
package questionmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CriterionSection groups the questions of one evidence section.
type CriterionSection struct {
	Code      string               `json:"code,omitempty" bson:"code,omitempty"`
	Questions []primitive.ObjectID `json:"questions" bson:"questions"`
}

// CriterionEvidence is one evidence method of a criterion.
type CriterionEvidence struct {
	Code     string             `json:"code,omitempty" bson:"code,omitempty"`
	Sections []CriterionSection `json:"sections" bson:"sections"`
}

// Criterion is one rubric criterion: rubric levels plus the questions that
// inform its score, grouped by evidence and section.
type Criterion struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ExternalID  string             `json:"externalId" bson:"externalId" index:"single"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`

	Rubric    map[string]interface{} `json:"rubric,omitempty" bson:"rubric,omitempty"`
	Evidences []CriterionEvidence    `json:"evidences,omitempty" bson:"evidences,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
