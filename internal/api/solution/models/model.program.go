package solutionmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Program groups solutions rolled out together.
type Program struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ExternalID  string             `json:"externalId" bson:"externalId" index:"unique"`
	Name        string             `json:"name" bson:"name" index:"text"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`

	// Solution ids that belong to this program.
	Components []primitive.ObjectID `json:"components,omitempty" bson:"components,omitempty"`

	Scope *Scope `json:"scope,omitempty" bson:"scope,omitempty"`

	Status    string `json:"status" bson:"status" index:"single"`
	IsDeleted bool   `json:"isDeleted" bson:"isDeleted"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
