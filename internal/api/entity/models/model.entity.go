// Package entitymodels defines observed entities (schools, clusters, ...).
package entitymodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entity is one node of the entity hierarchy. MetaInformation carries the
// searchable attributes (externalId, name, address). Groups maps a child
// entity type to the ids of descendants of that type.
type Entity struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EntityType   string             `json:"entityType" bson:"entityType" index:"single"`
	EntityTypeID primitive.ObjectID `json:"entityTypeId,omitempty" bson:"entityTypeId,omitempty"`

	MetaInformation map[string]interface{}          `json:"metaInformation,omitempty" bson:"metaInformation,omitempty"`
	Groups          map[string][]primitive.ObjectID `json:"groups,omitempty" bson:"groups,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
