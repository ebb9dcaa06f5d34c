// Package userextmodels defines the platform user extension: per-user role
// and entity mappings layered on top of the identity provider's account.
package userextmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole assigns one platform role with the entities it applies to.
type UserRole struct {
	RoleID       primitive.ObjectID   `json:"roleId,omitempty" bson:"roleId,omitempty"`
	Code         string               `json:"code" bson:"code"`
	Title        string               `json:"title,omitempty" bson:"title,omitempty"`
	EntityTypeID primitive.ObjectID   `json:"entityTypeId,omitempty" bson:"entityTypeId,omitempty"`
	Entities     []primitive.ObjectID `json:"entities,omitempty" bson:"entities,omitempty"`
}

// UserExtension holds the per-user platform data keyed by the identity
// provider's user id.
type UserExtension struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     string             `json:"userId" bson:"userId" index:"unique"`
	ExternalID string             `json:"externalId,omitempty" bson:"externalId,omitempty"`

	Roles []UserRole `json:"roles,omitempty" bson:"roles,omitempty"`

	Status    string `json:"status" bson:"status"`
	IsDeleted bool   `json:"isDeleted" bson:"isDeleted"`

	CreatedBy string `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	UpdatedBy string `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
