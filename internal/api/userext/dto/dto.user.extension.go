// Package dto holds the request inputs for the user extension domain.
package dto

// RoleInput is one role assignment in a user extension input.
type RoleInput struct {
	Code     string   `json:"code" validate:"required"`
	Title    string   `json:"title,omitempty"`
	Entities []string `json:"entities,omitempty" validate:"omitempty,dive,required"`
}

// UserExtensionCreateInput is the input for creating a user extension.
type UserExtensionCreateInput struct {
	UserID     string      `json:"userId" validate:"required"`
	ExternalID string      `json:"externalId,omitempty"`
	Roles      []RoleInput `json:"roles,omitempty"`
	Status     string      `json:"status,omitempty"`
}

// UserExtensionUpdateInput is the input for updating a user extension.
type UserExtensionUpdateInput struct {
	ExternalID string      `json:"externalId,omitempty"`
	Roles      []RoleInput `json:"roles,omitempty"`
	Status     string      `json:"status,omitempty"`
}
