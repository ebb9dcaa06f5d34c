// Package userextsvc implements user extension profiles, accessible entity
// resolution and the bulk role mapping upload.
package userextsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basemodels "vidya_assessment/internal/api/base/models"
	basesvc "vidya_assessment/internal/api/base/service"
	entitymodels "vidya_assessment/internal/api/entity/models"
	entitysvc "vidya_assessment/internal/api/entity/service"
	userextmodels "vidya_assessment/internal/api/userext/models"
	"vidya_assessment/internal/common"
	"vidya_assessment/internal/global"
	"vidya_assessment/internal/utility"
)

// Bulk upload operations.
const (
	BulkOpAdd      = "ADD"
	BulkOpOverride = "OVERRIDE"
	BulkOpRemove   = "REMOVE"
)

// UserExtensionService manages user extensions and their entity views.
type UserExtensionService struct {
	*basesvc.BaseServiceMongoImpl[userextmodels.UserExtension]

	entityService *entitysvc.EntityService
}

// NewUserExtensionService creates the service from the registered collection
// and the entity service used to resolve role entities.
func NewUserExtensionService(entityService *entitysvc.EntityService) (*UserExtensionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.UserExtensions)
	if !exist {
		return nil, fmt.Errorf("failed to get user_extensions collection: %v", common.ErrNotFound)
	}

	return &UserExtensionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[userextmodels.UserExtension](collection),
		entityService:        entityService,
	}, nil
}

// FindByUserID loads one live user extension by the identity provider id.
func (s *UserExtensionService) FindByUserID(ctx context.Context, userID string) (userextmodels.UserExtension, error) {
	return s.FindOne(ctx, bson.M{
		"userId":    userID,
		"isDeleted": false,
	}, nil)
}

// ProfileRole is one role on a profile with its entities resolved to
// documents.
type ProfileRole struct {
	Code     string                `json:"code"`
	Title    string                `json:"title,omitempty"`
	Entities []entitymodels.Entity `json:"entities"`
}

// Profile is the user extension with role entities resolved.
type Profile struct {
	UserID     string        `json:"userId"`
	ExternalID string        `json:"externalId,omitempty"`
	Status     string        `json:"status"`
	Roles      []ProfileRole `json:"roles"`
}

// GetProfile resolves the user's profile: each role's entity ids are
// expanded into entity documents.
func (s *UserExtensionService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	extension, err := s.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		UserID:     extension.UserID,
		ExternalID: extension.ExternalID,
		Status:     extension.Status,
		Roles:      []ProfileRole{},
	}

	for _, role := range extension.Roles {
		profileRole := ProfileRole{
			Code:     role.Code,
			Title:    role.Title,
			Entities: []entitymodels.Entity{},
		}
		if len(role.Entities) > 0 {
			entities, err := s.entityService.FindForProfile(ctx, role.Entities)
			if err != nil {
				return nil, err
			}
			profileRole.Entities = entities
		}
		profile.Roles = append(profile.Roles, profileRole)
	}

	return profile, nil
}

// AccessibleEntities lists the entities the user can observe. When
// entityType is set, role entities of other types are expanded through
// their groups.<entityType> membership; otherwise the role entities are
// listed as-is. searchText filters on meta information name/externalId.
func (s *UserExtensionService) AccessibleEntities(ctx context.Context, userID, entityType, searchText string, page, limit int64) (*basemodels.PaginateResult[entitymodels.Entity], error) {
	extension, err := s.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := map[primitive.ObjectID]struct{}{}
	roleEntityIDs := []primitive.ObjectID{}
	for _, role := range extension.Roles {
		for _, id := range role.Entities {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				roleEntityIDs = append(roleEntityIDs, id)
			}
		}
	}

	ids := roleEntityIDs
	if entityType != "" {
		ids, err = s.entityService.ExpandGroups(ctx, roleEntityIDs, entityType)
		if err != nil {
			return nil, err
		}
	}

	return s.entityService.SearchByIds(ctx, ids, searchText, page, limit)
}

// BulkRow is one parsed row of a bulk role mapping upload.
type BulkRow struct {
	UserID    string
	RoleCode  string
	RoleTitle string
	EntityIDs []primitive.ObjectID
	Operation string
}

// ApplyRoleMapping applies one bulk row to the user's extension,
// creating the extension when it does not exist yet.
func (s *UserExtensionService) ApplyRoleMapping(ctx context.Context, row BulkRow, updatedBy string) error {
	op := strings.ToUpper(strings.TrimSpace(row.Operation))
	if op == "" {
		op = BulkOpAdd
	}

	extension, err := s.FindByUserID(ctx, row.UserID)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrNotFound):
		if op == BulkOpRemove {
			return common.ErrNotFound
		}
		extension = userextmodels.UserExtension{
			UserID:    row.UserID,
			Status:    "active",
			CreatedBy: updatedBy,
		}
	default:
		return err
	}

	roles, err := applyRoleOp(extension.Roles, row, op)
	if err != nil {
		return err
	}

	_, err = s.Upsert(ctx, bson.M{"userId": row.UserID}, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"roles":     roles,
			"status":    extension.Status,
			"isDeleted": false,
			"updatedBy": updatedBy,
		},
		SetOnInsert: map[string]interface{}{
			"userId":    row.UserID,
			"createdBy": updatedBy,
		},
	})
	return err
}

func applyRoleOp(roles []userextmodels.UserRole, row BulkRow, op string) ([]userextmodels.UserRole, error) {
	idx := -1
	for i, role := range roles {
		if role.Code == row.RoleCode {
			idx = i
			break
		}
	}

	switch op {
	case BulkOpAdd:
		if idx < 0 {
			return append(roles, userextmodels.UserRole{
				Code:     row.RoleCode,
				Title:    row.RoleTitle,
				Entities: row.EntityIDs,
			}), nil
		}
		merged := roles[idx].Entities
		for _, id := range row.EntityIDs {
			if !utility.Contains(merged, id) {
				merged = append(merged, id)
			}
		}
		roles[idx].Entities = merged
		return roles, nil

	case BulkOpOverride:
		if idx < 0 {
			return append(roles, userextmodels.UserRole{
				Code:     row.RoleCode,
				Title:    row.RoleTitle,
				Entities: row.EntityIDs,
			}), nil
		}
		roles[idx].Entities = row.EntityIDs
		if row.RoleTitle != "" {
			roles[idx].Title = row.RoleTitle
		}
		return roles, nil

	case BulkOpRemove:
		if idx < 0 {
			return roles, nil
		}
		if len(row.EntityIDs) == 0 {
			return append(roles[:idx], roles[idx+1:]...), nil
		}
		kept := roles[idx].Entities[:0]
		for _, existing := range roles[idx].Entities {
			if !utility.Contains(row.EntityIDs, existing) {
				kept = append(kept, existing)
			}
		}
		roles[idx].Entities = kept
		return roles, nil

	default:
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("unknown bulk operation %q", row.Operation),
			common.StatusBadRequest,
			nil,
		)
	}
}
