// Package entitysvc implements the entity hierarchy lookups backing user
// profiles and entity listings.
package entitysvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "vidya_assessment/internal/api/base/models"
	basesvc "vidya_assessment/internal/api/base/service"
	entitymodels "vidya_assessment/internal/api/entity/models"
	"vidya_assessment/internal/common"
	"vidya_assessment/internal/global"
)

// EntityService manages the entities collection.
type EntityService struct {
	*basesvc.BaseServiceMongoImpl[entitymodels.Entity]
}

// NewEntityService creates the service from the registered collection.
func NewEntityService() (*EntityService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Entities)
	if !exist {
		return nil, fmt.Errorf("failed to get entities collection: %v", common.ErrNotFound)
	}

	return &EntityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[entitymodels.Entity](collection),
	}, nil
}

// profileProjection trims entities to the fields shown on a profile.
var profileProjection = bson.D{
	{Key: "entityType", Value: 1},
	{Key: "entityTypeId", Value: 1},
	{Key: "metaInformation.externalId", Value: 1},
	{Key: "metaInformation.name", Value: 1},
}

// FindForProfile loads the named entities projected to profile fields.
func (s *EntityService) FindForProfile(ctx context.Context, ids []primitive.ObjectID) ([]entitymodels.Entity, error) {
	opts := options.Find().SetProjection(profileProjection)
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
}

// ExpandGroups resolves the descendant entity ids of the given type for a
// set of entities, falling back to the entity itself when it already is of
// that type.
func (s *EntityService) ExpandGroups(ctx context.Context, ids []primitive.ObjectID, entityType string) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.D{
		{Key: "entityType", Value: 1},
		{Key: "groups." + entityType, Value: 1},
	})

	entities, err := s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}

	seen := map[primitive.ObjectID]struct{}{}
	expanded := []primitive.ObjectID{}
	add := func(id primitive.ObjectID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			expanded = append(expanded, id)
		}
	}

	for _, entity := range entities {
		if entity.EntityType == entityType {
			add(entity.ID)
			continue
		}
		for _, member := range entity.Groups[entityType] {
			add(member)
		}
	}

	return expanded, nil
}

// SearchByIds lists the named entities with a regex searchText over the
// meta information name and external id, paginated.
func (s *EntityService) SearchByIds(ctx context.Context, ids []primitive.ObjectID, searchText string, page, limit int64) (*basemodels.PaginateResult[entitymodels.Entity], error) {
	filter := bson.M{"_id": bson.M{"$in": ids}}
	if searchText != "" {
		regex := primitive.Regex{Pattern: searchText, Options: "i"}
		filter["$or"] = []bson.M{
			{"metaInformation.name": regex},
			{"metaInformation.externalId": regex},
		}
	}

	opts := options.Find().SetProjection(profileProjection)

	return s.FindWithPagination(ctx, filter, page, limit, opts)
}
