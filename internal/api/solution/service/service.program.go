package solutionsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "vidya_assessment/internal/api/base/models"
	basesvc "vidya_assessment/internal/api/base/service"
	solutionmodels "vidya_assessment/internal/api/solution/models"
	"vidya_assessment/internal/common"
	"vidya_assessment/internal/global"
)

// ProgramService manages the programs collection.
type ProgramService struct {
	*basesvc.BaseServiceMongoImpl[solutionmodels.Program]
}

// NewProgramService creates the service from the registered collection.
func NewProgramService() (*ProgramService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Programs)
	if !exist {
		return nil, fmt.Errorf("failed to get programs collection: %v", common.ErrNotFound)
	}

	return &ProgramService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[solutionmodels.Program](collection),
	}, nil
}

// FindActiveById loads one active, not deleted program.
func (s *ProgramService) FindActiveById(ctx context.Context, id primitive.ObjectID) (solutionmodels.Program, error) {
	return s.FindOne(ctx, bson.M{
		"_id":       id,
		"isDeleted": false,
		"status":    solutionmodels.StatusActive,
	}, nil)
}

// Search lists active programs matching searchText with pagination.
func (s *ProgramService) Search(ctx context.Context, searchText string, page, limit int64) (*basemodels.PaginateResult[solutionmodels.Program], error) {
	filter := bson.M{
		"isDeleted": false,
		"status":    solutionmodels.StatusActive,
	}
	if searchText != "" {
		regex := primitive.Regex{Pattern: searchText, Options: "i"}
		filter["$or"] = []bson.M{
			{"name": regex},
			{"description": regex},
			{"externalId": regex},
		}
	}

	opts := options.Find().
		SetProjection(bson.D{
			{Key: "name", Value: 1},
			{Key: "externalId", Value: 1},
			{Key: "description", Value: 1},
		}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// SearchByIds lists active programs restricted to a fixed id set.
func (s *ProgramService) SearchByIds(ctx context.Context, ids []primitive.ObjectID, searchText string, page, limit int64) (*basemodels.PaginateResult[solutionmodels.Program], error) {
	filter := bson.M{
		"_id":       bson.M{"$in": ids},
		"isDeleted": false,
		"status":    solutionmodels.StatusActive,
	}
	if searchText != "" {
		regex := primitive.Regex{Pattern: searchText, Options: "i"}
		filter["$or"] = []bson.M{
			{"name": regex},
			{"externalId": regex},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	return s.FindWithPagination(ctx, filter, page, limit, opts)
}
