// Package solutionsvc implements solution and program services, including
// the role/entity targeting queries.
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

// SolutionService manages the solutions collection.
type SolutionService struct {
	*basesvc.BaseServiceMongoImpl[solutionmodels.Solution]
}

// NewSolutionService creates the service from the registered collection.
func NewSolutionService() (*SolutionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Solutions)
	if !exist {
		return nil, fmt.Errorf("failed to get solutions collection: %v", common.ErrNotFound)
	}

	return &SolutionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[solutionmodels.Solution](collection),
	}, nil
}

// ratingProjection limits the rating lookup to the scoring configuration.
var ratingProjection = bson.D{
	{Key: "themes", Value: 1},
	{Key: "levelToScoreMapping", Value: 1},
	{Key: "scoringSystem", Value: 1},
	{Key: "flattenedThemes", Value: 1},
	{Key: "sendSubmissionRatingEmailsTo", Value: 1},
}

// FindForRating loads the points based observation solution behind a
// submission, projected to the fields the scoring resolver consumes.
func (s *SolutionService) FindForRating(ctx context.Context, externalID string) (solutionmodels.Solution, error) {
	filter := bson.M{
		"externalId":    externalID,
		"type":          solutionmodels.TypeObservation,
		"scoringSystem": solutionmodels.ScoringSystemPointsBased,
	}

	return s.FindOne(ctx, filter, options.FindOne().SetProjection(ratingProjection))
}

// SearchFilter builds the listing filter: active, not deleted, optional type
// and a case insensitive searchText over name, description and externalId.
func SearchFilter(searchText, solutionType string) bson.M {
	filter := bson.M{
		"isDeleted": false,
		"status":    solutionmodels.StatusActive,
	}
	if solutionType != "" {
		filter["type"] = solutionType
	}
	if searchText != "" {
		regex := primitive.Regex{Pattern: searchText, Options: "i"}
		filter["$or"] = []bson.M{
			{"name": regex},
			{"description": regex},
			{"externalId": regex},
		}
	}
	return filter
}

// listProjection trims listings down to the summary fields.
var listProjection = bson.D{
	{Key: "name", Value: 1},
	{Key: "externalId", Value: 1},
	{Key: "description", Value: 1},
	{Key: "type", Value: 1},
	{Key: "programId", Value: 1},
	{Key: "programName", Value: 1},
}

// Search lists active solutions matching searchText with pagination.
func (s *SolutionService) Search(ctx context.Context, searchText, solutionType string, page, limit int64) (*basemodels.PaginateResult[solutionmodels.Solution], error) {
	opts := options.Find().
		SetProjection(listProjection).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	return s.FindWithPagination(ctx, SearchFilter(searchText, solutionType), page, limit, opts)
}

// SearchByIds lists active solutions restricted to a fixed id set, used by
// the targeting queries after the scope match resolved candidate ids.
func (s *SolutionService) SearchByIds(ctx context.Context, ids []primitive.ObjectID, searchText string, extraFilter bson.M, page, limit int64) (*basemodels.PaginateResult[solutionmodels.Solution], error) {
	filter := SearchFilter(searchText, "")
	filter["_id"] = bson.M{"$in": ids}
	for key, value := range extraFilter {
		if existing, ok := filter[key]; ok {
			if existingMap, ok1 := existing.(bson.M); ok1 {
				if valueMap, ok2 := value.(bson.M); ok2 {
					for k, v := range valueMap {
						existingMap[k] = v
					}
					continue
				}
			}
		}
		filter[key] = value
	}

	opts := options.Find().
		SetProjection(listProjection).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	return s.FindWithPagination(ctx, filter, page, limit, opts)
}
