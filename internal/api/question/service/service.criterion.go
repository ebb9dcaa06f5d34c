// Package questionsvc holds the rubric criterion and question services.
package questionsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "vidya_assessment/internal/api/base/service"
	questionmodels "vidya_assessment/internal/api/question/models"
	"vidya_assessment/internal/common"
	"vidya_assessment/internal/global"
)

// CriterionService manages the criteria collection.
type CriterionService struct {
	*basesvc.BaseServiceMongoImpl[questionmodels.Criterion]
}

// NewCriterionService creates the service from the registered collection.
func NewCriterionService() (*CriterionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Criteria)
	if !exist {
		return nil, fmt.Errorf("failed to get criteria collection: %v", common.ErrNotFound)
	}

	return &CriterionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[questionmodels.Criterion](collection),
	}, nil
}

// FindEvidencesByIDs loads the named criteria with only their evidences,
// which is all the rating pipeline reads.
func (s *CriterionService) FindEvidencesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]questionmodels.Criterion, error) {
	opts := options.Find().SetProjection(bson.D{
		{Key: "evidences", Value: 1},
	})
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
}
