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

// QuestionService manages the questions collection.
type QuestionService struct {
	*basesvc.BaseServiceMongoImpl[questionmodels.Question]
}

// NewQuestionService creates the service from the registered collection.
func NewQuestionService() (*QuestionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Questions)
	if !exist {
		return nil, fmt.Errorf("failed to get questions collection: %v", common.ErrNotFound)
	}

	return &QuestionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[questionmodels.Question](collection),
	}, nil
}

// FindScorableByIDs loads the named questions that have a scorable response
// type (radio, multiselect, slider), projected down to the scoring fields.
func (s *QuestionService) FindScorableByIDs(ctx context.Context, ids []primitive.ObjectID) ([]questionmodels.Question, error) {
	opts := options.Find().SetProjection(bson.D{
		{Key: "weightage", Value: 1},
		{Key: "options", Value: 1},
		{Key: "sliderOptions", Value: 1},
		{Key: "responseType", Value: 1},
	})

	return s.Find(ctx, bson.M{
		"_id": bson.M{"$in": ids},
		"responseType": bson.M{"$in": []string{
			questionmodels.ResponseTypeRadio,
			questionmodels.ResponseTypeMultiselect,
			questionmodels.ResponseTypeSlider,
		}},
	}, opts)
}
