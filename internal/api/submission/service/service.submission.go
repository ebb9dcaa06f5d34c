// Package submissionsvc holds the observation submission services: the
// submission store, the async rating queue and the rating orchestrator.
package submissionsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "vidya_assessment/internal/api/base/service"
	submissionmodels "vidya_assessment/internal/api/submission/models"
	"vidya_assessment/internal/common"
	"vidya_assessment/internal/global"
)

// ObservationSubmissionService manages the observationSubmissions collection.
type ObservationSubmissionService struct {
	*basesvc.BaseServiceMongoImpl[submissionmodels.ObservationSubmission]
}

// NewObservationSubmissionService creates the service from the registered
// collection.
func NewObservationSubmissionService() (*ObservationSubmissionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ObservationSubmissions)
	if !exist {
		return nil, fmt.Errorf("failed to get observation_submissions collection: %v", common.ErrNotFound)
	}

	return &ObservationSubmissionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[submissionmodels.ObservationSubmission](collection),
	}, nil
}

// FindForRating loads one completed submission with only the fields the
// rating pipeline needs. A missing or not-yet-completed submission is
// ErrNotFound.
func (s *ObservationSubmissionService) FindForRating(ctx context.Context, id primitive.ObjectID) (submissionmodels.ObservationSubmission, error) {
	opts := options.FindOne().SetProjection(bson.D{
		{Key: "answers", Value: 1},
		{Key: "criteria", Value: 1},
		{Key: "evidencesStatus", Value: 1},
		{Key: "entityInformation", Value: 1},
		{Key: "entityProfile", Value: 1},
		{Key: "solutionExternalId", Value: 1},
		{Key: "programExternalId", Value: 1},
		{Key: "status", Value: 1},
	})

	return s.FindOne(ctx, bson.M{
		"_id":    id,
		"status": submissionmodels.StatusCompleted,
	}, opts)
}

// FindCompleted loads one completed submission in full, as pushed for
// reporting.
func (s *ObservationSubmissionService) FindCompleted(ctx context.Context, id primitive.ObjectID) (submissionmodels.ObservationSubmission, error) {
	return s.FindOne(ctx, bson.M{
		"_id":    id,
		"status": submissionmodels.StatusCompleted,
	}, nil)
}

// MarkRatingComplete stamps the submission completed with the rating
// completion date.
func (s *ObservationSubmissionService) MarkRatingComplete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":        submissionmodels.StatusCompleted,
			"completedDate": time.Now().UnixMilli(),
		},
	}, nil)
	if err != nil {
		return common.NewError(
			common.ErrCodeRatingPersistence,
			fmt.Sprintf("failed to persist rating outcome for submission %s: %v", id.Hex(), err),
			common.StatusInternalServerError,
			err,
		)
	}
	return nil
}
