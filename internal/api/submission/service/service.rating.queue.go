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

// RatingQueueService manages the async rating task queue.
type RatingQueueService struct {
	*basesvc.BaseServiceMongoImpl[submissionmodels.RatingQueueEntry]
}

// NewRatingQueueService creates the service from the registered collection.
func NewRatingQueueService() (*RatingQueueService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.SubmissionRatingQueue)
	if !exist {
		return nil, fmt.Errorf("failed to get submission_rating_queue collection: %v", common.ErrNotFound)
	}

	return &RatingQueueService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[submissionmodels.RatingQueueEntry](collection),
	}, nil
}

// Enqueue adds a submission to the rating queue. An already queued,
// unprocessed submission is not queued twice.
func (s *RatingQueueService) Enqueue(ctx context.Context, submissionID primitive.ObjectID) (submissionmodels.RatingQueueEntry, error) {
	return s.Upsert(ctx, bson.M{
		"submissionId": submissionID,
		"processedAt":  bson.M{"$in": []interface{}{nil, int64(0)}},
	}, &basesvc.UpdateData{
		SetOnInsert: map[string]interface{}{
			"submissionId": submissionID,
			"attempts":     0,
			"processedAt":  int64(0),
		},
	})
}

// NextBatch returns up to limit unprocessed entries in creation order.
func (s *RatingQueueService) NextBatch(ctx context.Context, limit int) ([]submissionmodels.RatingQueueEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(int64(limit))

	return s.Find(ctx, bson.M{
		"processedAt": bson.M{"$in": []interface{}{nil, int64(0)}},
	}, opts)
}

// MarkProcessed stamps an entry processed.
func (s *RatingQueueService) MarkProcessed(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"processedAt": time.Now().UnixMilli()},
	}, nil)
	return err
}

// RecordFailure increments the attempt counter and stores the error text,
// leaving the entry queued for the next poll.
func (s *RatingQueueService) RecordFailure(ctx context.Context, id primitive.ObjectID, cause error) error {
	_, err := s.Collection().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"attempts": 1},
		"$set": bson.M{
			"lastError": cause.Error(),
			"updatedAt": time.Now().UnixMilli(),
		},
	})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}
