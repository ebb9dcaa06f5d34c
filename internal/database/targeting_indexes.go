// Package database - additional indexes for targeting queries (nested fields,
// compound) that cannot be declared through model tags.
package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidya_assessment/internal/global"
)

// CreateTargetingIndexes creates the indexes backing targeted solution and
// program lookups. Called after CreateIndexes for each collection.
func CreateTargetingIndexes(ctx context.Context, db *mongo.Database) error {
	// programSolutionMap: scope role + entities on both sides of the $or in
	// the targeting filter
	maps := db.Collection(global.MongoDB_ColNames.ProgramSolutionMap)
	if _, err := maps.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "scope.solutions.roles.code", Value: 1},
			{Key: "scope.solutions.entities", Value: 1},
		},
		Options: options.Index().SetName("map_solution_scope_role_entities"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := maps.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "scope.programs.roles.code", Value: 1},
			{Key: "scope.programs.entities", Value: 1},
		},
		Options: options.Index().SetName("map_program_scope_role_entities"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// solutions: (externalId, scoringSystem) for the rating lookup
	solutions := db.Collection(global.MongoDB_ColNames.Solutions)
	if _, err := solutions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "externalId", Value: 1},
			{Key: "scoringSystem", Value: 1},
		},
		Options: options.Index().SetName("solution_external_scoring"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// observationSubmissions: (status, solutionExternalId) for the rating gate
	submissions := db.Collection(global.MongoDB_ColNames.ObservationSubmissions)
	if _, err := submissions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "solutionExternalId", Value: 1},
		},
		Options: options.Index().SetName("submission_status_solution"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// submissionRatingQueue: (processedAt, createdAt) for worker poll order
	queue := db.Collection(global.MongoDB_ColNames.SubmissionRatingQueue)
	if _, err := queue.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "processedAt", Value: 1},
			{Key: "createdAt", Value: 1},
		},
		Options: options.Index().SetName("rating_queue_poll"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}
