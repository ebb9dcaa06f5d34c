package main

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"vidya_assessment/config"
	entitymodels "vidya_assessment/internal/api/entity/models"
	questionmodels "vidya_assessment/internal/api/question/models"
	solutionmodels "vidya_assessment/internal/api/solution/models"
	submissionmodels "vidya_assessment/internal/api/submission/models"
	userextmodels "vidya_assessment/internal/api/userext/models"
	"vidya_assessment/internal/database"
	"vidya_assessment/internal/global"
)

// InitGlobal initializes the global singletons in dependency order.
func InitGlobal() {
	initColNames()
	initValidator()
	initConfig()
	initDatabaseMongoDB()
}

func initColNames() {
	global.MongoDB_ColNames.ObservationSubmissions = "observationSubmissions"
	global.MongoDB_ColNames.Solutions = "solutions"
	global.MongoDB_ColNames.Programs = "programs"
	global.MongoDB_ColNames.ProgramSolutionMap = "programsSolutionsMap"
	global.MongoDB_ColNames.Criteria = "criteria"
	global.MongoDB_ColNames.Questions = "questions"
	global.MongoDB_ColNames.Entities = "entities"
	global.MongoDB_ColNames.UserExtensions = "userExtensions"
	global.MongoDB_ColNames.SubmissionRatingQueue = "submissionRatingQueue"

	logrus.Info("Initialized collection names")
}

func initValidator() {
	global.Validate = validator.New()
	logrus.Info("Initialized validator")
}

func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

func initDatabaseMongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)

	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ObservationSubmissions), submissionmodels.ObservationSubmission{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.SubmissionRatingQueue), submissionmodels.RatingQueueEntry{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Solutions), solutionmodels.Solution{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Programs), solutionmodels.Program{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ProgramSolutionMap), solutionmodels.ProgramSolutionMap{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Criteria), questionmodels.Criterion{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Questions), questionmodels.Question{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Entities), entitymodels.Entity{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.UserExtensions), userextmodels.UserExtension{})

	if err := database.CreateTargetingIndexes(context.TODO(), db); err != nil {
		logrus.Errorf("Failed to create targeting indexes: %v", err)
	}
	logrus.Info("Ensured collection indexes")
}
