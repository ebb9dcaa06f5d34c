package main

import (
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"vidya_assessment/config"
	"vidya_assessment/internal/global"
)

// InitRegistry registers every collection handle the services resolve at
// construction time.
func InitRegistry() {
	if err := initCollections(global.MongoDB_Session, global.ServerConfig); err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

func initCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)

	global.RegistryDatabase.Register(cfg.MongoDB_DBName, db)

	colNames := []string{
		global.MongoDB_ColNames.ObservationSubmissions,
		global.MongoDB_ColNames.Solutions,
		global.MongoDB_ColNames.Programs,
		global.MongoDB_ColNames.ProgramSolutionMap,
		global.MongoDB_ColNames.Criteria,
		global.MongoDB_ColNames.Questions,
		global.MongoDB_ColNames.Entities,
		global.MongoDB_ColNames.UserExtensions,
		global.MongoDB_ColNames.SubmissionRatingQueue,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}
		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Warnf("Collection %s already registered", name)
		}
	}

	return nil
}
