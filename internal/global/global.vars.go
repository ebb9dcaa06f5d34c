package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"vidya_assessment/config"
	"vidya_assessment/internal/registry"
)

// CollectionName holds the MongoDB collection names used by the service.
type CollectionName struct {
	ObservationSubmissions string // Completed observation submissions
	Solutions              string // Observation solutions (rubric definitions)
	Programs               string // Programs grouping solutions
	ProgramSolutionMap     string // Program to solution targeting map
	Criteria               string // Rubric criteria
	Questions              string // Rubric questions
	Entities               string // Observed entities (schools, clusters, ...)
	UserExtensions         string // Platform user role/entity mappings
	SubmissionRatingQueue  string // Pending async rating tasks
}

// Global singletons, initialized in cmd/server/init.go.
var Validate *validator.Validate           // Request/DTO validator
var MongoDB_Session *mongo.Client          // MongoDB client session
var ServerConfig *config.Configuration     // Parsed server configuration
var MongoDB_ColNames = *new(CollectionName) // Collection names

// Registries
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Named collection handles
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Named database handles
