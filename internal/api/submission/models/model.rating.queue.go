package submissionmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RatingQueueEntry is one pending async rating task. The worker polls
// entries with a zero processedAt in creation order.
type RatingQueueEntry struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SubmissionID primitive.ObjectID `json:"submissionId" bson:"submissionId" index:"single"`

	Attempts    int    `json:"attempts" bson:"attempts"`
	LastError   string `json:"lastError,omitempty" bson:"lastError,omitempty"`
	ProcessedAt int64  `json:"processedAt,omitempty" bson:"processedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
