package questionmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Response types relevant to scoring.
const (
	ResponseTypeRadio       = "radio"
	ResponseTypeMultiselect = "multiselect"
	ResponseTypeSlider      = "slider"
)

// QuestionOption is one selectable answer with its score contribution.
type QuestionOption struct {
	Value string  `json:"value" bson:"value"`
	Label string  `json:"label,omitempty" bson:"label,omitempty"`
	Score float64 `json:"score" bson:"score"`
}

// Question is one rubric question.
type Question struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ExternalID string             `json:"externalId" bson:"externalId" index:"single"`
	Question   []string           `json:"question,omitempty" bson:"question,omitempty"`

	ResponseType  string           `json:"responseType" bson:"responseType"`
	Weightage     float64          `json:"weightage" bson:"weightage"`
	Options       []QuestionOption `json:"options,omitempty" bson:"options,omitempty"`
	SliderOptions []QuestionOption `json:"sliderOptions,omitempty" bson:"sliderOptions,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
