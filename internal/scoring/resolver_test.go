package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	questionmodels "vidya_assessment/internal/api/question/models"
	solutionmodels "vidya_assessment/internal/api/solution/models"
)

func TestCriteriaIDsFromThemes_EmptyTree(t *testing.T) {
	assert.Empty(t, CriteriaIDsFromThemes(nil))
	assert.Empty(t, CriteriaIDsFromThemes([]solutionmodels.Theme{}))
}

func TestCriteriaIDsFromThemes_RecursesChildren(t *testing.T) {
	leaf1 := primitive.NewObjectID()
	leaf2 := primitive.NewObjectID()
	leaf3 := primitive.NewObjectID()

	themes := []solutionmodels.Theme{
		{
			Name: "Theme A",
			Children: []solutionmodels.Theme{
				{
					Name:     "Subtheme A1",
					Criteria: []solutionmodels.ThemeCriterion{{CriteriaID: leaf1}, {CriteriaID: leaf2}},
				},
			},
		},
		{
			Name:     "Theme B",
			Criteria: []solutionmodels.ThemeCriterion{{CriteriaID: leaf3}},
		},
	}

	assert.Equal(t, []primitive.ObjectID{leaf1, leaf2, leaf3}, CriteriaIDsFromThemes(themes))
}

func TestQuestionIDsFromCriteria(t *testing.T) {
	q1 := primitive.NewObjectID()
	q2 := primitive.NewObjectID()
	q3 := primitive.NewObjectID()

	criteria := []questionmodels.Criterion{
		{
			Evidences: []questionmodels.CriterionEvidence{
				{
					Code: "OB",
					Sections: []questionmodels.CriterionSection{
						{Code: "S1", Questions: []primitive.ObjectID{q1, q2}},
					},
				},
			},
		},
		{
			Evidences: []questionmodels.CriterionEvidence{
				{
					Code: "OB",
					Sections: []questionmodels.CriterionSection{
						{Code: "S1", Questions: []primitive.ObjectID{q3}},
					},
				},
			},
		},
	}

	assert.Equal(t, []primitive.ObjectID{q1, q2, q3}, QuestionIDsFromCriteria(criteria))
}

func TestBuildQuestionScoreIndex_RadioMaxIsHighestOption(t *testing.T) {
	id := primitive.NewObjectID()
	questions := []questionmodels.Question{
		{
			ID:           id,
			ResponseType: questionmodels.ResponseTypeRadio,
			Weightage:    20,
			Options: []questionmodels.QuestionOption{
				{Value: "a", Score: 2},
				{Value: "b", Score: 5},
			},
		},
	}

	index := BuildQuestionScoreIndex(questions)
	require.Contains(t, index, id.Hex())

	card := index[id.Hex()]
	assert.Equal(t, float64(5), card[CardKeyMaxScore])
	assert.Equal(t, float64(20), card[CardKeyWeightage])
	assert.Equal(t, float64(2), card[OptionScoreKey("a")])
	assert.Equal(t, float64(5), card[OptionScoreKey("b")])
}

func TestBuildQuestionScoreIndex_MultiselectSumsAllOptions(t *testing.T) {
	id := primitive.NewObjectID()
	questions := []questionmodels.Question{
		{
			ID:           id,
			ResponseType: questionmodels.ResponseTypeMultiselect,
			Options: []questionmodels.QuestionOption{
				{Value: "x", Score: 3},
				{Value: "y", Score: 0},
				{Value: "z", Score: 4},
			},
		},
	}

	card := BuildQuestionScoreIndex(questions)[id.Hex()]

	// The sum includes zero-scored options even though they get no lookup key.
	assert.Equal(t, float64(7), card[CardKeyMaxScore])
	assert.Equal(t, float64(3), card[OptionScoreKey("x")])
	assert.Equal(t, float64(4), card[OptionScoreKey("z")])
	assert.NotContains(t, card, OptionScoreKey("y"))
}

func TestBuildQuestionScoreIndex_MultiselectNegativeScoresLowerTheSum(t *testing.T) {
	id := primitive.NewObjectID()
	questions := []questionmodels.Question{
		{
			ID:           id,
			ResponseType: questionmodels.ResponseTypeMultiselect,
			Options: []questionmodels.QuestionOption{
				{Value: "good", Score: 5},
				{Value: "bad", Score: -2},
			},
		},
	}

	card := BuildQuestionScoreIndex(questions)[id.Hex()]

	assert.Equal(t, float64(3), card[CardKeyMaxScore])
	assert.Equal(t, float64(5), card[OptionScoreKey("good")])
	assert.NotContains(t, card, OptionScoreKey("bad"))
}

func TestBuildQuestionScoreIndex_SliderUsesSliderOptions(t *testing.T) {
	id := primitive.NewObjectID()
	sliderOptions := []questionmodels.QuestionOption{
		{Value: "1", Score: 1},
		{Value: "2", Score: 6},
		{Value: "3", Score: 4},
	}
	questions := []questionmodels.Question{
		{
			ID:            id,
			ResponseType:  questionmodels.ResponseTypeSlider,
			SliderOptions: sliderOptions,
		},
	}

	card := BuildQuestionScoreIndex(questions)[id.Hex()]

	assert.Equal(t, float64(6), card[CardKeyMaxScore])
	assert.Equal(t, sliderOptions, card[CardKeySliderOptions])

	// Slider options never create per-option lookup keys.
	assert.NotContains(t, card, OptionScoreKey("2"))
}

func TestBuildQuestionScoreIndex_NoOptionsScoresZero(t *testing.T) {
	id := primitive.NewObjectID()
	questions := []questionmodels.Question{
		{ID: id, ResponseType: questionmodels.ResponseTypeRadio},
	}

	card := BuildQuestionScoreIndex(questions)[id.Hex()]
	assert.Equal(t, float64(0), card[CardKeyMaxScore])
}

func TestBuildQuestionScoreIndex_EmptyInput(t *testing.T) {
	assert.Empty(t, BuildQuestionScoreIndex(nil))
}
