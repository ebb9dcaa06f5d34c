// Package scoring resolves a solution's rubric into the per-question score
// index the rating engine consumes, and wraps the engine call itself.
package scoring

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	questionmodels "vidya_assessment/internal/api/question/models"
	solutionmodels "vidya_assessment/internal/api/solution/models"
)

// QuestionScoreCard is the engine-facing score lookup for one question.
// Fixed keys are _id, weightage and maxScore; slider questions also carry
// sliderOptions. Every positively scored option contributes a
// "<value>-score" key with its score.
type QuestionScoreCard map[string]interface{}

// Fixed QuestionScoreCard keys.
const (
	CardKeyID            = "_id"
	CardKeyWeightage     = "weightage"
	CardKeyMaxScore      = "maxScore"
	CardKeySliderOptions = "sliderOptions"
)

// OptionScoreKey returns the score-card key for one option value.
func OptionScoreKey(value string) string {
	return value + "-score"
}

// CriteriaIDsFromThemes walks the theme tree and collects the criterion ids
// of every leaf theme. A theme either has children (recurse) or criteria
// (collect); an empty tree yields an empty slice.
func CriteriaIDsFromThemes(themes []solutionmodels.Theme) []primitive.ObjectID {
	ids := []primitive.ObjectID{}
	for _, theme := range themes {
		if len(theme.Children) > 0 {
			ids = append(ids, CriteriaIDsFromThemes(theme.Children)...)
			continue
		}
		for _, criterion := range theme.Criteria {
			ids = append(ids, criterion.CriteriaID)
		}
	}
	return ids
}

// QuestionIDsFromCriteria collects every question id referenced by the
// criteria, walking evidences and their sections.
func QuestionIDsFromCriteria(criteria []questionmodels.Criterion) []primitive.ObjectID {
	ids := []primitive.ObjectID{}
	for _, criterion := range criteria {
		for _, evidence := range criterion.Evidences {
			for _, section := range evidence.Sections {
				ids = append(ids, section.Questions...)
			}
		}
	}
	return ids
}

// BuildQuestionScoreIndex builds the score card for each question, keyed by
// the question's hex id.
//
// maxScore rules:
//   - multiselect: sum of ALL option scores, including zero and negative
//   - slider: highest sliderOption score
//   - anything else: highest option score; no options at all scores 0
//
// Option "<value>-score" entries are only written for scores greater than
// zero, and only from options (never sliderOptions).
func BuildQuestionScoreIndex(questions []questionmodels.Question) map[string]QuestionScoreCard {
	index := make(map[string]QuestionScoreCard, len(questions))

	for _, question := range questions {
		card := QuestionScoreCard{
			CardKeyID:        question.ID,
			CardKeyWeightage: question.Weightage,
		}

		var maxScore float64

		if len(question.Options) > 0 {
			if question.ResponseType != questionmodels.ResponseTypeMultiselect {
				maxScore = maxOptionScore(question.Options)
			}
			for _, option := range question.Options {
				if question.ResponseType == questionmodels.ResponseTypeMultiselect {
					maxScore += option.Score
				}
				if option.Score > 0 {
					card[OptionScoreKey(option.Value)] = option.Score
				}
			}
		}

		if len(question.SliderOptions) > 0 {
			maxScore = maxOptionScore(question.SliderOptions)
			card[CardKeySliderOptions] = question.SliderOptions
		}

		card[CardKeyMaxScore] = maxScore
		index[question.ID.Hex()] = card
	}

	return index
}

func maxOptionScore(options []questionmodels.QuestionOption) float64 {
	max := options[0].Score
	for _, option := range options[1:] {
		if option.Score > max {
			max = option.Score
		}
	}
	return max
}
