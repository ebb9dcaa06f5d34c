package solutionsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	solutionmodels "vidya_assessment/internal/api/solution/models"
)

func TestBuildTargetedScopeFilter(t *testing.T) {
	district := primitive.NewObjectID()
	school := primitive.NewObjectID()

	filter := BuildTargetedScopeFilter("HM", []primitive.ObjectID{district, school})

	branches, ok := filter["$or"].([]bson.M)
	require.True(t, ok, "filter must match either scope side")
	require.Len(t, branches, 2)

	solutionSide := branches[0]
	assert.Equal(t, bson.M{"$in": []string{"HM", solutionmodels.RoleAll}}, solutionSide["scope.solutions.roles.code"])
	assert.Equal(t, bson.M{"$in": []primitive.ObjectID{district, school}}, solutionSide["scope.solutions.entities"])

	programSide := branches[1]
	assert.Equal(t, bson.M{"$in": []string{"HM", solutionmodels.RoleAll}}, programSide["scope.programs.roles.code"])
	assert.Equal(t, bson.M{"$in": []primitive.ObjectID{district, school}}, programSide["scope.programs.entities"])
}

func TestSearchFilter_Defaults(t *testing.T) {
	filter := SearchFilter("", "")

	assert.Equal(t, false, filter["isDeleted"])
	assert.Equal(t, solutionmodels.StatusActive, filter["status"])
	assert.NotContains(t, filter, "type")
	assert.NotContains(t, filter, "$or")
}

func TestSearchFilter_WithSearchTextAndType(t *testing.T) {
	filter := SearchFilter("water", solutionmodels.TypeObservation)

	assert.Equal(t, solutionmodels.TypeObservation, filter["type"])

	clauses, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, clauses, 3)

	regex, ok := clauses[0]["name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "water", regex.Pattern)
	assert.Equal(t, "i", regex.Options)
}
