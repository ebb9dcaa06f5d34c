package userextsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	userextmodels "vidya_assessment/internal/api/userext/models"
)

func TestApplyRoleOp_AddMergesEntities(t *testing.T) {
	existing := primitive.NewObjectID()
	incoming := primitive.NewObjectID()

	roles := []userextmodels.UserRole{
		{Code: "HM", Entities: []primitive.ObjectID{existing}},
	}

	result, err := applyRoleOp(roles, BulkRow{
		RoleCode:  "HM",
		EntityIDs: []primitive.ObjectID{existing, incoming},
	}, BulkOpAdd)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, []primitive.ObjectID{existing, incoming}, result[0].Entities)
}

func TestApplyRoleOp_AddAppendsNewRole(t *testing.T) {
	entity := primitive.NewObjectID()

	result, err := applyRoleOp(nil, BulkRow{
		RoleCode:  "CRP",
		RoleTitle: "Cluster Resource Person",
		EntityIDs: []primitive.ObjectID{entity},
	}, BulkOpAdd)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, "CRP", result[0].Code)
	assert.Equal(t, "Cluster Resource Person", result[0].Title)
	assert.Equal(t, []primitive.ObjectID{entity}, result[0].Entities)
}

func TestApplyRoleOp_OverrideReplacesEntities(t *testing.T) {
	old := primitive.NewObjectID()
	replacement := primitive.NewObjectID()

	roles := []userextmodels.UserRole{
		{Code: "HM", Entities: []primitive.ObjectID{old}},
	}

	result, err := applyRoleOp(roles, BulkRow{
		RoleCode:  "HM",
		EntityIDs: []primitive.ObjectID{replacement},
	}, BulkOpOverride)
	require.NoError(t, err)

	assert.Equal(t, []primitive.ObjectID{replacement}, result[0].Entities)
}

func TestApplyRoleOp_RemoveEntities(t *testing.T) {
	keep := primitive.NewObjectID()
	drop := primitive.NewObjectID()

	roles := []userextmodels.UserRole{
		{Code: "HM", Entities: []primitive.ObjectID{keep, drop}},
	}

	result, err := applyRoleOp(roles, BulkRow{
		RoleCode:  "HM",
		EntityIDs: []primitive.ObjectID{drop},
	}, BulkOpRemove)
	require.NoError(t, err)

	assert.Equal(t, []primitive.ObjectID{keep}, result[0].Entities)
}

func TestApplyRoleOp_RemoveWholeRole(t *testing.T) {
	roles := []userextmodels.UserRole{
		{Code: "HM", Entities: []primitive.ObjectID{primitive.NewObjectID()}},
		{Code: "CRP"},
	}

	result, err := applyRoleOp(roles, BulkRow{RoleCode: "HM"}, BulkOpRemove)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, "CRP", result[0].Code)
}

func TestApplyRoleOp_RemoveMissingRoleIsNoop(t *testing.T) {
	roles := []userextmodels.UserRole{{Code: "CRP"}}

	result, err := applyRoleOp(roles, BulkRow{RoleCode: "HM"}, BulkOpRemove)
	require.NoError(t, err)
	assert.Equal(t, roles, result)
}

func TestApplyRoleOp_UnknownOperation(t *testing.T) {
	_, err := applyRoleOp(nil, BulkRow{RoleCode: "HM", Operation: "MERGE"}, "MERGE")
	require.Error(t, err)
}
