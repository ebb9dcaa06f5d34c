package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseBulkRow(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	columns := columnIndex([]string{"userId", "role", "roleTitle", "entities", "operation"})
	record := []string{"user-1", "HM", "Head Master", a.Hex() + ";" + b.Hex(), "OVERRIDE"}

	row, err := parseBulkRow(record, columns)
	require.NoError(t, err)

	assert.Equal(t, "user-1", row.UserID)
	assert.Equal(t, "HM", row.RoleCode)
	assert.Equal(t, "Head Master", row.RoleTitle)
	assert.Equal(t, "OVERRIDE", row.Operation)
	assert.Equal(t, []primitive.ObjectID{a, b}, row.EntityIDs)
}

func TestParseBulkRow_ColumnsMayBeReordered(t *testing.T) {
	columns := columnIndex([]string{"role", "userId"})

	row, err := parseBulkRow([]string{"HM", "user-2"}, columns)
	require.NoError(t, err)
	assert.Equal(t, "user-2", row.UserID)
	assert.Equal(t, "HM", row.RoleCode)
}

func TestParseBulkRow_RequiresUserAndRole(t *testing.T) {
	columns := columnIndex([]string{"userId", "role"})

	_, err := parseBulkRow([]string{"", "HM"}, columns)
	assert.Error(t, err)

	_, err = parseBulkRow([]string{"user-1", ""}, columns)
	assert.Error(t, err)
}

func TestParseBulkRow_RejectsBadEntityID(t *testing.T) {
	columns := columnIndex([]string{"userId", "role", "entities"})

	_, err := parseBulkRow([]string{"user-1", "HM", "not-an-id"}, columns)
	assert.Error(t, err)
}
