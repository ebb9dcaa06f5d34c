package utility

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// String2ObjectID converts a hex string to an ObjectID, NilObjectID on failure.
func String2ObjectID(id string) primitive.ObjectID {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objectId
}

// StringArray2ObjectIDArray converts a slice of hex strings to ObjectIDs.
// Invalid entries become NilObjectID.
func StringArray2ObjectIDArray(ids []string) []primitive.ObjectID {
	var objectIDs []primitive.ObjectID
	for _, id := range ids {
		objectIDs = append(objectIDs, String2ObjectID(id))
	}
	return objectIDs
}
