package utility

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ToMap converts a struct to a map through BSON marshalling, so bson tags
// and omitempty behave exactly as they do when writing to MongoDB.
func ToMap(data interface{}) (map[string]interface{}, error) {
	raw, err := bson.Marshal(data)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	if err := bson.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return result, nil
}
