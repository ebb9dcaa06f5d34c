package utility

import (
	"encoding/json"
)

// ConvertStruct copies source into target through a JSON round trip,
// matching fields by json tag. Used to map DTOs onto models.
func ConvertStruct(source interface{}, target interface{}) (interface{}, error) {
	jsonData, err := json.Marshal(source)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(jsonData, target); err != nil {
		return nil, err
	}

	return target, nil
}
