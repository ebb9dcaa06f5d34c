package database

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes creates collection indexes declared through `index` struct
// tags on the model. Supported tag values, semicolon separated:
//
//	single        ascending single-field index
//	unique        unique single-field index (combine with sparse)
//	sparse        make the index sparse
//	text          text index
//	ttl:<secs>    TTL index
//	compound:<g>  member of compound index group <g>
//	desc          descending order for single/compound
//
// Existing indexes with the same name are kept.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	existing, err := listIndexNames(ctx, collection)
	if err != nil {
		return err
	}

	compoundGroups := map[string]bson.D{}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}

		bsonField := bsonFieldName(field)
		if bsonField == "" || bsonField == "-" {
			continue
		}

		cfg := parseIndexTag(tag)
		order := 1
		if _, desc := cfg["desc"]; desc {
			order = -1
		}

		if _, ok := cfg["single"]; ok {
			name := bsonField + "_single"
			opts := options.Index().SetName(name)
			if err := ensureIndex(ctx, collection, existing, name, bson.D{{Key: bsonField, Value: order}}, opts); err != nil {
				return err
			}
		}

		if _, ok := cfg["unique"]; ok {
			name := bsonField + "_unique"
			opts := options.Index().SetName(name).SetUnique(true)
			if _, sparse := cfg["sparse"]; sparse {
				opts = opts.SetSparse(true)
			}
			if err := ensureIndex(ctx, collection, existing, name, bson.D{{Key: bsonField, Value: 1}}, opts); err != nil {
				return err
			}
		}

		if _, ok := cfg["text"]; ok {
			name := bsonField + "_text"
			opts := options.Index().SetName(name)
			if err := ensureIndex(ctx, collection, existing, name, bson.D{{Key: bsonField, Value: "text"}}, opts); err != nil {
				return err
			}
		}

		if ttlStr, ok := cfg["ttl"]; ok {
			ttl, err := strconv.Atoi(ttlStr)
			if err != nil {
				return fmt.Errorf("invalid ttl value on field %s: %w", field.Name, err)
			}
			name := bsonField + "_ttl"
			opts := options.Index().SetName(name).SetExpireAfterSeconds(int32(ttl))
			if err := ensureIndex(ctx, collection, existing, name, bson.D{{Key: bsonField, Value: 1}}, opts); err != nil {
				return err
			}
		}

		if group, ok := cfg["compound"]; ok {
			compoundGroups[group] = append(compoundGroups[group], bson.E{Key: bsonField, Value: order})
		}
	}

	for group, keys := range compoundGroups {
		opts := options.Index().SetName(group)
		if strings.Contains(group, "_unique") {
			opts = opts.SetUnique(true)
		}
		if err := ensureIndex(ctx, collection, existing, group, keys, opts); err != nil {
			return err
		}
	}

	return nil
}

func listIndexNames(ctx context.Context, collection *mongo.Collection) (map[string]bool, error) {
	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot list indexes for %s: %w", collection.Name(), err)
	}
	defer cursor.Close(ctx)

	names := map[string]bool{}
	for cursor.Next(ctx) {
		var info bson.M
		if err := cursor.Decode(&info); err != nil {
			return nil, fmt.Errorf("cannot decode index info: %w", err)
		}
		if name, ok := info["name"].(string); ok {
			names[name] = true
		}
	}
	return names, nil
}

func ensureIndex(
	ctx context.Context,
	collection *mongo.Collection,
	existing map[string]bool,
	name string,
	keys bson.D,
	opts *options.IndexOptions,
) error {
	if existing[name] {
		return nil
	}
	if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts}); err != nil {
		if isIndexExistsError(err) {
			return nil
		}
		return fmt.Errorf("cannot create index %s on %s: %w", name, collection.Name(), err)
	}
	return nil
}

// parseIndexTag splits "unique;sparse;ttl:3600" into a lookup map.
func parseIndexTag(tag string) map[string]string {
	cfg := map[string]string{}
	for _, part := range strings.Split(tag, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if k, v, found := strings.Cut(part, ":"); found {
			cfg[k] = v
		} else {
			cfg[part] = ""
		}
	}
	return cfg
}

func bsonFieldName(field reflect.StructField) string {
	bsonTag := field.Tag.Get("bson")
	if bsonTag == "" {
		return ""
	}
	name, _, _ := strings.Cut(bsonTag, ",")
	return name
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
