// Package basehdl provides the generic Fiber handler every domain handler
// embeds: request parsing, filter validation, Mongo option handling and the
// standard CRUD endpoints.
package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "vidya_assessment/internal/api/base/service"
	"vidya_assessment/internal/common"
	"vidya_assessment/internal/global"
)

// FilterOptions restricts what client-supplied filters may contain.
type FilterOptions struct {
	DeniedFields     []string // Fields that must never be filtered on
	AllowedOperators []string // Permitted Mongo operators
	MaxFields        int      // Max top-level fields per filter
}

// BaseHandler provides CRUD endpoints over a BaseServiceMongo.
//
// Type parameters:
//   - T: model type
//   - CreateInput: create DTO
//   - UpdateInput: update DTO
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService   basesvc.BaseServiceMongo[T]
	filterOptions FilterOptions
}

// NewBaseHandler creates a BaseHandler with the default filter policy.
func NewBaseHandler[T any, CreateInput any, UpdateInput any](baseService basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: baseService,
		filterOptions: FilterOptions{
			DeniedFields: []string{
				"password",
				"token",
				"secret",
				"key",
				"hash",
			},
			AllowedOperators: []string{
				"$eq",
				"$gt",
				"$gte",
				"$lt",
				"$lte",
				"$in",
				"$nin",
				"$exists",
				"$regex",
				"$options",
				"$or",
				"$and",
				"$elemMatch",
			},
			MaxFields: 10,
		},
	}
}

// ParseRequestBody parses the JSON request body into input.
// Uses a json.Decoder with UseNumber so large numbers survive intact.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return common.NewError(common.ErrCodeValidationFormat, "Request body is empty", common.StatusBadRequest, nil)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err)
	}
	return nil
}

// ValidateInput validates input against its validate struct tags.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// ProcessFilter parses the filter query parameter (JSON) and validates it
// against the handler's filter policy.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (map[string]interface{}, error) {
	filterStr := c.Query("filter", "{}")

	var filter map[string]interface{}
	if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter must be valid JSON. Got: %s", filterStr),
			common.StatusBadRequest,
			err,
		)
	}

	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}
	return filter, nil
}

func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilter(filter map[string]interface{}) error {
	if len(filter) > h.filterOptions.MaxFields {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Filter exceeds the maximum of %d fields", h.filterOptions.MaxFields),
			common.StatusBadRequest,
			nil,
		)
	}

	for field, value := range filter {
		for _, denied := range h.filterOptions.DeniedFields {
			if strings.EqualFold(field, denied) {
				return common.NewError(
					common.ErrCodeValidationInput,
					fmt.Sprintf("Filtering on field %s is not allowed", field),
					common.StatusBadRequest,
					nil,
				)
			}
		}

		if strings.HasPrefix(field, "$") && !h.operatorAllowed(field) {
			return common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Operator %s is not allowed", field),
				common.StatusBadRequest,
				nil,
			)
		}

		if nested, ok := value.(map[string]interface{}); ok {
			for op := range nested {
				if strings.HasPrefix(op, "$") && !h.operatorAllowed(op) {
					return common.NewError(
						common.ErrCodeValidationInput,
						fmt.Sprintf("Operator %s is not allowed", op),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}
	return nil
}

func (h *BaseHandler[T, CreateInput, UpdateInput]) operatorAllowed(op string) bool {
	for _, allowed := range h.filterOptions.AllowedOperators {
		if op == allowed {
			return true
		}
	}
	return false
}

// processMongoOptions parses the options query parameter (JSON) into driver
// find options. Supported keys: projection, sort, and for multi-document
// finds limit and skip.
func (h *BaseHandler[T, CreateInput, UpdateInput]) processMongoOptions(c fiber.Ctx, isFindOne bool) (interface{}, error) {
	optionsStr := c.Query("options", "{}")

	var rawOptions map[string]interface{}
	if err := json.Unmarshal([]byte(optionsStr), &rawOptions); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Options must be valid JSON. Got: %s", optionsStr),
			common.StatusBadRequest,
			err,
		)
	}

	if isFindOne {
		opts := mongoopts.FindOne()
		if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
			opts.SetProjection(toBsonD(projection))
		}
		if sort, ok := rawOptions["sort"].(map[string]interface{}); ok {
			opts.SetSort(toBsonD(sort))
		}
		return opts, nil
	}

	opts := mongoopts.Find()
	if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
		opts.SetProjection(toBsonD(projection))
	}
	if sort, ok := rawOptions["sort"].(map[string]interface{}); ok {
		opts.SetSort(toBsonD(sort))
	}
	if limit, ok := rawOptions["limit"].(float64); ok {
		opts.SetLimit(int64(limit))
	}
	if skip, ok := rawOptions["skip"].(float64); ok {
		opts.SetSkip(int64(skip))
	}
	return opts, nil
}

func toBsonD(m map[string]interface{}) bson.D {
	d := bson.D{}
	for k, v := range m {
		d = append(d, bson.E{Key: k, Value: v})
	}
	return d
}

// ParsePagination reads page and limit query parameters with safe defaults.
func ParsePagination(c fiber.Ctx) (page, limit int64) {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 10
	}
	return page, limit
}

// UserIDFromContext returns the authenticated user id set by the auth
// middleware, or the userId route parameter when present.
func UserIDFromContext(c fiber.Ctx) string {
	if paramID := c.Params("userId"); paramID != "" {
		return paramID
	}
	if userID, ok := c.Locals("user_id").(string); ok {
		return userID
	}
	return ""
}
