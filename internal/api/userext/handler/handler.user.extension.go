// Package handler exposes user extension profiles, accessible entities and
// the bulk role mapping upload.
package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "vidya_assessment/internal/api/base/handler"
	entitysvc "vidya_assessment/internal/api/entity/service"
	"vidya_assessment/internal/api/userext/dto"
	userextmodels "vidya_assessment/internal/api/userext/models"
	userextsvc "vidya_assessment/internal/api/userext/service"
	"vidya_assessment/internal/common"
	"vidya_assessment/internal/logger"
	"vidya_assessment/internal/utility"
)

// bulkUploadHeader is the expected CSV column layout; the response appends
// a status column.
var bulkUploadHeader = []string{"userId", "role", "roleTitle", "entities", "operation"}

// UserExtensionHandler serves the user extension endpoints.
type UserExtensionHandler struct {
	*basehdl.BaseHandler[userextmodels.UserExtension, dto.UserExtensionCreateInput, dto.UserExtensionUpdateInput]

	service *userextsvc.UserExtensionService
}

// NewUserExtensionHandler wires the handler and its services.
func NewUserExtensionHandler() (*UserExtensionHandler, error) {
	entityService, err := entitysvc.NewEntityService()
	if err != nil {
		return nil, fmt.Errorf("create entity service: %w", err)
	}

	service, err := userextsvc.NewUserExtensionService(entityService)
	if err != nil {
		return nil, fmt.Errorf("create user extension service: %w", err)
	}

	return &UserExtensionHandler{
		BaseHandler: basehdl.NewBaseHandler[userextmodels.UserExtension, dto.UserExtensionCreateInput, dto.UserExtensionUpdateInput](service),
		service:     service,
	}, nil
}

// HandleGetProfile serves the profile of the userId parameter, defaulting
// to the authenticated user.
func (h *UserExtensionHandler) HandleGetProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID := basehdl.UserIDFromContext(c)
		if userID == "" {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		profile, err := h.service.GetProfile(c.Context(), userID)
		h.HandleResponse(c, profile, err)
		return nil
	})
}

// HandleEntities lists the entities accessible to the user, optionally
// expanded to a child entity type and filtered by search text.
func (h *UserExtensionHandler) HandleEntities(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID := basehdl.UserIDFromContext(c)
		if userID == "" {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		page, limit := basehdl.ParsePagination(c)

		data, err := h.service.AccessibleEntities(c.Context(), userID, c.Query("entityType"), c.Query("search"), page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleBulkUpload applies a CSV of user role mappings row by row and
// echoes the CSV back with a per-row status column.
func (h *UserExtensionHandler) HandleBulkUpload(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		log := logger.GetAuditLogger()

		fileHeader, err := c.FormFile("file")
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"multipart field 'file' is required",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		file, err := fileHeader.Open()
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("cannot open uploaded file: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		defer file.Close()

		updatedBy := basehdl.UserIDFromContext(c)

		var out bytes.Buffer
		writer := csv.NewWriter(&out)
		writer.Write(append(append([]string{}, bulkUploadHeader...), "status"))

		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1

		header, err := reader.Read()
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("cannot read CSV header: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		columns := columnIndex(header)

		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				writer.Write(append(record, fmt.Sprintf("FAILED: %v", err)))
				continue
			}

			row, parseErr := parseBulkRow(record, columns)
			if parseErr != nil {
				writer.Write(append(record, "FAILED: "+parseErr.Error()))
				continue
			}

			if applyErr := h.service.ApplyRoleMapping(c.Context(), row, updatedBy); applyErr != nil {
				log.WithError(applyErr).WithField("userId", row.UserID).Warn("Bulk role mapping row failed")
				writer.Write(append(record, "FAILED: "+applyErr.Error()))
				continue
			}

			writer.Write(append(record, "SUCCESS"))
		}

		writer.Flush()

		log.WithField("file", fileHeader.Filename).Info("Bulk role mapping upload processed")

		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="bulk-upload-result.csv"`)
		return c.Send(out.Bytes())
	})
}

// columnIndex maps known header names to their positions.
func columnIndex(header []string) map[string]int {
	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	return index
}

func parseBulkRow(record []string, columns map[string]int) (userextsvc.BulkRow, error) {
	get := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := userextsvc.BulkRow{
		UserID:    get("userId"),
		RoleCode:  get("role"),
		RoleTitle: get("roleTitle"),
		Operation: get("operation"),
	}

	if row.UserID == "" {
		return row, fmt.Errorf("userId is required")
	}
	if row.RoleCode == "" {
		return row, fmt.Errorf("role is required")
	}

	if raw := get("entities"); raw != "" {
		ids := []primitive.ObjectID{}
		for _, part := range strings.Split(raw, ";") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if !primitive.IsValidObjectID(part) {
				return row, fmt.Errorf("entity id %q is not a valid ObjectID", part)
			}
			ids = append(ids, utility.String2ObjectID(part))
		}
		row.EntityIDs = ids
	}

	return row, nil
}
