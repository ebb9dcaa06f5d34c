// Package handler exposes the solution domain over HTTP: CRUD for
// solutions and programs plus the user targeting queries.
package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "vidya_assessment/internal/api/base/handler"
	"vidya_assessment/internal/api/solution/dto"
	solutionmodels "vidya_assessment/internal/api/solution/models"
	solutionsvc "vidya_assessment/internal/api/solution/service"
	"vidya_assessment/internal/common"
	"vidya_assessment/internal/utility"
)

// SolutionHandler serves solution CRUD and the targeting queries.
type SolutionHandler struct {
	*basehdl.BaseHandler[solutionmodels.Solution, dto.SolutionCreateInput, dto.SolutionUpdateInput]

	solutionService *solutionsvc.SolutionService
	mapService      *solutionsvc.ProgramSolutionMapService
}

// NewSolutionHandler wires the solution handler and the services behind it.
func NewSolutionHandler() (*SolutionHandler, error) {
	solutionService, err := solutionsvc.NewSolutionService()
	if err != nil {
		return nil, fmt.Errorf("create solution service: %w", err)
	}

	programService, err := solutionsvc.NewProgramService()
	if err != nil {
		return nil, fmt.Errorf("create program service: %w", err)
	}

	mapService, err := solutionsvc.NewProgramSolutionMapService(solutionService, programService)
	if err != nil {
		return nil, fmt.Errorf("create program solution map service: %w", err)
	}

	return &SolutionHandler{
		BaseHandler:     basehdl.NewBaseHandler[solutionmodels.Solution, dto.SolutionCreateInput, dto.SolutionUpdateInput](solutionService),
		solutionService: solutionService,
		mapService:      mapService,
	}, nil
}

// HandleList serves the paginated solution listing with searchText.
func (h *SolutionHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := basehdl.ParsePagination(c)
		searchText := c.Query("search")
		solutionType := c.Query("type")

		data, err := h.solutionService.Search(c.Context(), searchText, solutionType, page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleTargetedSolutions lists the solutions targeted at the caller's role
// and entities.
func (h *SolutionHandler) HandleTargetedSolutions(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input, entityIDs, err := h.parseTargetedRequest(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := basehdl.ParsePagination(c)
		extraFilter := bson.M(input.FilteredData)

		data, err := h.mapService.TargetedSolutions(
			c.Context(),
			input.Role, entityIDs,
			c.Query("type"), c.Query("subType"), c.Query("search"),
			extraFilter,
			page, limit,
		)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleTargetedPrograms lists the programs targeted at the caller's role
// and entities.
func (h *SolutionHandler) HandleTargetedPrograms(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input, entityIDs, err := h.parseTargetedRequest(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := basehdl.ParsePagination(c)

		data, err := h.mapService.TargetedPrograms(c.Context(), input.Role, entityIDs, c.Query("search"), page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleTargetedSolutionsByProgram lists the caller's targeted solutions
// inside one program.
func (h *SolutionHandler) HandleTargetedSolutionsByProgram(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		programID, err := objectIDParam(c, "programId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input, entityIDs, err := h.parseTargetedRequest(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := basehdl.ParsePagination(c)

		data, err := h.mapService.TargetedSolutionsByProgram(c.Context(), input.Role, entityIDs, programID, c.Query("search"), page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleProgramSolutionDetails serves the program + solution pair details,
// gated by the caller's targeting.
func (h *SolutionHandler) HandleProgramSolutionDetails(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		programID, err := objectIDParam(c, "programId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		solutionID, err := objectIDParam(c, "solutionId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input, entityIDs, err := h.parseTargetedRequest(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.mapService.FindProgramSolutionDetails(c.Context(), programID, solutionID, input.Role, entityIDs)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// parseTargetedRequest parses and validates the targeting body and converts
// the entity ids.
func (h *SolutionHandler) parseTargetedRequest(c fiber.Ctx) (*dto.TargetedRequest, []primitive.ObjectID, error) {
	var input dto.TargetedRequest
	if err := h.ParseRequestBody(c, &input); err != nil {
		return nil, nil, err
	}
	if err := h.ValidateInput(&input); err != nil {
		return nil, nil, err
	}

	for _, id := range input.Entities {
		if !primitive.IsValidObjectID(id) {
			return nil, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("entity id '%s' is not a valid ObjectID", id),
				common.StatusBadRequest,
				nil,
			)
		}
	}

	return &input, utility.StringArray2ObjectIDArray(input.Entities), nil
}

func objectIDParam(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	raw := c.Params(name)
	if !primitive.IsValidObjectID(raw) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("%s '%s' is not a valid ObjectID", name, raw),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(raw), nil
}
