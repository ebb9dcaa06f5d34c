package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "vidya_assessment/internal/api/base/handler"
	"vidya_assessment/internal/api/solution/dto"
	solutionmodels "vidya_assessment/internal/api/solution/models"
	solutionsvc "vidya_assessment/internal/api/solution/service"
)

// ProgramHandler serves program CRUD and listing.
type ProgramHandler struct {
	*basehdl.BaseHandler[solutionmodels.Program, dto.ProgramCreateInput, dto.ProgramUpdateInput]

	programService *solutionsvc.ProgramService
}

// NewProgramHandler wires the program handler.
func NewProgramHandler() (*ProgramHandler, error) {
	programService, err := solutionsvc.NewProgramService()
	if err != nil {
		return nil, fmt.Errorf("create program service: %w", err)
	}

	return &ProgramHandler{
		BaseHandler:    basehdl.NewBaseHandler[solutionmodels.Program, dto.ProgramCreateInput, dto.ProgramUpdateInput](programService),
		programService: programService,
	}, nil
}

// HandleList serves the paginated program listing with searchText.
func (h *ProgramHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := basehdl.ParsePagination(c)

		data, err := h.programService.Search(c.Context(), c.Query("search"), page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}
