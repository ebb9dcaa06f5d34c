// Package router registers the solution domain routes: CRUD for solutions
// and programs plus the targeting endpoints.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"vidya_assessment/internal/api/middleware"
	apirouter "vidya_assessment/internal/api/router"
	solutionhdl "vidya_assessment/internal/api/solution/handler"
)

// Register registers all solution and program routes on v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	solutionHandler, err := solutionhdl.NewSolutionHandler()
	if err != nil {
		return fmt.Errorf("create solution handler: %w", err)
	}

	programHandler, err := solutionhdl.NewProgramHandler()
	if err != nil {
		return fmt.Errorf("create program handler: %w", err)
	}

	auth := middleware.AuthMiddleware()

	solutions := apirouter.NewGroupWithMiddleware(v1, "/solutions", auth)
	solutions.Get("/list", solutionHandler.HandleList)
	solutions.Post("/targeted", solutionHandler.HandleTargetedSolutions)
	solutions.Post("/targeted-by-program/:programId", solutionHandler.HandleTargetedSolutionsByProgram)
	r.RegisterCRUDRoutes(solutions, solutionHandler, apirouter.ReadWriteConfig)

	programs := apirouter.NewGroupWithMiddleware(v1, "/programs", auth)
	programs.Get("/list", programHandler.HandleList)
	programs.Post("/targeted", solutionHandler.HandleTargetedPrograms)
	programs.Post("/:programId/solutions/:solutionId/details", solutionHandler.HandleProgramSolutionDetails)
	r.RegisterCRUDRoutes(programs, programHandler, apirouter.ReadWriteConfig)

	return nil
}
