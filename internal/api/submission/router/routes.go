// Package router registers the submission domain routes: rating, reporting
// push, queueing and read CRUD.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"vidya_assessment/internal/api/middleware"
	apirouter "vidya_assessment/internal/api/router"
	submissionhdl "vidya_assessment/internal/api/submission/handler"
)

// Register registers all submission routes on v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	submissionHandler, err := submissionhdl.NewSubmissionHandler()
	if err != nil {
		return fmt.Errorf("create submission handler: %w", err)
	}

	auth := middleware.AuthMiddleware()

	submissions := apirouter.NewGroupWithMiddleware(v1, "/submissions", auth)
	submissions.Post("/rate/:submissionId", submissionHandler.HandleRate)
	submissions.Post("/push-completed/:submissionId", submissionHandler.HandlePushCompleted)
	submissions.Post("/push-to-queue/:submissionId", submissionHandler.HandlePushToQueue)

	r.RegisterCRUDRoutes(submissions, submissionHandler, apirouter.ReadOnlyConfig)

	return nil
}
