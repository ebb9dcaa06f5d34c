// Package router registers the user extension routes.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"vidya_assessment/internal/api/middleware"
	apirouter "vidya_assessment/internal/api/router"
	userexthdl "vidya_assessment/internal/api/userext/handler"
)

// Register registers all user extension routes on v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := userexthdl.NewUserExtensionHandler()
	if err != nil {
		return fmt.Errorf("create user extension handler: %w", err)
	}

	auth := middleware.AuthMiddleware()

	users := apirouter.NewGroupWithMiddleware(v1, "/users", auth)
	users.Get("/profile", handler.HandleGetProfile)
	users.Get("/profile/:userId", handler.HandleGetProfile)
	users.Get("/entities", handler.HandleEntities)
	users.Get("/entities/:userId", handler.HandleEntities)
	users.Post("/bulk-upload", handler.HandleBulkUpload)

	// The /users group middleware already matches /users/extensions/*, so the
	// nested group carries no auth of its own.
	extensions := users.Group("/extensions")
	r.RegisterCRUDRoutes(extensions, handler, apirouter.ReadWriteConfig)

	return nil
}
