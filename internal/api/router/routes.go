// Package router wires domain handlers onto the Fiber app.
//
// Middleware registration note: in Fiber v3, middleware passed directly in a
// route call (router.Get(path, middleware, handler)) is not invoked. Middleware
// must be applied via group.Use(); each prefix gets exactly one group so its
// middleware runs once per request.
package router

import (
	"github.com/gofiber/fiber/v3"
)

// CRUDHandler is the handler surface required for generic CRUD registration.
type CRUDHandler interface {
	InsertOne(c fiber.Ctx) error
	InsertMany(c fiber.Ctx) error

	Find(c fiber.Ctx) error
	FindOne(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindManyByIds(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error

	UpdateById(c fiber.Ctx) error
	DeleteById(c fiber.Ctx) error

	CountDocuments(c fiber.Ctx) error
	Distinct(c fiber.Ctx) error
	DocumentExists(c fiber.Ctx) error
}

// Router manages API routing.
type Router struct {
	app *fiber.App
}

// CRUDConfig selects which CRUD operations a collection exposes.
type CRUDConfig struct {
	InsOne  bool
	InsMany bool

	Find     bool
	FindOne  bool
	FindById bool
	FindIds  bool
	Paginate bool

	UpdById bool
	DelById bool

	Count    bool
	Distinct bool
	Exists   bool
}

var (
	// ReadOnlyConfig exposes only read operations.
	ReadOnlyConfig = CRUDConfig{
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		Count: true, Distinct: true, Exists: true,
	}

	// ReadWriteConfig exposes the full CRUD surface.
	ReadWriteConfig = CRUDConfig{
		InsOne: true, InsMany: true,
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdById: true, DelById: true,
		Count: true, Distinct: true, Exists: true,
	}
)

// RoutePrefix holds the base API prefixes.
type RoutePrefix struct {
	Base string // /api
	V1   string // /api/v1
}

// NewRoutePrefix returns the default prefixes.
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter creates a Router bound to app.
func NewRouter(app *fiber.App) *Router {
	return &Router{app: app}
}

// NewGroupWithMiddleware creates the route group for prefix with its
// middleware attached via group.Use(). Callers must create one group per
// prefix and register every route of that prefix on it; creating a second
// group with the same prefix stacks its middleware onto every request.
func NewGroupWithMiddleware(router fiber.Router, prefix string, middlewares ...fiber.Handler) fiber.Router {
	group := router.Group(prefix)
	for _, mw := range middlewares {
		group.Use(mw)
	}
	return group
}

// RegisterCRUDRoutes registers the CRUD routes for one collection on the
// given group. Middleware comes from the group itself (NewGroupWithMiddleware).
func (r *Router) RegisterCRUDRoutes(group fiber.Router, h CRUDHandler, config CRUDConfig) {
	if config.InsOne {
		group.Post("/insert-one", h.InsertOne)
	}
	if config.InsMany {
		group.Post("/insert-many", h.InsertMany)
	}

	if config.Find {
		group.Get("/find", h.Find)
	}
	if config.FindOne {
		group.Get("/find-one", h.FindOne)
	}
	if config.FindById {
		group.Get("/find-by-id/:id", h.FindOneById)
	}
	if config.FindIds {
		group.Get("/find-by-ids", h.FindManyByIds)
	}
	if config.Paginate {
		group.Get("/find-with-pagination", h.FindWithPagination)
	}

	if config.UpdById {
		group.Put("/update-by-id/:id", h.UpdateById)
	}
	if config.DelById {
		group.Delete("/delete-by-id/:id", h.DeleteById)
	}

	if config.Count {
		group.Get("/count", h.CountDocuments)
	}
	if config.Distinct {
		group.Get("/distinct", h.Distinct)
	}
	if config.Exists {
		group.Get("/exists", h.DocumentExists)
	}
}

// RegisterFunc registers one domain's routes (exported by <domain>/router).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes mounts all domain routes. Callers pass each domain's Register
// function, which keeps domain packages from importing each other.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
