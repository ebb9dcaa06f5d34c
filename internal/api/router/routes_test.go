package router

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCRUDHandler satisfies CRUDHandler with trivial responses.
type stubCRUDHandler struct{}

func ok(c fiber.Ctx) error { return c.SendString("ok") }

func (stubCRUDHandler) InsertOne(c fiber.Ctx) error          { return ok(c) }
func (stubCRUDHandler) InsertMany(c fiber.Ctx) error         { return ok(c) }
func (stubCRUDHandler) Find(c fiber.Ctx) error               { return ok(c) }
func (stubCRUDHandler) FindOne(c fiber.Ctx) error            { return ok(c) }
func (stubCRUDHandler) FindOneById(c fiber.Ctx) error        { return ok(c) }
func (stubCRUDHandler) FindManyByIds(c fiber.Ctx) error      { return ok(c) }
func (stubCRUDHandler) FindWithPagination(c fiber.Ctx) error { return ok(c) }
func (stubCRUDHandler) UpdateById(c fiber.Ctx) error         { return ok(c) }
func (stubCRUDHandler) DeleteById(c fiber.Ctx) error         { return ok(c) }
func (stubCRUDHandler) CountDocuments(c fiber.Ctx) error     { return ok(c) }
func (stubCRUDHandler) Distinct(c fiber.Ctx) error           { return ok(c) }
func (stubCRUDHandler) DocumentExists(c fiber.Ctx) error     { return ok(c) }

func countingMiddleware(calls *int) fiber.Handler {
	return func(c fiber.Ctx) error {
		*calls++
		return c.Next()
	}
}

func TestGroupMiddlewareRunsOncePerRequest(t *testing.T) {
	app := fiber.New()
	r := NewRouter(app)

	calls := 0
	group := NewGroupWithMiddleware(app, "/solutions", countingMiddleware(&calls))
	group.Get("/list", ok)
	r.RegisterCRUDRoutes(group, stubCRUDHandler{}, ReadWriteConfig)

	resp, err := app.Test(httptest.NewRequest("GET", "/solutions/find", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, calls)

	calls = 0
	resp, err = app.Test(httptest.NewRequest("GET", "/solutions/list", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestNestedGroupInheritsMiddlewareWithoutStacking(t *testing.T) {
	app := fiber.New()
	r := NewRouter(app)

	calls := 0
	users := NewGroupWithMiddleware(app, "/users", countingMiddleware(&calls))
	extensions := users.Group("/extensions")
	r.RegisterCRUDRoutes(extensions, stubCRUDHandler{}, ReadWriteConfig)

	resp, err := app.Test(httptest.NewRequest("GET", "/users/extensions/find-by-id/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestReadOnlyConfigOmitsWriteRoutes(t *testing.T) {
	app := fiber.New()
	r := NewRouter(app)

	group := NewGroupWithMiddleware(app, "/submissions")
	r.RegisterCRUDRoutes(group, stubCRUDHandler{}, ReadOnlyConfig)

	resp, err := app.Test(httptest.NewRequest("GET", "/submissions/find", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/submissions/insert-one", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
