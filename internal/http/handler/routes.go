package handler

import (
	"github.com/gofiber/fiber/v2"

	"ambientefest/internal/http/middleware"
	"ambientefest/internal/service"
)

// SessionStore is what the session middleware needs from the store.
type SessionStore interface {
	middleware.SessionLoader
	middleware.SessionRevoker
}

// Deps carries everything the routes are built from.
type Deps struct {
	Backend  Pinger
	Tokens   middleware.TokenParser
	Sessions SessionStore

	Auth     service.AuthService
	Catalog  service.CatalogService
	Schedule service.ScheduleService
	Cart     service.CartService
	Payments service.PaymentService
	Blogs    service.BlogService
	Contacts service.ContactService
	Users    service.UserService
	Images   service.ImageService

	// OpenAPIPath is the file served at /openapi.yaml.
	OpenAPIPath string
}

// RegisterRoutes attaches every route to app.
func RegisterRoutes(app *fiber.App, d Deps) {
	openapi := d.OpenAPIPath
	if openapi == "" {
		openapi = "openapi.yaml"
	}
	app.Get("/openapi.yaml", OpenAPISpec(openapi))
	app.Get("/docs", DocsPage())
	app.Get("/health", HealthCheck(d.Backend))
	app.Get("/healthz", LivenessProbe())

	authed := []fiber.Handler{
		middleware.RequireSession(d.Tokens, d.Sessions),
		middleware.RevokeOnUnauthorized(d.Sessions),
	}
	withSession := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, authed...), h)
	}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", Login(d.Auth))
	auth.Post("/register", Register(d.Auth))
	auth.Post("/logout", withSession(Logout(d.Auth))...)
	auth.Get("/me", withSession(Me(d.Auth))...)
	auth.Patch("/me", withSession(UpdateProfile(d.Auth))...)

	api.Get("/services", ListServices(d.Catalog))
	api.Get("/services/featured", FeaturedServices(d.Catalog))
	api.Get("/services/:id", GetService(d.Catalog))
	api.Get("/services/:id/slots", AvailableSlots(d.Schedule))
	api.Post("/services/:id/slots/:slotId/reserve", withSession(ReserveSlot(d.Schedule))...)
	api.Post("/services/:id/slots/:slotId/cart", withSession(ReserveSlotToCart(d.Schedule))...)
	api.Get("/service-categories", ServiceCategories(d.Catalog))

	api.Get("/blogs", ListBlogs(d.Blogs))
	api.Get("/blogs/:id", GetBlog(d.Blogs))
	api.Get("/blogs/:id/comments", BlogComments(d.Blogs))
	api.Post("/blogs/:id/comments", withSession(AddBlogComment(d.Blogs))...)
	api.Get("/blog-categories", BlogCategories(d.Blogs))

	api.Post("/contact", SubmitContact(d.Contacts))

	cart := api.Group("/cart", authed...)
	cart.Get("/", ViewCart(d.Cart))
	cart.Delete("/", ClearCart(d.Cart))
	cart.Post("/items", AddCartItem(d.Cart))
	cart.Delete("/items/:serviceId", RemoveCartItem(d.Cart))
	cart.Post("/checkout", Checkout(d.Cart))

	api.Get("/payments/mine", withSession(MyPayments(d.Payments))...)

	admin := api.Group("/admin", withSession(middleware.RequireAdmin())...)

	admin.Get("/users", ListUsers(d.Users))
	admin.Post("/users", CreateUser(d.Users))
	admin.Get("/users/:id", GetUser(d.Users))
	admin.Patch("/users/:id", UpdateUser(d.Users))
	admin.Delete("/users/:id", DeleteUser(d.Users))
	admin.Patch("/users/:id/block", SetUserBlocked(d.Users))
	admin.Get("/roles", ListRoles(d.Users))

	admin.Get("/services", ListServices(d.Catalog))
	admin.Post("/services", CreateService(d.Catalog))
	admin.Get("/services/:id", GetService(d.Catalog))
	admin.Patch("/services/:id", UpdateService(d.Catalog))
	admin.Put("/services/:id", UpdateService(d.Catalog))
	admin.Delete("/services/:id", DeleteService(d.Catalog))

	admin.Get("/slots", ListSlots(d.Schedule))
	admin.Post("/slots", CreateSlot(d.Schedule))
	admin.Put("/slots/:id", UpdateSlot(d.Schedule))
	admin.Delete("/slots/:id", DeleteSlot(d.Schedule))

	admin.Get("/blogs", ListAllBlogs(d.Blogs))
	admin.Post("/blogs", CreateBlog(d.Blogs))
	admin.Patch("/blogs/:id", UpdateBlog(d.Blogs))
	admin.Put("/blogs/:id/status", UpdateBlogStatus(d.Blogs))
	admin.Delete("/blogs/:id", DeleteBlog(d.Blogs))

	admin.Get("/payments", ListPayments(d.Payments))
	admin.Patch("/payments/:id/status", UpdatePaymentStatus(d.Payments))

	admin.Get("/contacts", ListContacts(d.Contacts))
	admin.Get("/contacts/:id", GetContact(d.Contacts))
	admin.Put("/contacts/:id", ReplaceContact(d.Contacts))
	admin.Patch("/contacts/:id", PatchContact(d.Contacts))
	admin.Delete("/contacts/:id", DeleteContact(d.Contacts))

	admin.Post("/images", UploadImages(d.Images))
}
