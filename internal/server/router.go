package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/auth"
	"github.com/keymaxprot/backend/internal/booking"
	"github.com/keymaxprot/backend/internal/cart"
	"github.com/keymaxprot/backend/internal/catalog"
	"github.com/keymaxprot/backend/internal/forum"
	"github.com/keymaxprot/backend/internal/garage"
	"github.com/keymaxprot/backend/internal/metrics"
	"github.com/keymaxprot/backend/internal/middleware"
	"github.com/keymaxprot/backend/internal/orders"
	"github.com/keymaxprot/backend/internal/search"
	"github.com/keymaxprot/backend/internal/servicecat"
	"github.com/keymaxprot/backend/internal/stats"
	"github.com/keymaxprot/backend/internal/tutorials"
	"github.com/keymaxprot/backend/internal/uploads"
)

type Deps struct {
	DB       *gorm.DB
	Auth     *middleware.AuthMiddleware
	Users    *auth.HTTP
	Products *catalog.HTTP
	Services *servicecat.HTTP
	Cart     *cart.HTTP
	Orders   *orders.HTTP
	Booking  *booking.HTTP
	Garage   *garage.HTTP
	Forum    *forum.HTTP
	Tutors   *tutorials.HTTP
	Stats    *stats.HTTP
	Search   *search.HTTP
	Uploads  *uploads.HTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		if err := sqlDB.PingContext(c.Request().Context()); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", metrics.Handler())

	e.POST("/auth/register", d.Users.Register)
	e.POST("/auth/login", d.Users.Login)
	e.GET("/auth/perfil", d.Users.Profile, d.Auth.RequireAuth)

	api := e.Group("/api")

	api.GET("/users", d.Users.ListUsers, d.Auth.RequireAdmin)
	api.PATCH("/users/:id/role", d.Users.UpdateRole, d.Auth.RequireAdmin)

	api.GET("/products", d.Products.GetProducts)
	api.GET("/products/:id", d.Products.GetProduct)
	api.POST("/products", d.Products.CreateProduct, d.Auth.RequireAdmin)
	api.PATCH("/products/:id", d.Products.PatchProduct, d.Auth.RequireAdmin)
	api.DELETE("/products/:id", d.Products.DeleteProduct, d.Auth.RequireAdmin)

	api.GET("/services", d.Services.List)
	api.GET("/services/:id", d.Services.Get)
	api.POST("/services", d.Services.Create, d.Auth.RequireAdmin)
	api.PUT("/services/:id", d.Services.Update, d.Auth.RequireAdmin)
	api.DELETE("/services/:id", d.Services.Delete, d.Auth.RequireAdmin)

	crt := api.Group("/cart", d.Auth.RequireAuth)
	crt.GET("", d.Cart.GetCart)
	crt.POST("/items", d.Cart.AddToCart)
	crt.PATCH("/items/:productID", d.Cart.UpdateQuantity)
	crt.DELETE("/items/:productID", d.Cart.RemoveFromCart)
	crt.DELETE("", d.Cart.ClearCart)

	api.GET("/favorites", d.Cart.ListFavorites, d.Auth.RequireAuth)
	api.POST("/favorites/:productID", d.Cart.ToggleFavorite, d.Auth.RequireAuth)

	ord := api.Group("/orders", d.Auth.RequireAuth)
	ord.POST("", d.Orders.CreateOrder)
	ord.GET("", d.Orders.ListOrders)
	ord.GET("/:id", d.Orders.GetOrder)
	ord.GET("/:id/payments", d.Orders.ListPayments)
	api.PATCH("/orders/:id/status", d.Orders.UpdateStatus, d.Auth.RequireAdmin)

	api.POST("/payments", d.Orders.CreatePayment, d.Auth.RequireAuth)
	api.PATCH("/payments/:id", d.Orders.UpdatePayment, d.Auth.RequireAdmin)
	api.POST("/checkout/preference", d.Orders.CreatePreference, d.Auth.RequireAuth)

	// Booking stays open so walk-in customers can reserve without an account.
	api.GET("/appointments/slots", d.Booking.GetSlots)
	api.POST("/appointments", d.Booking.Book)
	api.GET("/appointments/mine", d.Booking.ListMine, d.Auth.RequireAuth)
	api.GET("/appointments", d.Booking.ListByDate, d.Auth.RequireAdmin)
	api.PATCH("/appointments/:id/status", d.Booking.UpdateStatus, d.Auth.RequireAdmin)
	api.POST("/appointments/:id/cancel", d.Booking.Cancel, d.Auth.RequireAuth)
	api.DELETE("/appointments/:id", d.Booking.Delete, d.Auth.RequireAdmin)

	veh := api.Group("/vehicles", d.Auth.RequireAuth)
	veh.POST("", d.Garage.CreateVehicle)
	veh.GET("", d.Garage.ListVehicles)
	veh.GET("/:id", d.Garage.GetVehicle)
	veh.POST("/:id/ownerships", d.Garage.AddOwnership)
	veh.GET("/:id/records", d.Garage.ListRecords)
	api.POST("/vehicles/:id/records", d.Garage.CreateRecord, d.Auth.RequireAdmin)
	api.DELETE("/vehicles/:id", d.Garage.DeleteVehicle, d.Auth.RequireAdmin)

	api.GET("/threads", d.Forum.ListThreads)
	api.GET("/threads/:id", d.Forum.GetThread)
	api.GET("/threads/:id/posts", d.Forum.ListPosts)
	api.POST("/threads", d.Forum.CreateThread, d.Auth.RequireAuth)
	api.DELETE("/threads/:id", d.Forum.DeleteThread, d.Auth.RequireAuth)
	api.POST("/posts", d.Forum.CreatePost, d.Auth.RequireAuth)
	api.DELETE("/posts/:id", d.Forum.DeletePost, d.Auth.RequireAuth)
	api.GET("/posts/:id/comments", d.Forum.ListComments)
	api.POST("/comments", d.Forum.CreateComment, d.Auth.RequireAuth)
	api.DELETE("/comments/:id", d.Forum.DeleteComment, d.Auth.RequireAdmin)

	api.GET("/tutorials", d.Tutors.List)
	api.GET("/tutorials/:id", d.Tutors.Get)
	api.GET("/tutorials/:id/reviews", d.Tutors.ListReviews)
	api.POST("/tutorials", d.Tutors.Create, d.Auth.RequireAuth)
	api.DELETE("/tutorials/:id", d.Tutors.Delete, d.Auth.RequireAuth)
	api.POST("/tutorials/:id/reviews", d.Tutors.AddReview, d.Auth.RequireAuth)

	st := api.Group("/stats", d.Auth.RequireAdmin)
	st.GET("/sales", d.Stats.Sales)
	st.GET("/categories", d.Stats.Categories)
	st.GET("/users", d.Stats.Users)

	api.GET("/search", d.Search.Search)
	api.POST("/uploads", d.Uploads.Upload, d.Auth.RequireAuth)
}
