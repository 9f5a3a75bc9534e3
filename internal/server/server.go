package server

import (
	"marketplace-api/internal/config"
	"marketplace-api/internal/handler"
	appmiddleware "marketplace-api/internal/middleware"
	"marketplace-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	glog "github.com/labstack/gommon/log"
)

type Server struct {
	echo           *echo.Echo
	authService    service.AuthService
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
}

func NewServer(
	logCfg config.Log,
	authService service.AuthService,
	userService service.UserService,
	catalogService service.CatalogService,
	orderService service.OrderService,
) *Server {
	e := echo.New()
	e.Logger.SetLevel(logLevel(logCfg.Level))

	if logCfg.Format == "text" {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Format: "${time_rfc3339} ${method} ${uri} ${status} ${latency_human}\n",
		}))
	} else {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		authService:    authService,
		authHandler:    handler.NewAuthHandler(authService),
		userHandler:    handler.NewUserHandler(userService),
		catalogHandler: handler.NewCatalogHandler(catalogService),
		cartHandler:    handler.NewCartHandler(),
		orderHandler:   handler.NewOrderHandler(orderService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	auth := appmiddleware.Auth(s.authService)
	admin := appmiddleware.RequireAdmin()

	// -------- auth --------
	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.authHandler.Register)
	authGroup.POST("/login", s.authHandler.Login)
	authGroup.POST("/logout", s.authHandler.Logout)

	// -------- users --------
	users := api.Group("/users", auth)
	users.GET("/me", s.userHandler.Me)
	users.GET("", s.userHandler.List, admin)

	// -------- catalog --------
	products := api.Group("/products")
	products.GET("", s.catalogHandler.ListProducts)
	products.GET("/:id", s.catalogHandler.GetProduct)
	products.POST("", s.catalogHandler.CreateProduct, auth, admin)
	products.PUT("/:id", s.catalogHandler.UpdateProduct, auth, admin)
	products.DELETE("/:id", s.catalogHandler.DeleteProduct, auth, admin)

	categories := api.Group("/categories")
	categories.GET("", s.catalogHandler.ListCategories)
	categories.GET("/:id", s.catalogHandler.GetCategory)
	categories.POST("", s.catalogHandler.CreateCategory, auth, admin)
	categories.PUT("/:id", s.catalogHandler.UpdateCategory, auth, admin)
	categories.DELETE("/:id", s.catalogHandler.DeleteCategory, auth, admin)

	// -------- cart --------
	cart := api.Group("/cart", auth)
	cart.GET("", s.cartHandler.Get)
	cart.POST("/add", s.cartHandler.Add)
	cart.PUT("/:itemId", s.cartHandler.Update)
	cart.DELETE("/:itemId", s.cartHandler.Remove)

	// -------- orders --------
	orders := api.Group("/orders", auth)
	orders.GET("", s.orderHandler.GetAll)
	orders.GET("/status/:status", s.orderHandler.GetByStatus)
	orders.GET("/:id", s.orderHandler.GetByID)
	orders.POST("", s.orderHandler.Create)
	orders.PUT("/:id/status", s.orderHandler.UpdateStatus, admin)
	orders.PUT("/:id/payment", s.orderHandler.UpdatePayment)
	orders.DELETE("/:id", s.orderHandler.Delete, admin)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func logLevel(level string) glog.Lvl {
	switch level {
	case "debug":
		return glog.DEBUG
	case "warn":
		return glog.WARN
	case "error":
		return glog.ERROR
	default:
		return glog.INFO
	}
}
