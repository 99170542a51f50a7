package httpserver

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"warehouse/internal/handlers"
	"warehouse/internal/middleware/auth"
	"warehouse/internal/middleware/ratelimit"
)

type Deps struct {
	DB             *gorm.DB
	ProductHandler *handlers.ProductHandler
	AuthHandler    *handlers.AuthHandler
	Guard          *auth.Guard
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	credLimiter := ratelimit.New(rate.Limit(5), 10)

	authGroup := e.Group("/Auth")
	authGroup.GET("/Register", d.AuthHandler.RegisterForm)
	authGroup.POST("/Register", d.AuthHandler.Register, credLimiter)
	authGroup.GET("/Login", d.AuthHandler.LoginForm)
	authGroup.POST("/Login", d.AuthHandler.Login, credLimiter)
	authGroup.POST("/Logout", d.AuthHandler.Logout)

	product := e.Group("/Product", d.Guard.RequireLogin)

	product.GET("/Index", d.ProductHandler.Index)
	product.GET("/Details/:id", d.ProductHandler.Details)
	product.GET("/Edit/:id", d.ProductHandler.EditForm)
	product.POST("/Edit/:id", d.ProductHandler.Edit)
	product.GET("/Search", d.ProductHandler.Search)
	product.GET("/Autocomplete", d.ProductHandler.Autocomplete)

	product.GET("/Create", d.ProductHandler.CreateForm, d.Guard.AdminOnly)
	product.POST("/Create", d.ProductHandler.Create, d.Guard.AdminOnly)
	product.GET("/Delete/:id", d.ProductHandler.DeleteForm, d.Guard.AdminOnly)
	product.POST("/Delete/:id", d.ProductHandler.Delete, d.Guard.AdminOnly)
	product.POST("/DeleteConfirmed/:id", d.ProductHandler.Delete, d.Guard.AdminOnly)
}
