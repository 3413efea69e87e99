package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	authCtrl "musafir/pkg/auth/controller"
	"musafir/pkg/middleware"
	plannerCtrl "musafir/pkg/planner/controller"
	tripCtrl "musafir/pkg/trip/controller"
	userCtrl "musafir/pkg/user/controller"
)

func New(
	e *echo.Echo,
	planner plannerCtrl.PlannerController,
	trips tripCtrl.TripController,
	users userCtrl.UserController,
	auth authCtrl.AuthController,
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Identity())

	e.GET("/health", healthCtrl.Health)

	e.GET("/whoami", auth.WhoAmI)
	e.POST("/login", auth.Login)
	e.POST("/logout", auth.Logout)

	e.POST("/users", users.Create)
	e.GET("/users/:id", users.Get)
	e.PUT("/users/me/preferences", users.UpdatePreferences, middleware.RequireUser())

	s := e.Group("/sessions")
	s.POST("", planner.StartSession)
	s.POST("/:id/refine", planner.Refine)
	s.POST("/:id/upload", planner.Upload)
	s.POST("/:id/finalize", planner.Finalize)

	t := e.Group("/trips")
	t.GET("", trips.List)
	t.GET("/:id", trips.Get)
	t.PATCH("/:id", trips.Patch)
	t.GET("/:id/document", trips.Document)
	t.GET("/:id/export", trips.Export)
	t.POST("/:id/items", trips.AddItem)

	e.PATCH("/items/:item_id", trips.PatchItem)
	e.DELETE("/items/:item_id", trips.DeleteItem)
	return e
}
