package controller

import "github.com/labstack/echo/v4"

type PlannerController interface {
	StartSession(c echo.Context) error
	Refine(c echo.Context) error
	Upload(c echo.Context) error
	Finalize(c echo.Context) error
}
