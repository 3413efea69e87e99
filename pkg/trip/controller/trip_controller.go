package controller

import "github.com/labstack/echo/v4"

type TripController interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Patch(c echo.Context) error
	Document(c echo.Context) error
	Export(c echo.Context) error
	AddItem(c echo.Context) error
	PatchItem(c echo.Context) error
	DeleteItem(c echo.Context) error
}
