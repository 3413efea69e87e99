package controllerImp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"musafir/pkg/export"
	"musafir/pkg/middleware"
	"musafir/pkg/place"
	"musafir/pkg/trip"
	"musafir/pkg/trip/controller"
	"musafir/pkg/trip/service"
)

type tripCtrl struct{ s service.TripService }

func New(s service.TripService) controller.TripController { return &tripCtrl{s: s} }

func (h *tripCtrl) List(c echo.Context) error {
	trips, err := h.s.ListTrips(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, trips)
}

func (h *tripCtrl) Get(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid trip id"})
	}
	v, err := h.s.GetTrip(c.Request().Context(), id)
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, v)
}

func (h *tripCtrl) Patch(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid trip id"})
	}
	var body service.TripPatch
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	t, err := h.s.UpdatePartial(c.Request().Context(), id, body)
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, t)
}

func (h *tripCtrl) Document(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid trip id"})
	}
	doc, err := h.s.RenderDocument(c.Request().Context(), id)
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	if c.QueryParam("format") == "markdown" {
		return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(doc))
	}
	return c.JSON(http.StatusOK, map[string]any{"trip_id": id, "document": doc})
}

func (h *tripCtrl) Export(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid trip id"})
	}
	v, err := h.s.GetTrip(c.Request().Context(), id)
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	f, err := export.Workbook(v.Trip, v.Items)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	defer f.Close()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.FileName(v.Trip)))
	res.WriteHeader(http.StatusOK)
	if err := f.Write(res); err != nil {
		log.WithError(err).WithField("trip_id", id).Warn("[export] write failed")
	}
	return nil
}

func (h *tripCtrl) AddItem(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid trip id"})
	}
	var body service.ItemInput
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	it, err := h.s.AddItem(c.Request().Context(), id, body)
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, it)
}

func (h *tripCtrl) PatchItem(c echo.Context) error {
	id, ok := idParam(c, "item_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid item id"})
	}
	var body service.ItemPatch
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	it, err := h.s.UpdateItem(c.Request().Context(), id, body)
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, it)
}

func (h *tripCtrl) DeleteItem(c echo.Context) error {
	id, ok := idParam(c, "item_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid item id"})
	}
	if err := h.s.DeleteItem(c.Request().Context(), id); err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func idParam(c echo.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, trip.ErrTripNotFound),
		errors.Is(err, trip.ErrItemNotFound),
		errors.Is(err, place.ErrPlaceNotFound):
		return http.StatusNotFound
	case errors.Is(err, trip.ErrOrderIndexTaken):
		return http.StatusConflict
	case errors.Is(err, trip.ErrInvalidDay),
		errors.Is(err, trip.ErrInvalidOrderIndex),
		errors.Is(err, trip.ErrInvalidStatus),
		errors.Is(err, trip.ErrInvalidDate),
		errors.Is(err, trip.ErrInvalidTime),
		errors.Is(err, trip.ErrEndBeforeStart):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
