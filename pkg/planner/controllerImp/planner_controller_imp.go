package controllerImp

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"musafir/pkg/ai"
	"musafir/pkg/ingest"
	"musafir/pkg/middleware"
	"musafir/pkg/planner"
	"musafir/pkg/planner/controller"
	svc "musafir/pkg/planner/service"
	"musafir/pkg/session"
)

type plannerCtrl struct {
	s        svc.PlannerService
	maxBytes int64
}

func New(s svc.PlannerService, uploadMaxBytes int64) controller.PlannerController {
	if uploadMaxBytes <= 0 {
		uploadMaxBytes = 5 << 20
	}
	return &plannerCtrl{s: s, maxBytes: uploadMaxBytes}
}

func (h *plannerCtrl) StartSession(c echo.Context) error {
	sess, err := h.s.StartSession(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, sess)
}

func (h *plannerCtrl) Refine(c echo.Context) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	out, err := h.s.Refine(c.Request().Context(), c.Param("id"), body.Message)
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"response": out})
}

func (h *plannerCtrl) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no file uploaded"})
	}
	if fh.Filename == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no file selected"})
	}
	if fh.Size > h.maxBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if int64(len(data)) > h.maxBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large"})
	}

	res, err := h.s.Upload(c.Request().Context(), c.Param("id"), svc.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *plannerCtrl) Finalize(c echo.Context) error {
	var req svc.FinalizeRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
		}
	}
	req.SessionID = c.Param("id")
	req.UserID = middleware.UserID(c)

	res, err := h.s.Finalize(c.Request().Context(), req)
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	status := http.StatusCreated
	if res.TripID == nil {
		// nothing persisted; the display document is still returned
		status = http.StatusUnprocessableEntity
	}
	return c.JSON(status, res)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrSessionFinalized):
		return http.StatusConflict
	case errors.Is(err, planner.ErrEmptyInput), errors.Is(err, ingest.ErrEmptyDocument):
		return http.StatusBadRequest
	case errors.Is(err, ingest.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case ai.IsCompletionError(err):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
