package main

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *api) getGuidelines(c echo.Context) error {
	ctx := c.Request().Context()

	guidelines, err := a.guidelines.GetGuidelines(ctx)
	if errors.Is(err, errNotFound) {
		return c.String(http.StatusNotFound, "Medical guidelines not configured.")
	}
	if err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, guidelines)
}

// saveGuidelines replaces the whole guideline set. Reports already in flight
// keep the snapshot they started with.
func (a *api) saveGuidelines(c echo.Context) error {
	ctx := c.Request().Context()

	var guidelines MedicalGuidelines
	if err := c.Bind(&guidelines); err != nil {
		return c.String(http.StatusBadRequest, "Invalid guideline data.")
	}

	if err := a.guidelines.SaveGuidelines(ctx, &guidelines); err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}

	zapLogger.Info("Medical guidelines updated")

	return c.JSON(http.StatusOK, &guidelines)
}
