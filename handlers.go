package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	appVersion string = getEnv("APP_VERSION", "dev")
)

// api carries the dependencies shared by the request handlers.
type api struct {
	clients    ClientRepository
	guidelines GuidelineRepository
	source     reportSource
}

func cdsServices(c echo.Context) error {
	// Build basic Hook response
	serviceResponse := ServiceResponse{
		Services: []Service{
			{
				Hook:        "patient-view",
				Title:       "Client Health Report",
				Description: "Compares a client's bloodwork and lifestyle answers against the medical guidelines",
				Id:          healthReportService,
				Prefetch:    map[string]string{},
			},
		},
	}

	// Return response
	return c.JSON(http.StatusOK, serviceResponse)
}

func heartbeat(c echo.Context) error {
	// Heartbeat function to assess service status. Immediately return 200
	return c.NoContent(http.StatusOK)
}

func version(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"application": appName,
		"version":     appVersion,
	})
}
