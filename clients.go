package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *api) listClients(c echo.Context) error {
	ctx := c.Request().Context()

	clients, err := a.clients.ListClients(ctx)
	if err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, clients)
}

func (a *api) getClient(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	client, err := a.clients.GetClient(ctx, id)
	if errors.Is(err, errNotFound) {
		return c.String(http.StatusNotFound, fmt.Sprintf("Client with ID %s not found.", id))
	}
	if err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, client)
}

func (a *api) addClient(c echo.Context) error {
	ctx := c.Request().Context()

	var client Client
	if err := c.Bind(&client); err != nil {
		return c.String(http.StatusBadRequest, "Invalid client data.")
	}
	if msg := validateClient(&client); msg != "" {
		return c.String(http.StatusBadRequest, msg)
	}

	err := a.clients.AddClient(ctx, &client)
	if errors.Is(err, errConflict) {
		return c.String(http.StatusConflict, fmt.Sprintf("Client with ID %s already exists.", client.Id))
	}
	if err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}

	zapLogger.Info("Client added", zap.String("clientId", client.Id))

	return c.JSON(http.StatusCreated, client)
}

func (a *api) updateClient(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var client Client
	if err := c.Bind(&client); err != nil {
		return c.String(http.StatusBadRequest, "Invalid client data.")
	}
	if client.Id != id {
		return c.String(http.StatusBadRequest, "Client ID mismatch.")
	}
	if msg := validateClient(&client); msg != "" {
		return c.String(http.StatusBadRequest, msg)
	}

	err := a.clients.UpdateClient(ctx, &client)
	if errors.Is(err, errNotFound) {
		return c.String(http.StatusNotFound, fmt.Sprintf("Client with ID %s not found.", id))
	}
	if err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}

	zapLogger.Info("Client updated", zap.String("clientId", client.Id))

	return c.NoContent(http.StatusNoContent)
}

// validateClient returns a message describing the first invalid field, or "".
func validateClient(client *Client) string {
	if strings.TrimSpace(client.Name) == "" {
		return "Client name is required."
	}
	if client.DateOfBirth.After(time.Now()) {
		return "Date of birth cannot be in the future."
	}
	return ""
}
