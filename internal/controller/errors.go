package controller

import (
	"errors"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/middleware"
	"github.com/benbeisheim/chess-server/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrBadRequest),
		errors.Is(err, chess.ErrInvalidMove),
		errors.Is(err, chess.ErrMalformedPosition),
		errors.Is(err, service.ErrGameOver),
		errors.Is(err, service.ErrNotYourTurn):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrAlreadyTaken),
		errors.Is(err, service.ErrObserver):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// sendError writes err as {"message": "Error: ..."} with the matching status.
func sendError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"message": "Error: " + err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Error: bad request: " + msg,
	})
}

// authToken is the session token RequireAuth stored for this request, or ""
// when the route is not behind it.
func authToken(c *fiber.Ctx) string {
	token, _ := c.Locals(middleware.LocalsToken).(string)
	return token
}
