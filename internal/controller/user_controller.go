package controller

import (
	"github.com/benbeisheim/chess-server/internal/service"
	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	userService *service.UserService
	gameService *service.GameService
}

func NewUserController(userService *service.UserService, gameService *service.GameService) *UserController {
	return &UserController{userService: userService, gameService: gameService}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ClearDB handles DELETE /db.
func (uc *UserController) ClearDB(c *fiber.Ctx) error {
	if err := uc.gameService.Clear(); err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{})
}

// Register handles POST /user.
func (uc *UserController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	auth, err := uc.userService.Register(req.Username, req.Password, req.Email)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(auth)
}

// Login handles POST /session.
func (uc *UserController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	auth, err := uc.userService.Login(req.Username, req.Password)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(auth)
}

// Logout handles DELETE /session.
func (uc *UserController) Logout(c *fiber.Ctx) error {
	if err := uc.userService.Logout(authToken(c)); err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{})
}
