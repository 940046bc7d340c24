package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"messaging-be/internal/pkg/serverutils"
	"messaging-be/internal/service"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Delete(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) IUserController {
	return &userController{
		userService: userService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/user/v1")
	h.Use(auth)
	h.Delete("me", c.Delete)
}

// Delete removes the authenticated user's own account.
func (c *userController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.userService.Delete(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete user", nil))
}
