package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"messaging-be/internal/pkg/serverutils"
	"messaging-be/internal/service"
)

type INotificationController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	List(ctx *fiber.Ctx) error
	MarkAsRead(ctx *fiber.Ctx) error
	MarkAllAsRead(ctx *fiber.Ctx) error
}

type notificationController struct {
	notificationService service.INotificationService
}

func NewNotificationController(notificationService service.INotificationService) INotificationController {
	return &notificationController{
		notificationService: notificationService,
	}
}

func (c *notificationController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/notification/v1")
	h.Use(auth)
	h.Get("", c.List)
	h.Put("read-all", c.MarkAllAsRead)
	h.Put(":id/read", c.MarkAsRead)
}

func (c *notificationController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	unreadOnly := ctx.QueryBool("unread")

	res, err := c.notificationService.List(ctx.Context(), userId, unreadOnly)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notifications", res))
}

func (c *notificationController) MarkAsRead(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	if err := c.notificationService.MarkAsRead(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success mark notification as read", nil))
}

func (c *notificationController) MarkAllAsRead(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.notificationService.MarkAllAsRead(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success mark all notifications as read", nil))
}
