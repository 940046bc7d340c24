package bootstrap

import (
	"log"

	"gorm.io/gorm"

	"messaging-be/internal/config"
	"messaging-be/internal/controller"
	"messaging-be/internal/events"
	"messaging-be/internal/pkg/logger"
	"messaging-be/internal/ratelimit"
	"messaging-be/internal/repository/unitofwork"
	"messaging-be/internal/service"
	pkgNats "messaging-be/pkg/nats"
)

type Container struct {
	AuthController         controller.IAuthController
	UserController         controller.IUserController
	ConversationController controller.IConversationController
	MessageController      controller.IMessageController
	NotificationController controller.INotificationController

	Logger logger.ILogger

	// Kept so main can Close it on shutdown; nil when NATS is unreachable.
	NatsPublisher *pkgNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Lifecycle bus and admission limiter
	bus := events.NewBus()
	limiter := ratelimit.NewSlidingWindowLimiter(cfg.RateLimit.Window, cfg.RateLimit.Limit)

	// 3. Outbound mirror, best effort
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 4. Reactions, registered in the order they must run for a given event
	auditService := service.NewAuditService()
	auditService.Register(bus)

	notificationService := service.NewNotificationService(uowFactory, sysLogger)
	notificationService.Register(bus)

	cleanupService := service.NewCleanupService(sysLogger)
	cleanupService.Register(bus)

	// 5. Services
	userService := service.NewUserService(uowFactory, bus, cfg.App.JWTSecret, sysLogger)
	conversationService := service.NewConversationService(uowFactory, bus, sysLogger)

	var mirror service.EventMirror
	if natsPub != nil {
		mirror = natsPub
	}
	messageService := service.NewMessageService(uowFactory, bus, limiter, mirror, sysLogger)

	// 6. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(userService),
		UserController:         controller.NewUserController(userService),
		ConversationController: controller.NewConversationController(conversationService),
		MessageController:      controller.NewMessageController(messageService),
		NotificationController: controller.NewNotificationController(notificationService),

		Logger:        sysLogger,
		NatsPublisher: natsPub,
	}
}
