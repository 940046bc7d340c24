package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"messaging-be/internal/dto"
	"messaging-be/internal/entity"
	"messaging-be/internal/events"
	"messaging-be/internal/pkg/logger"
	"messaging-be/internal/repository/unitofwork"
)

type IUserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Delete removes the user and then triggers cleanup of everything that
	// referenced them.
	Delete(ctx context.Context, userId uuid.UUID) error
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	bus        *events.Bus
	jwtSecret  string
	logger     logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, bus *events.Bus, jwtSecret string, log logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		bus:        bus,
		jwtSecret:  jwtSecret,
		logger:     log,
	}
}

func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	existing, err := uow.UserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if existing != nil {
		_ = uow.Rollback()
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	hashStr := string(hash)

	role := req.Role
	if role == "" {
		role = "guest"
	}

	user := &entity.User{
		Id:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: &hashStr,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		_ = uow.Rollback()
		return nil, err
	}

	if err := s.bus.Publish(ctx, uow, events.Event{
		Kind: events.KindUser,
		Type: events.TypeCreated,
		Post: user,
	}); err != nil {
		_ = uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{Id: user.Id}, nil
}

func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: signedToken}, nil
}

// Delete commits the user removal first and runs cleanup afterwards on a
// fresh unit of work. The deletion itself never waits on cleanup; a cleanup
// failure is logged and the remaining rows stay reachable for a re-run.
func (s *userService) Delete(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	user, err := uow.UserRepository().FindById(ctx, userId)
	if err != nil {
		_ = uow.Rollback()
		return err
	}
	if user == nil {
		_ = uow.Rollback()
		return ErrNotFound
	}

	if err := uow.UserRepository().Delete(ctx, userId); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	cleanupUow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.bus.Publish(ctx, cleanupUow, events.Event{
		Kind: events.KindUser,
		Type: events.TypeDeleted,
		Pre:  user,
	}); err != nil {
		s.logger.Warn("UserService", "Cleanup after user deletion was incomplete", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}
	return nil
}
