package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"order-backend/audit"
	apperrors "order-backend/common/errors"
	"order-backend/models"
	"order-backend/notifications"
	"order-backend/repository"
)

// UserService manages user accounts.
type UserService interface {
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetActiveUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id uint, req *models.UpdateUserRequest) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uint) error
	DeactivateUser(ctx context.Context, id uint) error
	DeleteUser(ctx context.Context, id uint) error
}

type userServiceImpl struct {
	repo     repository.UserRepository
	notifier notifications.Notifier
	auditor  audit.Recorder
	logger   *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, notifier notifications.Notifier, auditor audit.Recorder, logger *zap.Logger) UserService {
	return &userServiceImpl{repo: repo, notifier: notifier, auditor: auditor, logger: logger}
}

func (s *userServiceImpl) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Internal("failed to check email", err)
	}
	if exists {
		return nil, apperrors.Validation("email already exists: %s", req.Email)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		Active:    true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperrors.Internal("failed to create user", err)
	}

	s.notifier.Welcome(ctx, user.Email, user.FirstName)
	s.auditor.UserCreated(ctx, user.ID, user.Email)

	return user, nil
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found with ID: %d", id)
		}
		return nil, apperrors.Internal("failed to load user", err)
	}
	return user, nil
}

func (s *userServiceImpl) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found with email: %s", email)
		}
		return nil, apperrors.Internal("failed to load user", err)
	}
	return user, nil
}

func (s *userServiceImpl) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list users", err)
	}
	return users, nil
}

func (s *userServiceImpl) GetActiveUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.FindByActive(ctx, true)
	if err != nil {
		return nil, apperrors.Internal("failed to list active users", err)
	}
	return users, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, id uint, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Phone = req.Phone
	user.Address = req.Address
	user.City = req.City
	user.ZipCode = req.ZipCode

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal("failed to update user", err)
	}

	s.auditor.UserUpdated(ctx, user.ID, user.Email)
	return user, nil
}

func (s *userServiceImpl) UpdateLastLogin(ctx context.Context, id uint) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.repo.Update(ctx, user); err != nil {
		return apperrors.Internal("failed to update last login", err)
	}
	return nil
}

func (s *userServiceImpl) DeactivateUser(ctx context.Context, id uint) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	user.Active = false
	if err := s.repo.Update(ctx, user); err != nil {
		return apperrors.Internal("failed to deactivate user", err)
	}
	s.auditor.UserUpdated(ctx, user.ID, user.Email)
	return nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal("failed to delete user", err)
	}
	return nil
}
