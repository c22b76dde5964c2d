package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villastay/internal/models"
)

type SetRoleInput struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role" validate:"required,oneof=ADMIN VILLA_OWNER GUEST"`
}

type UserService struct {
	userRepo models.UserRepo
	logger   *slog.Logger
}

func NewUserService(userRepo models.UserRepo, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{userRepo: userRepo, logger: logger}
}

// SetRole changes the role stored for a user. It takes effect on the user's next request.
// Admins cannot change their own role.
func (us *UserService) SetRole(ctx context.Context, actor Actor, in SetRoleInput) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.UserID == uuid.Nil {
		return nil, &ValidationError{Fields: map[string]string{"userId": "userId is required"}}
	}
	if in.UserID == actor.ID {
		return nil, fmt.Errorf("%w: admins cannot change their own role", ErrForbidden)
	}

	user, err := us.userRepo.SetUserRole(ctx, in.UserID, in.Role)
	if err != nil {
		return nil, storeErr(err, "set user role")
	}
	us.logger.Info("User role changed",
		"user_id", user.ID,
		"role", user.Role,
		"changed_by", actor.ID,
	)
	return user, nil
}
