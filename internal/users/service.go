package users

import (
	"context"
	"log/slog"

	"github.com/taibuivan/library/internal/platform/validate"
	"github.com/taibuivan/library/pkg/slice"
)

// CreateUserRequest is the input of [Service.CreateUser].
type CreateUserRequest struct {
	Name string `json:"name"`
}

// UserResponse is the boundary view of a [User].
type UserResponse struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
}

func toResponse(user *User) *UserResponse {
	return &UserResponse{UserID: user.ID, Name: user.Name}
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
CreateUser validates the request, stores a new user and returns it with its
generated identifier.

Returns:
  - *UserResponse: The stored user
  - error: VALIDATION_ERROR for a blank or too long name, or a storage failure
*/
func (service *Service) CreateUser(context context.Context, request CreateUserRequest) (*UserResponse, error) {
	user, err := NewUser(request.Name)
	if err != nil {
		return nil, err
	}

	if _, err := service.repo.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created", slog.Int("user_id", user.ID))
	return toResponse(user), nil
}

// GetUserByID returns nil when no user has the identifier.
func (service *Service) GetUserByID(context context.Context, id int) (*UserResponse, error) {
	user, err := service.repo.GetByID(context, id)
	if err != nil || user == nil {
		return nil, err
	}
	return toResponse(user), nil
}

func (service *Service) UserExists(context context.Context, id int) (bool, error) {
	return service.repo.Exists(context, id)
}

// GetUsersByName rejects a blank name before any storage access.
func (service *Service) GetUsersByName(context context.Context, name string) ([]*UserResponse, error) {
	name = NormalizeName(name)

	validator := &validate.Validator{}
	if err := validator.Required(FieldName, name).Err(); err != nil {
		return nil, err
	}

	found, err := service.repo.GetByName(context, name)
	if err != nil {
		return nil, err
	}
	return mapResponses(found), nil
}

func (service *Service) GetAllUsers(context context.Context) ([]*UserResponse, error) {
	all, err := service.repo.GetAll(context)
	if err != nil {
		return nil, err
	}
	return mapResponses(all), nil
}

func mapResponses(found []*User) []*UserResponse {
	return slice.Map(found, toResponse)
}
