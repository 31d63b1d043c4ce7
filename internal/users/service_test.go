package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/library/internal/platform/apperr"
	"github.com/taibuivan/library/internal/users"
)

// memoryRepository is an in-memory [users.Repository] that counts calls.
type memoryRepository struct {
	items []*users.User
	calls int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{}
}

func (repository *memoryRepository) Create(_ context.Context, user *users.User) (int, error) {
	repository.calls++
	user.ID = len(repository.items) + 1
	stored := *user
	repository.items = append(repository.items, &stored)
	return user.ID, nil
}

func (repository *memoryRepository) GetByID(_ context.Context, id int) (*users.User, error) {
	repository.calls++
	for _, user := range repository.items {
		if user.ID == id {
			found := *user
			return &found, nil
		}
	}
	return nil, nil
}

func (repository *memoryRepository) Exists(ctx context.Context, id int) (bool, error) {
	user, err := repository.GetByID(ctx, id)
	return user != nil, err
}

func (repository *memoryRepository) GetByName(_ context.Context, name string) ([]*users.User, error) {
	repository.calls++
	var found []*users.User
	for _, user := range repository.items {
		if user.Name == name {
			found = append(found, user)
		}
	}
	return found, nil
}

func (repository *memoryRepository) GetAll(_ context.Context) ([]*users.User, error) {
	repository.calls++
	return repository.items, nil
}

func TestService_CreateUser_Invalid(t *testing.T) {
	repository := newMemoryRepository()
	service := users.NewService(repository, discardLogger())

	_, err := service.CreateUser(context.Background(), users.CreateUserRequest{Name: " "})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Zero(t, repository.calls)
}

func TestService_GetUsersByName_BlankSkipsStorage(t *testing.T) {
	repository := newMemoryRepository()
	service := users.NewService(repository, discardLogger())

	for _, name := range []string{"", "  \t"} {
		_, err := service.GetUsersByName(context.Background(), name)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	}
	assert.Zero(t, repository.calls)
}

func TestService_GetUsersByName_NoMatch(t *testing.T) {
	service := users.NewService(newMemoryRepository(), discardLogger())

	found, err := service.GetUsersByName(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestService_GetUsersByName_Normalised(t *testing.T) {
	service := users.NewService(newMemoryRepository(), discardLogger())
	ctx := context.Background()

	_, err := service.CreateUser(ctx, users.CreateUserRequest{Name: "Jose\u0301"})
	require.NoError(t, err)

	found, err := service.GetUsersByName(ctx, "Jos\u00e9")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
