package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/house7784/golf-trip-app/models"
	"github.com/house7784/golf-trip-app/repositories"
)

type fakeUserRepo struct {
	users []*models.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = len(r.users) + 1
	copied := *user
	r.users = append(r.users, &copied)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) ListByIDs(_ context.Context, ids []int) ([]*models.User, error) {
	out := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if u, err := r.FindByID(nil, id); err == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = user
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateHandicapIndex(_ context.Context, id int, handicapIndex float64) error {
	for _, u := range r.users {
		if u.ID == id {
			u.HandicapIndex = handicapIndex
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func TestRegisterAndLogin(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		FullName:      "Alice Example",
		Email:         "  Alice@Example.com ",
		Password:      "long enough",
		HandicapIndex: 12.4,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, models.RolePlayer, user.Role)

	logged, err := svc.Login(context.Background(), LoginInput{
		Email:    "ALICE@example.com",
		Password: "long enough",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{})

	_, err := svc.Register(context.Background(), RegisterInput{FullName: "Bob", Email: "not-an-email", Password: "long enough"})
	require.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Register(context.Background(), RegisterInput{FullName: "Bob", Email: "bob@example.com", Password: "short"})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{})

	_, err := svc.Register(context.Background(), RegisterInput{FullName: "Bob", Email: "bob@example.com", Password: "long enough"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{FullName: "Robert", Email: "bob@example.com", Password: "long enough"})
	require.ErrorIs(t, err, ErrUserEmailConflict)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{})

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(context.Background(), RegisterInput{FullName: "Bob", Email: "bob@example.com", Password: "long enough"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{Email: "bob@example.com", Password: "wrong password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
