package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/patient-portal/internal/apperror"
	"github.com/jwalitptl/patient-portal/internal/model"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (f *fakeUserRepo) CreateWithPatientDetails(ctx context.Context, user *model.User, details *model.PatientDetails) error {
	return nil
}

func (f *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperror.NotFound()
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, apperror.NotFound()
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*model.User, error) { return nil, nil }

type fakeSessionStore struct {
	created   []model.Identity
	destroyed []string
}

func (f *fakeSessionStore) Create(ctx context.Context, ident model.Identity) (string, error) {
	f.created = append(f.created, ident)
	return "token-" + ident.UserID.String(), nil
}

func (f *fakeSessionStore) Identity(ctx context.Context, token string) (*model.Identity, error) {
	for _, ident := range f.created {
		if token == "token-"+ident.UserID.String() {
			return &ident, nil
		}
	}
	return nil, apperror.Authentication()
}

func (f *fakeSessionStore) Destroy(ctx context.Context, token string) error {
	f.destroyed = append(f.destroyed, token)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *fakeSessionStore, *model.User) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("doctor123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Username:     "dr_smith",
		PasswordHash: string(hash),
		FullName:     "Dr. Sarah Smith",
		RoleName:     model.RoleDoctor,
	}

	repo := &fakeUserRepo{users: map[string]*model.User{"dr_smith": user}}
	sessions := &fakeSessionStore{}
	return NewService(repo, sessions), repo, sessions, user
}

func TestLoginSuccess(t *testing.T) {
	svc, _, sessions, user := newTestService(t)

	token, ident, err := svc.Login(context.Background(), "dr_smith", "doctor123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, ident.UserID)
	assert.Equal(t, model.RoleDoctor, ident.Role)
	assert.Equal(t, "Dr. Sarah Smith", ident.FullName)
	require.Len(t, sessions.created, 1)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, sessions, _ := newTestService(t)
	ctx := context.Background()

	_, _, wrongPassword := svc.Login(ctx, "dr_smith", "wrong")
	_, _, unknownUser := svc.Login(ctx, "no_such_user", "doctor123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error(),
		"callers must not be able to tell whether the username exists")
	assert.True(t, apperror.IsAuthentication(wrongPassword))
	assert.True(t, apperror.IsAuthentication(unknownUser))
	assert.Empty(t, sessions.created, "no session on failed login")
}

func TestLogoutDestroysSession(t *testing.T) {
	svc, _, sessions, _ := newTestService(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "dr_smith", "doctor123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	assert.Equal(t, []string{token}, sessions.destroyed)
}

func TestIdentityRoundTrip(t *testing.T) {
	svc, _, _, user := newTestService(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "dr_smith", "doctor123")
	require.NoError(t, err)

	ident, err := svc.Identity(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, ident.UserID)

	_, err = svc.Identity(ctx, "garbage")
	assert.True(t, apperror.IsAuthentication(err))
}
