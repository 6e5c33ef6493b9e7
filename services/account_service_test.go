package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hotel-pms/models"
	"hotel-pms/repository/memstore"
	"hotel-pms/utils"
)

const testSecret = "test-secret"

func setupInput() SetupInput {
	return SetupInput{
		HotelName:     "Lagoon Suites",
		Address:       "12 Marina Rd",
		AdminName:     "Ada Obi",
		AdminEmail:    "Ada@Example.com",
		AdminPassword: "correct-horse",
	}
}

func TestSetupRunsOnce(t *testing.T) {
	ctx := context.Background()
	svc := NewAccountService(memstore.New(), nil, zap.NewNop(), testSecret, time.Hour)

	required, err := svc.SetupRequired(ctx)
	require.NoError(t, err)
	assert.True(t, required)

	out, err := svc.Setup(ctx, setupInput())
	require.NoError(t, err)
	assert.Equal(t, "Lagoon Suites", out.Organization.Name)
	assert.Equal(t, models.RoleAdmin, out.Admin.Role)
	assert.Equal(t, "ada@example.com", out.Admin.Email)
	assert.Equal(t, out.Organization.ID, out.Admin.OrganizationID)
	assert.NotEqual(t, "correct-horse", out.Admin.PasswordHash)

	required, err = svc.SetupRequired(ctx)
	require.NoError(t, err)
	assert.False(t, required)

	_, err = svc.Setup(ctx, setupInput())
	requireKind(t, err, KindConflict)
}

func TestSetupValidation(t *testing.T) {
	svc := NewAccountService(memstore.New(), nil, zap.NewNop(), testSecret, time.Hour)

	in := setupInput()
	in.AdminPassword = "short"
	_, err := svc.Setup(context.Background(), in)
	requireKind(t, err, KindInvalidInput)

	in = setupInput()
	in.AdminEmail = "not-an-email"
	_, err = svc.Setup(context.Background(), in)
	requireKind(t, err, KindInvalidInput)

	in = setupInput()
	in.HotelName = " "
	_, err = svc.Setup(context.Background(), in)
	requireKind(t, err, KindInvalidInput)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAccountService(memstore.New(), nil, zap.NewNop(), testSecret, time.Hour)
	out, err := svc.Setup(ctx, setupInput())
	require.NoError(t, err)

	res, err := svc.Login(ctx, "ADA@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, out.Admin.ID, res.User.ID)

	claims, err := utils.ParseAccessToken(testSecret, res.AccessToken.Token)
	require.NoError(t, err)
	assert.Equal(t, out.Admin.ID, claims.Subject)
	assert.Equal(t, out.Organization.ID, claims.OrganizationID)
	assert.Equal(t, "admin", claims.Role)

	_, err = svc.Login(ctx, "ada@example.com", "wrong-password")
	requireKind(t, err, KindUnauthorized)

	_, err = svc.Login(ctx, "nobody@example.com", "correct-horse")
	requireKind(t, err, KindUnauthorized)

	_, err = svc.Login(ctx, "", "")
	requireKind(t, err, KindInvalidInput)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc := NewAccountService(memstore.New(), nil, zap.NewNop(), testSecret, time.Hour)
	out, err := svc.Setup(ctx, setupInput())
	require.NoError(t, err)
	scope := Scope{TenantID: out.Organization.ID, UserID: out.Admin.ID}

	user, err := svc.CreateUser(ctx, scope, CreateUserInput{
		Email:    "desk@example.com",
		Password: "frontdesk-1",
		FullName: "Desk One",
		Role:     models.RoleFrontdesk,
	})
	require.NoError(t, err)
	assert.True(t, user.MustChangePassword)
	assert.Equal(t, out.Organization.ID, user.OrganizationID)

	_, err = svc.CreateUser(ctx, scope, CreateUserInput{Email: "DESK@example.com", Password: "frontdesk-2", Role: models.RoleFrontdesk})
	requireKind(t, err, KindConflict)

	_, err = svc.CreateUser(ctx, scope, CreateUserInput{Email: "chef@example.com", Password: "kitchen-123", Role: "chef"})
	requireKind(t, err, KindInvalidInput)

	res, err := svc.Login(ctx, "desk@example.com", "frontdesk-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleFrontdesk, res.User.Role)
}
