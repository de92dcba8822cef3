package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albaranes/albaranes-api/internal/application/dto"
	"github.com/albaranes/albaranes-api/internal/application/usecase"
	"github.com/albaranes/albaranes-api/internal/domain"
	"github.com/albaranes/albaranes-api/internal/domain/entity"
)

func newUserFixture(t *testing.T, role string) (*usecase.UserUseCase, *fakePinner) {
	t.Helper()
	users := newMemUsers()
	pinner := &fakePinner{}
	require.NoError(t, users.Create(context.Background(), &entity.User{
		ID: ownerA, Email: "a@test.local", Verified: true, Role: role,
		Name: "Ana", Surname: "García", NIF: "11111111A",
	}))
	return usecase.NewUserUseCase(users, pinner), pinner
}

func TestUserUpdatePersonal_Validaciones(t *testing.T) {
	uc, _ := newUserFixture(t, entity.RoleUser)
	ctx := context.Background()

	_, err := uc.UpdatePersonal(ctx, ownerA, dto.UpdatePersonalRequest{Name: "Ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.UpdatePersonal(ctx, ownerA, dto.UpdatePersonalRequest{
		Name: "Ana María", Surname: "García López", NIF: "22222222B",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.Name)
	assert.Equal(t, "22222222B", got.NIF)
}

func TestUserUpdateCompany_AutonomoReflejaSusDatos(t *testing.T) {
	uc, _ := newUserFixture(t, entity.RoleAutonomo)
	ctx := context.Background()

	_, err := uc.UpdateCompany(ctx, ownerA, dto.UpdateCompanyRequest{
		Company: dto.CompanyDTO{Name: "Ignorado SL", CIF: "B99999999", City: "Madrid"},
	})
	require.NoError(t, err)

	profile, err := uc.GetProfile(ctx, ownerA)
	require.NoError(t, err)
	require.NotNil(t, profile.Company)
	assert.Equal(t, "Ana", profile.Company.Name)
	assert.Equal(t, "11111111A", profile.Company.CIF)
	assert.Equal(t, "Madrid", profile.Company.City)
}

func TestUserUpdateLogo_SubeYPersisteURL(t *testing.T) {
	uc, pinner := newUserFixture(t, entity.RoleUser)
	ctx := context.Background()

	_, err := uc.UpdateLogo(ctx, ownerA, nil, "logo.png")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.UpdateLogo(ctx, ownerA, []byte("png-bytes"), "logo.png")
	require.NoError(t, err)
	assert.Equal(t, "OK", out.Status)
	assert.NotEmpty(t, out.LogoURL)
	require.Len(t, pinner.uploads, 1)

	profile, err := uc.GetProfile(ctx, ownerA)
	require.NoError(t, err)
	assert.Equal(t, out.LogoURL, profile.LogoURL)
}

func TestUserUpdateLogo_FalloDelPinnerEsUpstream(t *testing.T) {
	users := newMemUsers()
	require.NoError(t, users.Create(context.Background(), &entity.User{
		ID: ownerA, Email: "a@test.local", Verified: true, Role: entity.RoleUser,
	}))
	uc := usecase.NewUserUseCase(users, &fakePinner{fail: true})

	_, err := uc.UpdateLogo(context.Background(), ownerA, []byte("png-bytes"), "logo.png")
	assert.ErrorIs(t, err, domain.ErrUpstream)

	// El perfil no queda a medias: sin URL persistida.
	profile, err := uc.GetProfile(context.Background(), ownerA)
	require.NoError(t, err)
	assert.Empty(t, profile.LogoURL)
}

func TestUserDeleteAccount_SoftYHard(t *testing.T) {
	uc, _ := newUserFixture(t, entity.RoleUser)
	ctx := context.Background()

	out, err := uc.DeleteAccount(ctx, ownerA, true)
	require.NoError(t, err)
	assert.Equal(t, "USER_ACCOUNT_DEACTIVATED", out.Message)

	// Archivada: invisible para el perfil.
	_, err = uc.GetProfile(ctx, ownerA)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Archivar de nuevo no encuentra la cuenta.
	_, err = uc.DeleteAccount(ctx, ownerA, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El borrado físico sigue disponible sobre la cuenta archivada.
	out, err = uc.DeleteAccount(ctx, ownerA, false)
	require.NoError(t, err)
	assert.Equal(t, "USER_ACCOUNT_PERMANENTLY_DELETED", out.Message)
}
