package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/albaranes/albaranes-api/internal/application/auth"
	"github.com/albaranes/albaranes-api/internal/application/dto"
	"github.com/albaranes/albaranes-api/internal/application/ports"
	"github.com/albaranes/albaranes-api/internal/domain"
	"github.com/albaranes/albaranes-api/internal/domain/entity"
	"github.com/albaranes/albaranes-api/internal/domain/repository"
)

// UserUseCase casos de uso de perfil: datos personales, empresa, logo y baja.
type UserUseCase struct {
	users  repository.UserRepository
	pinner ports.Pinner
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository, pinner ports.Pinner) *UserUseCase {
	return &UserUseCase{users: users, pinner: pinner}
}

// GetProfile devuelve el perfil de la cuenta autenticada.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return auth.ToUserResponse(user), nil
}

// UpdatePersonal actualiza nombre, apellidos y NIF.
func (uc *UserUseCase) UpdatePersonal(ctx context.Context, userID string, in dto.UpdatePersonalRequest) (*dto.UserResponse, error) {
	if in.Name == "" || in.Surname == "" || in.NIF == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	user.Name = in.Name
	user.Surname = in.Surname
	user.NIF = in.NIF
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// UpdateCompany actualiza el perfil de empresa según la variante de rol:
// un autónomo refleja sus datos personales, el resto fusiona los campos
// enviados (entity.CompanyForRole).
func (uc *UserUseCase) UpdateCompany(ctx context.Context, userID string, in dto.UpdateCompanyRequest) (*dto.AckResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	company := entity.CompanyForRole(user, entity.Company{
		Name:     in.Company.Name,
		CIF:      in.Company.CIF,
		Street:   in.Company.Street,
		Number:   in.Company.Number,
		Postal:   in.Company.Postal,
		City:     in.Company.City,
		Province: in.Company.Province,
	})
	user.Company = &company
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.AckResponse{Acknowledged: true}, nil
}

// UpdateLogo sube la imagen al servicio de pinning y persiste la URL devuelta.
func (uc *UserUseCase) UpdateLogo(ctx context.Context, userID string, data []byte, filename string) (*dto.LogoResponse, error) {
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	url, err := uc.pinner.Pin(ctx, data, fmt.Sprintf("logo_%s_%s", userID, filename))
	if err != nil {
		return nil, fmt.Errorf("%w: subir logo: %v", domain.ErrUpstream, err)
	}
	user.LogoURL = url
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.LogoResponse{Status: "OK", LogoURL: url}, nil
}

// DeleteAccount archiva la cuenta (soft) o la elimina físicamente.
func (uc *UserUseCase) DeleteAccount(ctx context.Context, userID string, soft bool) (*dto.StatusResponse, error) {
	if soft {
		if err := uc.users.Archive(ctx, userID); err != nil {
			return nil, err
		}
		return &dto.StatusResponse{Status: "OK", Message: "USER_ACCOUNT_DEACTIVATED"}, nil
	}
	if err := uc.users.HardDelete(ctx, userID); err != nil {
		return nil, err
	}
	return &dto.StatusResponse{Status: "OK", Message: "USER_ACCOUNT_PERMANENTLY_DELETED"}, nil
}
