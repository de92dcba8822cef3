package repository

import (
	"context"

	"github.com/albaranes/albaranes-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
//
// Los finders operan en visibilidad por defecto (cuentas no archivadas);
// una cuenta archivada es invisible para login y para el middleware de auth.
type UserRepository interface {
	// Create persiste un usuario nuevo. Si ya existe una cuenta activa y
	// verificada con ese email devuelve domain.ErrEmailExists.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByResetToken(ctx context.Context, token string) (*entity.User, error)
	GetByInvitationToken(ctx context.Context, token string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// Archive marca la cuenta como borrada lógicamente.
	Archive(ctx context.Context, id string) error
	// HardDelete elimina la cuenta físicamente.
	HardDelete(ctx context.Context, id string) error
}
