package repository

import (
	"context"

	"github.com/albaranes/albaranes-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
// Todos los finders están acotados al usuario propietario.
type ClientRepository interface {
	Archivable

	// Create persiste un cliente. Traduce la violación del índice único
	// parcial (user_id, cif) a domain.ErrClientCIFExists.
	Create(ctx context.Context, client *entity.Client) error
	// GetByID busca en visibilidad por defecto (no archivados).
	GetByID(ctx context.Context, id, userID string) (*entity.Client, error)
	// GetByIDIncludingArchived busca también entre archivados (hard delete).
	GetByIDIncludingArchived(ctx context.Context, id, userID string) (*entity.Client, error)
	// GetByCIF busca un cliente activo del usuario con ese CIF, excluyendo
	// opcionalmente un ID (pre-check de unicidad en updates).
	GetByCIF(ctx context.Context, userID, cif, excludeID string) (*entity.Client, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Client, error)
	ListArchivedByUser(ctx context.Context, userID string) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
}
