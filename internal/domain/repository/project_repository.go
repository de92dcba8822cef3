package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/albaranes/albaranes-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para Project.
// Todos los finders están acotados al usuario propietario; los listados por
// cliente asumen que el caller ya verificó la propiedad del cliente.
type ProjectRepository interface {
	Archivable

	// Create persiste un proyecto. Traduce la violación del índice único
	// parcial (user_id, client_id, project_code) a domain.ErrProjectCodeExists.
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id, userID string) (*entity.Project, error)
	GetByIDIncludingArchived(ctx context.Context, id, userID string) (*entity.Project, error)
	// GetByCode busca un proyecto activo con ese projectCode dentro de
	// (userID, clientID), excluyendo opcionalmente un ID.
	GetByCode(ctx context.Context, userID, clientID, code, excludeID string) (*entity.Project, error)
	// ListByUser lista proyectos activos; sort "asc"/"desc" ordena por
	// fecha de creación, vacío deja el orden del almacén.
	ListByUser(ctx context.Context, userID, sort string) ([]*entity.Project, error)
	ListByClient(ctx context.Context, userID, clientID, sort string) ([]*entity.Project, error)
	ListArchivedByUser(ctx context.Context, userID string) ([]*entity.Project, error)
	ListArchivedByClient(ctx context.Context, userID, clientID string) ([]*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error

	// Updates atómicos por filtro (id + propietario), domain.ErrNotFound si
	// el proyecto no existe en visibilidad por defecto.
	SetActive(ctx context.Context, id, userID string, active bool) error
	SetUnitPrices(ctx context.Context, id, userID string, prices []entity.UnitPrice) error
	SetAmount(ctx context.Context, id, userID string, amount decimal.Decimal) error
}
