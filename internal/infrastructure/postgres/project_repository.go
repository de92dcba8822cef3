package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/albaranes/albaranes-api/internal/domain"
	"github.com/albaranes/albaranes-api/internal/domain/entity"
	"github.com/albaranes/albaranes-api/internal/domain/repository"
)

// ProjectRepository implementación PostgreSQL de repository.ProjectRepository.
type ProjectRepository struct {
	archivableTable
}

// NewProjectRepository crea el repositorio de proyectos.
func NewProjectRepository(q Querier) *ProjectRepository {
	return &ProjectRepository{archivableTable{q: q, table: "projects"}}
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)

const projectColumns = `id, user_id, client_id, name, project_code, code, address,
	begin_date, end_date, notes, is_active, unit_prices, amount,
	created_at, updated_at, deleted, deleted_at`

// Create inserta el proyecto. El índice único parcial
// (user_id, client_id, project_code) sobre filas activas con código no vacío
// respalda el pre-check del caso de uso.
func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	address, err := toJSON(p.Address)
	if err != nil {
		return err
	}
	prices, err := toJSON(p.UnitPrices)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err = r.q.Exec(ctx, `
		INSERT INTO projects (
			id, user_id, client_id, name, project_code, code, address,
			begin_date, end_date, notes, is_active, unit_prices, amount,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		p.ID, p.UserID, p.ClientID, p.Name, p.ProjectCode, p.Code, address,
		p.Begin, p.End, p.Notes, p.IsActive, prices, nullDecimal(p.Amount),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProjectCodeExists
		}
		return fmt.Errorf("insertar proyecto: %w", err)
	}
	return nil
}

// GetByID busca en visibilidad por defecto. Devuelve (nil, nil) si no existe.
func (r *ProjectRepository) GetByID(ctx context.Context, id, userID string) (*entity.Project, error) {
	return r.getOne(ctx, `WHERE id = $1 AND user_id = $2 AND NOT deleted`, id, userID)
}

// GetByIDIncludingArchived busca también entre archivados.
func (r *ProjectRepository) GetByIDIncludingArchived(ctx context.Context, id, userID string) (*entity.Project, error) {
	return r.getOne(ctx, `WHERE id = $1 AND user_id = $2`, id, userID)
}

// GetByCode busca un proyecto activo con ese projectCode dentro de
// (userID, clientID); excludeID permite ignorar el propio registro en updates.
// Un código vacío nunca colisiona.
func (r *ProjectRepository) GetByCode(ctx context.Context, userID, clientID, code, excludeID string) (*entity.Project, error) {
	if code == "" {
		return nil, nil
	}
	return r.getOne(ctx, `
		WHERE user_id = $1 AND client_id = $2 AND project_code = $3
		  AND NOT deleted AND ($4 = '' OR id <> $4)`,
		userID, clientID, code, excludeID)
}

// ListByUser lista proyectos activos del usuario; sort "asc"/"desc" ordena
// por fecha de creación.
func (r *ProjectRepository) ListByUser(ctx context.Context, userID, sort string) ([]*entity.Project, error) {
	return r.list(ctx, `WHERE user_id = $1 AND NOT deleted`+orderByCreated(sort), userID)
}

// ListByClient lista proyectos activos del usuario para un cliente.
func (r *ProjectRepository) ListByClient(ctx context.Context, userID, clientID, sort string) ([]*entity.Project, error) {
	return r.list(ctx,
		`WHERE user_id = $1 AND client_id = $2 AND NOT deleted`+orderByCreated(sort),
		userID, clientID)
}

// ListArchivedByUser lista proyectos archivados del usuario.
func (r *ProjectRepository) ListArchivedByUser(ctx context.Context, userID string) ([]*entity.Project, error) {
	return r.list(ctx, `WHERE user_id = $1 AND deleted ORDER BY deleted_at`, userID)
}

// ListArchivedByClient lista proyectos archivados del usuario para un cliente.
func (r *ProjectRepository) ListArchivedByClient(ctx context.Context, userID, clientID string) ([]*entity.Project, error) {
	return r.list(ctx,
		`WHERE user_id = $1 AND client_id = $2 AND deleted ORDER BY deleted_at`,
		userID, clientID)
}

// Update persiste el estado completo de un proyecto activo.
func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	address, err := toJSON(p.Address)
	if err != nil {
		return err
	}
	prices, err := toJSON(p.UnitPrices)
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()

	tag, err := r.q.Exec(ctx, `
		UPDATE projects SET
			client_id = $3, name = $4, project_code = $5, code = $6, address = $7,
			begin_date = $8, end_date = $9, notes = $10, is_active = $11,
			unit_prices = $12, amount = $13, updated_at = $14
		WHERE id = $1 AND user_id = $2 AND NOT deleted`,
		p.ID, p.UserID, p.ClientID, p.Name, p.ProjectCode, p.Code, address,
		p.Begin, p.End, p.Notes, p.IsActive,
		prices, nullDecimal(p.Amount), p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProjectCodeExists
		}
		return fmt.Errorf("actualizar proyecto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive cambia la bandera de actividad de un proyecto no archivado.
func (r *ProjectRepository) SetActive(ctx context.Context, id, userID string, active bool) error {
	return r.setField(ctx, `is_active = $3`, id, userID, active)
}

// SetUnitPrices reemplaza la lista de tarifas de un proyecto no archivado.
func (r *ProjectRepository) SetUnitPrices(ctx context.Context, id, userID string, prices []entity.UnitPrice) error {
	raw, err := toJSON(prices)
	if err != nil {
		return err
	}
	return r.setField(ctx, `unit_prices = $3`, id, userID, raw)
}

// SetAmount fija el importe total de un proyecto no archivado.
func (r *ProjectRepository) SetAmount(ctx context.Context, id, userID string, amount decimal.Decimal) error {
	return r.setField(ctx, `amount = $3`, id, userID, amount)
}

func (r *ProjectRepository) setField(ctx context.Context, assign, id, userID string, value any) error {
	sql := fmt.Sprintf(
		`UPDATE projects SET %s, updated_at = now() WHERE id = $1 AND user_id = $2 AND NOT deleted`,
		assign)
	tag, err := r.q.Exec(ctx, sql, id, userID, value)
	if err != nil {
		return fmt.Errorf("actualizar proyecto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func orderByCreated(sort string) string {
	switch sort {
	case "asc":
		return ` ORDER BY created_at ASC`
	case "desc":
		return ` ORDER BY created_at DESC`
	default:
		return ``
	}
}

func (r *ProjectRepository) getOne(ctx context.Context, where string, args ...any) (*entity.Project, error) {
	row := r.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects `+where, args...)
	p, err := scanProject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consultar proyecto: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) list(ctx context.Context, where string, args ...any) ([]*entity.Project, error) {
	rows, err := r.q.Query(ctx, `SELECT `+projectColumns+` FROM projects `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("listar proyectos: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("escanear proyecto: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var (
		p          entity.Project
		addressRaw []byte
		pricesRaw  []byte
		amount     decimal.NullDecimal
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.ClientID, &p.Name, &p.ProjectCode, &p.Code, &addressRaw,
		&p.Begin, &p.End, &p.Notes, &p.IsActive, &pricesRaw, &amount,
		&p.CreatedAt, &p.UpdatedAt, &p.Deleted, &p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if jsonPresent(addressRaw) {
		var a entity.Address
		if err := fromJSON(addressRaw, &a); err != nil {
			return nil, err
		}
		p.Address = &a
	}
	if err := fromJSON(pricesRaw, &p.UnitPrices); err != nil {
		return nil, err
	}
	p.Amount = decimalPtr(amount)
	return &p, nil
}
