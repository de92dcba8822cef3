package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albaranes/albaranes-api/internal/domain"
	"github.com/albaranes/albaranes-api/internal/domain/entity"
	"github.com/albaranes/albaranes-api/internal/domain/repository"
)

// ClientRepository implementación PostgreSQL de repository.ClientRepository.
type ClientRepository struct {
	archivableTable
}

// NewClientRepository crea el repositorio de clientes.
func NewClientRepository(q Querier) *ClientRepository {
	return &ClientRepository{archivableTable{q: q, table: "clients"}}
}

var _ repository.ClientRepository = (*ClientRepository)(nil)

const clientColumns = `id, user_id, name, cif, address, created_at, updated_at, deleted, deleted_at`

// Create inserta el cliente. El índice único parcial (user_id, cif) sobre
// filas no archivadas cierra la carrera que el pre-check del caso de uso no
// puede cubrir.
func (r *ClientRepository) Create(ctx context.Context, c *entity.Client) error {
	address, err := toJSON(c.Address)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err = r.q.Exec(ctx, `
		INSERT INTO clients (id, user_id, name, cif, address, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.UserID, c.Name, c.CIF, address, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrClientCIFExists
		}
		return fmt.Errorf("insertar cliente: %w", err)
	}
	return nil
}

// GetByID busca en visibilidad por defecto. Devuelve (nil, nil) si no existe.
func (r *ClientRepository) GetByID(ctx context.Context, id, userID string) (*entity.Client, error) {
	return r.getOne(ctx, `WHERE id = $1 AND user_id = $2 AND NOT deleted`, id, userID)
}

// GetByIDIncludingArchived busca también entre archivados.
func (r *ClientRepository) GetByIDIncludingArchived(ctx context.Context, id, userID string) (*entity.Client, error) {
	return r.getOne(ctx, `WHERE id = $1 AND user_id = $2`, id, userID)
}

// GetByCIF busca un cliente activo del usuario con ese CIF; excludeID permite
// ignorar el propio registro en updates.
func (r *ClientRepository) GetByCIF(ctx context.Context, userID, cif, excludeID string) (*entity.Client, error) {
	return r.getOne(ctx,
		`WHERE user_id = $1 AND cif = $2 AND NOT deleted AND ($3 = '' OR id <> $3)`,
		userID, cif, excludeID)
}

// ListByUser lista clientes activos del usuario.
func (r *ClientRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Client, error) {
	return r.list(ctx, `WHERE user_id = $1 AND NOT deleted ORDER BY created_at`, userID)
}

// ListArchivedByUser lista clientes archivados del usuario.
func (r *ClientRepository) ListArchivedByUser(ctx context.Context, userID string) ([]*entity.Client, error) {
	return r.list(ctx, `WHERE user_id = $1 AND deleted ORDER BY deleted_at`, userID)
}

// Update persiste nombre, CIF y dirección de un cliente activo.
func (r *ClientRepository) Update(ctx context.Context, c *entity.Client) error {
	address, err := toJSON(c.Address)
	if err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()

	tag, err := r.q.Exec(ctx, `
		UPDATE clients SET name = $3, cif = $4, address = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2 AND NOT deleted`,
		c.ID, c.UserID, c.Name, c.CIF, address, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrClientCIFExists
		}
		return fmt.Errorf("actualizar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) getOne(ctx context.Context, where string, args ...any) (*entity.Client, error) {
	row := r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients `+where, args...)
	c, err := scanClient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consultar cliente: %w", err)
	}
	return c, nil
}

func (r *ClientRepository) list(ctx context.Context, where string, args ...any) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, `SELECT `+clientColumns+` FROM clients `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("escanear cliente: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var (
		c          entity.Client
		addressRaw []byte
	)
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.CIF, &addressRaw,
		&c.CreatedAt, &c.UpdatedAt, &c.Deleted, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if jsonPresent(addressRaw) {
		var a entity.Address
		if err := fromJSON(addressRaw, &a); err != nil {
			return nil, err
		}
		c.Address = &a
	}
	return &c, nil
}
