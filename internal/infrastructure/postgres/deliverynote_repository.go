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

// DeliveryNoteRepository implementación PostgreSQL de
// repository.DeliveryNoteRepository.
type DeliveryNoteRepository struct {
	q Querier
}

// NewDeliveryNoteRepository crea el repositorio de albaranes.
func NewDeliveryNoteRepository(q Querier) *DeliveryNoteRepository {
	return &DeliveryNoteRepository{q: q}
}

var _ repository.DeliveryNoteRepository = (*DeliveryNoteRepository)(nil)

const noteColumns = `id, user_id, client_id, project_id, format, work_date,
	description, hours, quantity, sign_url, is_signed,
	observer_name, observer_nif, observations,
	created_at, updated_at, deleted, deleted_at`

// Create inserta el albarán.
func (r *DeliveryNoteRepository) Create(ctx context.Context, n *entity.DeliveryNote) error {
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	_, err := r.q.Exec(ctx, `
		INSERT INTO delivery_notes (
			id, user_id, client_id, project_id, format, work_date,
			description, hours, quantity, sign_url, is_signed,
			observer_name, observer_nif, observations,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		n.ID, n.UserID, n.ClientID, n.ProjectID, n.Format, n.WorkDate,
		n.Description, nullDecimal(n.Hours), nullDecimal(n.Quantity), n.SignURL, n.IsSigned,
		n.ObserverName, n.ObserverNIF, n.Observations,
		n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insertar albarán: %w", err)
	}
	return nil
}

// GetByID busca en visibilidad por defecto. Devuelve (nil, nil) si no existe.
func (r *DeliveryNoteRepository) GetByID(ctx context.Context, id, userID string) (*entity.DeliveryNote, error) {
	return r.getOne(ctx, `WHERE id = $1 AND user_id = $2 AND NOT deleted`, id, userID)
}

// GetByIDIncludingArchived busca también entre archivados.
func (r *DeliveryNoteRepository) GetByIDIncludingArchived(ctx context.Context, id, userID string) (*entity.DeliveryNote, error) {
	return r.getOne(ctx, `WHERE id = $1 AND user_id = $2`, id, userID)
}

// ListByUser lista los albaranes activos del usuario.
func (r *DeliveryNoteRepository) ListByUser(ctx context.Context, userID string) ([]*entity.DeliveryNote, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+noteColumns+` FROM delivery_notes WHERE user_id = $1 AND NOT deleted ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("listar albaranes: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.DeliveryNote, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("escanear albarán: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// SetSigned marca la nota como firmada. El predicado NOT is_signed hace la
// transición de un solo sentido a nivel de fila: una nota ya firmada no se
// vuelve a tocar.
func (r *DeliveryNoteRepository) SetSigned(ctx context.Context, id, userID, signURL string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE delivery_notes
		SET is_signed = TRUE, sign_url = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND NOT deleted AND NOT is_signed`,
		id, userID, signURL)
	if err != nil {
		return fmt.Errorf("firmar albarán: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HardDelete elimina físicamente la nota. El DELETE lleva el predicado
// NOT is_signed para que una nota firmada nunca pueda borrarse, ni siquiera
// en carrera con una firma concurrente.
func (r *DeliveryNoteRepository) HardDelete(ctx context.Context, id, userID string) error {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM delivery_notes WHERE id = $1 AND user_id = $2 AND NOT is_signed`,
		id, userID)
	if err != nil {
		return fmt.Errorf("eliminar albarán: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Distinguir "no existe" de "existe pero está firmada".
	var signed bool
	err = r.q.QueryRow(ctx,
		`SELECT is_signed FROM delivery_notes WHERE id = $1 AND user_id = $2`,
		id, userID).Scan(&signed)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("consultar albarán: %w", err)
	}
	if signed {
		return domain.ErrNoteSigned
	}
	return domain.ErrNotFound
}

func (r *DeliveryNoteRepository) getOne(ctx context.Context, where string, args ...any) (*entity.DeliveryNote, error) {
	row := r.q.QueryRow(ctx, `SELECT `+noteColumns+` FROM delivery_notes `+where, args...)
	n, err := scanNote(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consultar albarán: %w", err)
	}
	return n, nil
}

func scanNote(row pgx.Row) (*entity.DeliveryNote, error) {
	var (
		n        entity.DeliveryNote
		hours    decimal.NullDecimal
		quantity decimal.NullDecimal
	)
	err := row.Scan(
		&n.ID, &n.UserID, &n.ClientID, &n.ProjectID, &n.Format, &n.WorkDate,
		&n.Description, &hours, &quantity, &n.SignURL, &n.IsSigned,
		&n.ObserverName, &n.ObserverNIF, &n.Observations,
		&n.CreatedAt, &n.UpdatedAt, &n.Deleted, &n.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	n.Hours = decimalPtr(hours)
	n.Quantity = decimalPtr(quantity)
	return &n, nil
}
