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

// UserRepository implementación PostgreSQL de repository.UserRepository.
type UserRepository struct {
	q Querier
}

// NewUserRepository crea el repositorio de usuarios.
func NewUserRepository(q Querier) *UserRepository {
	return &UserRepository{q: q}
}

var _ repository.UserRepository = (*UserRepository)(nil)

const userColumns = `id, email, password_hash, verification_code, verified, role,
	name, surname, nif, company, logo_url,
	reset_token, reset_expires, invitation_token, invitation_expires, invited_by,
	created_at, updated_at, deleted, deleted_at`

// Create inserta el usuario. El índice único parcial sobre lower(email)
// (cuentas activas y verificadas) respalda el pre-check del caso de uso.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	company, err := toJSON(u.Company)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err = r.q.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, verification_code, verified, role,
			name, surname, nif, company, logo_url,
			reset_token, reset_expires, invitation_token, invitation_expires, invited_by,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		u.ID, u.Email, u.PasswordHash, u.VerificationCode, u.Verified, u.Role,
		u.Name, u.Surname, u.NIF, company, u.LogoURL,
		u.ResetToken, u.ResetExpires, u.InvitationToken, u.InvitationExpires, u.InvitedBy,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("insertar usuario: %w", err)
	}
	return nil
}

// GetByID busca por ID entre cuentas no archivadas. Devuelve (nil, nil) si no existe.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE id = $1 AND NOT deleted`, id)
}

// GetByEmail busca por email (case-insensitive) entre cuentas no archivadas.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx,
		`WHERE lower(email) = lower($1) AND NOT deleted ORDER BY created_at DESC LIMIT 1`, email)
}

// GetByResetToken busca por token de reseteo de contraseña.
func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}
	return r.getOne(ctx, `WHERE reset_token = $1 AND NOT deleted`, token)
}

// GetByInvitationToken busca por token de invitación.
func (r *UserRepository) GetByInvitationToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}
	return r.getOne(ctx, `WHERE invitation_token = $1 AND NOT deleted`, token)
}

// Update persiste el estado completo del usuario.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	company, err := toJSON(u.Company)
	if err != nil {
		return err
	}
	u.UpdatedAt = time.Now().UTC()

	tag, err := r.q.Exec(ctx, `
		UPDATE users SET
			email = $2, password_hash = $3, verification_code = $4, verified = $5, role = $6,
			name = $7, surname = $8, nif = $9, company = $10, logo_url = $11,
			reset_token = $12, reset_expires = $13,
			invitation_token = $14, invitation_expires = $15, invited_by = $16,
			updated_at = $17
		WHERE id = $1 AND NOT deleted`,
		u.ID, u.Email, u.PasswordHash, u.VerificationCode, u.Verified, u.Role,
		u.Name, u.Surname, u.NIF, company, u.LogoURL,
		u.ResetToken, u.ResetExpires,
		u.InvitationToken, u.InvitationExpires, u.InvitedBy,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Archive desactiva la cuenta (borrado lógico); invisible a partir de ahí
// para login y middleware.
func (r *UserRepository) Archive(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET deleted = TRUE, deleted_at = now() WHERE id = $1 AND NOT deleted`, id)
	if err != nil {
		return fmt.Errorf("archivar usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HardDelete elimina la cuenta físicamente, esté o no archivada.
func (r *UserRepository) HardDelete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, where string, args ...any) (*entity.User, error) {
	row := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users `+where, args...)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consultar usuario: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u          entity.User
		companyRaw []byte
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.VerificationCode, &u.Verified, &u.Role,
		&u.Name, &u.Surname, &u.NIF, &companyRaw, &u.LogoURL,
		&u.ResetToken, &u.ResetExpires, &u.InvitationToken, &u.InvitationExpires, &u.InvitedBy,
		&u.CreatedAt, &u.UpdatedAt, &u.Deleted, &u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if jsonPresent(companyRaw) {
		var c entity.Company
		if err := fromJSON(companyRaw, &c); err != nil {
			return nil, err
		}
		u.Company = &c
	}
	return &u, nil
}
