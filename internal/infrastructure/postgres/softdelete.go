package postgres

import (
	"context"
	"fmt"

	"github.com/albaranes/albaranes-api/internal/domain"
)

// archivableTable implementa el contrato repository.Archivable para una
// tabla con columnas (id, user_id, deleted, deleted_at). Cada repositorio
// concreto lo compone; la parametrización es por nombre de tabla, no por
// herencia.
type archivableTable struct {
	q     Querier
	table string
}

// Archive marca deleted=TRUE. El filtro NOT deleted hace que archivar un
// registro ya archivado (o ajeno, o inexistente) sea not-found.
func (t archivableTable) Archive(ctx context.Context, id, userID string) error {
	sql := fmt.Sprintf(
		`UPDATE %s SET deleted = TRUE, deleted_at = now() WHERE id = $1 AND user_id = $2 AND NOT deleted`,
		t.table)
	tag, err := t.q.Exec(ctx, sql, id, userID)
	if err != nil {
		return fmt.Errorf("archive %s: %w", t.table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore limpia el marcador lógico; solo actúa sobre registros archivados.
func (t archivableTable) Restore(ctx context.Context, id, userID string) error {
	sql := fmt.Sprintf(
		`UPDATE %s SET deleted = FALSE, deleted_at = NULL WHERE id = $1 AND user_id = $2 AND deleted`,
		t.table)
	tag, err := t.q.Exec(ctx, sql, id, userID)
	if err != nil {
		return fmt.Errorf("restore %s: %w", t.table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HardDelete elimina físicamente, esté o no archivado el registro.
func (t archivableTable) HardDelete(ctx context.Context, id, userID string) error {
	sql := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, t.table)
	tag, err := t.q.Exec(ctx, sql, id, userID)
	if err != nil {
		return fmt.Errorf("hard delete %s: %w", t.table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
