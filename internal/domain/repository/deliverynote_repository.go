package repository

import (
	"context"

	"github.com/albaranes/albaranes-api/internal/domain/entity"
)

// DeliveryNoteRepository define el puerto de persistencia para DeliveryNote.
//
// Los albaranes no exponen archive/restore en la superficie del API: el
// borrado es físico y está vetado sobre notas firmadas en la propia capa de
// datos, no solo en el handler.
type DeliveryNoteRepository interface {
	Create(ctx context.Context, note *entity.DeliveryNote) error
	GetByID(ctx context.Context, id, userID string) (*entity.DeliveryNote, error)
	GetByIDIncludingArchived(ctx context.Context, id, userID string) (*entity.DeliveryNote, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.DeliveryNote, error)
	// SetSigned marca la nota como firmada y guarda la URL de la firma.
	// Solo transiciona notas propias, activas y sin firmar; en cualquier
	// otro caso devuelve domain.ErrNotFound (la firma es de un solo sentido).
	SetSigned(ctx context.Context, id, userID, signURL string) error
	// HardDelete elimina físicamente. Devuelve domain.ErrNoteSigned si la
	// nota está firmada y domain.ErrNotFound si no existe para ese usuario.
	HardDelete(ctx context.Context, id, userID string) error
}
