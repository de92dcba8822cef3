package ports

import (
	"context"

	"github.com/albaranes/albaranes-api/internal/domain/entity"
)

// DeliveryNotePDFGenerator puerto hacia el renderizador de documentos.
// Recibe la nota junto con las entidades de su cadena de propiedad ya
// cargadas y devuelve los bytes del documento.
type DeliveryNotePDFGenerator interface {
	Generate(ctx context.Context, note *entity.DeliveryNote, emitter *entity.User, client *entity.Client, project *entity.Project) ([]byte, error)
}
