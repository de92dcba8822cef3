package repository

import "context"

// Archivable es el contrato de borrado lógico que componen los repositorios
// de entidades archivables. Las tres operaciones están acotadas al propietario.
//
// Visibilidad por defecto: los finders normales de cada repositorio excluyen
// siempre los registros archivados; los finders "IncludingArchived" y
// "Archived" son el opt-in explícito para los flujos de restore/hard delete
// y para los listados de archivo.
//
//   - Archive marca deleted=true y deletedAt=now. Sobre un registro ya
//     archivado (o inexistente, o ajeno) devuelve domain.ErrNotFound: la
//     búsqueda en visibilidad por defecto que lo precede no puede verlo.
//   - Restore solo es válido sobre un registro archivado; limpia deleted y
//     deletedAt. domain.ErrNotFound en cualquier otro caso.
//   - HardDelete elimina físicamente, esté o no archivado.
type Archivable interface {
	Archive(ctx context.Context, id, userID string) error
	Restore(ctx context.Context, id, userID string) error
	HardDelete(ctx context.Context, id, userID string) error
}
