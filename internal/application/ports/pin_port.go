package ports

import "context"

// Pinner puerto hacia el servicio de almacenamiento/pinning de objetos.
// Recibe un blob y un nombre de archivo y devuelve la URL estable de
// contenido direccionable; el core solo persiste esa URL, nunca los bytes.
type Pinner interface {
	Pin(ctx context.Context, data []byte, filename string) (url string, err error)
}
