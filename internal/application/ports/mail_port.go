package ports

import "context"

// Notifier puerto de notificación (correo u otro canal).
// Para los flujos de reset e invitación el envío es best-effort: el caso de
// uso registra el token por log aunque la entrega falle.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
