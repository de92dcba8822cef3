// Package mail implementa el puerto Notifier: entrega por SMTP en
// producción y por log en desarrollo.
package mail

import (
	"context"

	"github.com/albaranes/albaranes-api/pkg/logger"
)

// ConsoleNotifier registra los correos por log en lugar de enviarlos.
// Es el driver por defecto en desarrollo: los códigos de verificación y los
// enlaces de reset quedan visibles sin necesidad de un servidor SMTP.
type ConsoleNotifier struct {
	log *logger.Logger
}

// NewConsoleNotifier construye el notificador de consola.
func NewConsoleNotifier(log *logger.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{log: log}
}

// Send registra el correo y devuelve siempre nil.
func (n *ConsoleNotifier) Send(_ context.Context, to, subject, body string) error {
	n.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("correo (driver console)")
	return nil
}
