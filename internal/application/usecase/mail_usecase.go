package usecase

import (
	"context"
	"fmt"

	"github.com/albaranes/albaranes-api/internal/application/dto"
	"github.com/albaranes/albaranes-api/internal/application/ports"
	"github.com/albaranes/albaranes-api/internal/domain"
)

// MailUseCase envío genérico de correo a través del notificador configurado.
type MailUseCase struct {
	notifier ports.Notifier
}

// NewMailUseCase construye el caso de uso.
func NewMailUseCase(notifier ports.Notifier) *MailUseCase {
	return &MailUseCase{notifier: notifier}
}

// Send valida y entrega el correo.
func (uc *MailUseCase) Send(ctx context.Context, in dto.SendMailRequest) error {
	if in.To == "" || in.Subject == "" || in.Text == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.notifier.Send(ctx, in.To, in.Subject, in.Text); err != nil {
		return fmt.Errorf("%w: enviar correo: %v", domain.ErrUpstream, err)
	}
	return nil
}
