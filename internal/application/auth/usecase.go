package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/albaranes/albaranes-api/internal/application/dto"
	"github.com/albaranes/albaranes-api/internal/application/ports"
	"github.com/albaranes/albaranes-api/internal/domain"
	"github.com/albaranes/albaranes-api/internal/domain/entity"
	"github.com/albaranes/albaranes-api/internal/domain/repository"
	"github.com/albaranes/albaranes-api/pkg/jwt"
	"github.com/albaranes/albaranes-api/pkg/logger"
)

// Vigencia de los tokens de reset e invitación.
const (
	resetTokenTTL      = time.Hour
	invitationTokenTTL = 7 * 24 * time.Hour
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de identidad: registro, login, verificación,
// recuperación de contraseña e invitaciones.
//
// El notificador es best-effort: los códigos y tokens accionables se
// registran siempre por log, se entregue o no el correo.
type UseCase struct {
	users     repository.UserRepository
	notifier  ports.Notifier
	jwtCfg    JWTConfig
	publicURL string
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de identidad.
func NewUseCase(users repository.UserRepository, notifier ports.Notifier, jwtCfg JWTConfig, publicURL string, log *logger.Logger) *UseCase {
	return &UseCase{users: users, notifier: notifier, jwtCfg: jwtCfg, publicURL: publicURL, log: log}
}

// Register crea una cuenta sin verificar y envía el código de un solo uso.
// Si ya existe una cuenta activa verificada con ese email devuelve
// domain.ErrEmailExists; si existe sin verificar se regenera el código sobre
// la misma cuenta en lugar de duplicarla.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.TokenResponse, error) {
	if !validEmail(in.Email) || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	code := verificationCode()
	now := time.Now()

	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	switch {
	case user != nil && user.Verified:
		return nil, domain.ErrEmailExists
	case user != nil:
		// Cuenta pendiente de verificar: se reemplazan credenciales y código.
		user.PasswordHash = string(hash)
		user.VerificationCode = code
		user.UpdatedAt = now
		if err := uc.users.Update(ctx, user); err != nil {
			return nil, err
		}
	default:
		user = &entity.User{
			ID:               uuid.New().String(),
			Email:            strings.ToLower(in.Email),
			PasswordHash:     string(hash),
			VerificationCode: code,
			Verified:         false,
			Role:             entity.RoleUser,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := uc.users.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	uc.deliver(ctx, user.Email, "Código de verificación",
		"Tu código de verificación es: "+code, "verification_code", code)

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// Login verifica email/password y genera el JWT. Una cuenta archivada es
// invisible aquí (la visibilidad por defecto del repositorio la excluye) y
// el fallo es indistinguible de un email desconocido.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrNotFound
	}
	if !user.Verified {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// Verify consume el código de verificación de la cuenta autenticada.
// Sobre una cuenta ya verificada responde con acuse "ya verificada" sin
// efecto alguno: el código se limpió al verificar y no puede reutilizarse.
func (uc *UseCase) Verify(ctx context.Context, userID, code string) (*dto.AckResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.Verified {
		return &dto.AckResponse{Acknowledged: true, Message: "EMAIL_ALREADY_VERIFIED"}, nil
	}
	if code == "" || user.VerificationCode != code {
		return nil, domain.ErrInvalidInput
	}
	user.Verified = true
	user.VerificationCode = ""
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.AckResponse{Acknowledged: true}, nil
}

// ForgotPassword genera un token de reset con caducidad y lo notifica.
// Siempre responde igual, exista o no la cuenta, para no filtrar emails.
func (uc *UseCase) ForgotPassword(ctx context.Context, email string) error {
	if !validEmail(email) {
		return domain.ErrInvalidInput
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	token := uuid.New().String()
	expires := time.Now().Add(resetTokenTTL)
	user.ResetToken = token
	user.ResetExpires = &expires
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return err
	}

	link := uc.publicURL + "/reset-password?token=" + token
	uc.deliver(ctx, user.Email, "Restablecer contraseña",
		"Para restablecer tu contraseña visita: "+link, "reset_token", token)
	return nil
}

// ResetPassword canjea un token de reset vigente por una contraseña nueva.
func (uc *UseCase) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || len(password) < 8 {
		return domain.ErrInvalidInput
	}
	user, err := uc.users.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil || user.ResetExpires == nil || user.ResetExpires.Before(time.Now()) {
		return domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.ResetToken = ""
	user.ResetExpires = nil
	user.UpdatedAt = time.Now()
	return uc.users.Update(ctx, user)
}

// InviteGuest crea una cuenta invitado pre-activada-false ligada al invitador
// y notifica el token de invitación.
func (uc *UseCase) InviteGuest(ctx context.Context, inviterID, email string) (*dto.UserResponse, error) {
	if !validEmail(email) {
		return nil, domain.ErrInvalidInput
	}
	inviter, err := uc.users.GetByID(ctx, inviterID)
	if err != nil {
		return nil, err
	}
	if inviter == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailExists
	}

	token := uuid.New().String()
	expires := time.Now().Add(invitationTokenTTL)
	now := time.Now()
	guest := &entity.User{
		ID:                uuid.New().String(),
		Email:             strings.ToLower(email),
		Verified:          false,
		Role:              entity.RoleInvitado,
		InvitationToken:   token,
		InvitationExpires: &expires,
		InvitedBy:         inviter.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.users.Create(ctx, guest); err != nil {
		return nil, err
	}

	link := uc.publicURL + "/accept-invitation?token=" + token
	uc.deliver(ctx, guest.Email, "Invitación a albaranes",
		inviter.Email+" te ha invitado. Acepta en: "+link, "invitation_token", token)
	return ToUserResponse(guest), nil
}

// AcceptInvitation canjea el token de invitación: fija contraseña y activa la
// cuenta invitada. El canje sustituye al código de verificación.
func (uc *UseCase) AcceptInvitation(ctx context.Context, token, password string) (*dto.TokenResponse, error) {
	if token == "" || len(password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	guest, err := uc.users.GetByInvitationToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if guest == nil || guest.InvitationExpires == nil || guest.InvitationExpires.Before(time.Now()) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	guest.PasswordHash = string(hash)
	guest.Verified = true
	guest.InvitationToken = ""
	guest.InvitationExpires = nil
	guest.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, guest); err != nil {
		return nil, err
	}
	jwtToken, err := jwt.Generate(uc.jwtCfg.Secret, guest.ID, guest.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: jwtToken, User: *ToUserResponse(guest)}, nil
}

// deliver envía la notificación y registra el dato accionable por log en
// cualquier caso (política explícita: el canal de correo es best-effort).
func (uc *UseCase) deliver(ctx context.Context, to, subject, body, field, value string) {
	if err := uc.notifier.Send(ctx, to, subject, body); err != nil {
		uc.log.Warn().Err(err).Str("to", to).Msg("notificación no entregada")
	}
	uc.log.Info().Str("to", to).Str(field, value).Msg(subject)
}

// verificationCode genera un código numérico de 6 dígitos.
func verificationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// rand.Reader no falla en la práctica; evitar devolver código vacío
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

func validEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	return at > 0 && at < len(s)-3 && strings.Contains(s[at:], ".")
}

// ToUserResponse proyecta la entidad al DTO público (sin hash ni tokens).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Verified:  u.Verified,
		Role:      u.Role,
		Name:      u.Name,
		Surname:   u.Surname,
		NIF:       u.NIF,
		LogoURL:   u.LogoURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Company != nil {
		out.Company = &dto.CompanyDTO{
			Name:     u.Company.Name,
			CIF:      u.Company.CIF,
			Street:   u.Company.Street,
			Number:   u.Company.Number,
			Postal:   u.Company.Postal,
			City:     u.Company.City,
			Province: u.Company.Province,
		}
	}
	return out
}
