package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/albaranes/albaranes-api/internal/application/dto"
	"github.com/albaranes/albaranes-api/internal/domain"
	"github.com/albaranes/albaranes-api/internal/domain/entity"
	"github.com/albaranes/albaranes-api/internal/domain/repository"
)

// ClientUseCase casos de uso de clientes, siempre acotados al propietario.
type ClientUseCase struct {
	clients repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(clients repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clients: clients}
}

// Create crea un cliente. La clave de negocio (propietario, CIF) se
// comprueba dos veces: pre-check aquí y el índice único parcial del almacén
// como respaldo frente a carreras; ambos fallos son el mismo conflicto.
func (uc *ClientUseCase) Create(ctx context.Context, userID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.CIF == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.clients.GetByCIF(ctx, userID, in.CIF, "")
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrClientCIFExists
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Name,
		CIF:       in.CIF,
		Address:   addressFromDTO(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista los clientes activos del usuario.
func (uc *ClientUseCase) List(ctx context.Context, userID string) ([]*dto.ClientResponse, error) {
	list, err := uc.clients.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toClientResponses(list), nil
}

// Get devuelve un cliente activo del usuario.
func (uc *ClientUseCase) Get(ctx context.Context, userID, id string) (*dto.ClientResponse, error) {
	client, err := uc.clients.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// Update actualiza un cliente. Si cambia el CIF se repite el pre-check de
// unicidad excluyendo al propio registro.
func (uc *ClientUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.clients.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.CIF != "" && in.CIF != client.CIF {
		conflicting, err := uc.clients.GetByCIF(ctx, userID, in.CIF, id)
		if err != nil {
			return nil, err
		}
		if conflicting != nil {
			return nil, domain.ErrClientCIFExists
		}
		client.CIF = in.CIF
	}
	if in.Name != "" {
		client.Name = in.Name
	}
	if in.Address != nil {
		client.Address = addressFromDTO(in.Address)
	}
	client.UpdatedAt = time.Now()
	if err := uc.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete archiva (soft) o elimina físicamente (hard) un cliente.
func (uc *ClientUseCase) Delete(ctx context.Context, userID, id string, hard bool) (*dto.StatusResponse, error) {
	if hard {
		if err := uc.clients.HardDelete(ctx, id, userID); err != nil {
			return nil, err
		}
		return &dto.StatusResponse{Status: "OK", Message: "CLIENT_PERMANENTLY_DELETED"}, nil
	}
	if err := uc.clients.Archive(ctx, id, userID); err != nil {
		return nil, err
	}
	return &dto.StatusResponse{Status: "OK", Message: "CLIENT_ARCHIVED_SOFT_DELETE"}, nil
}

// ListArchived lista solo los clientes archivados del usuario.
func (uc *ClientUseCase) ListArchived(ctx context.Context, userID string) ([]*dto.ClientResponse, error) {
	list, err := uc.clients.ListArchivedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toClientResponses(list), nil
}

// Restore recupera un cliente archivado; sobre uno activo o inexistente
// devuelve domain.ErrNotFound.
func (uc *ClientUseCase) Restore(ctx context.Context, userID, id string) (*dto.RestoredClientResponse, error) {
	if err := uc.clients.Restore(ctx, id, userID); err != nil {
		return nil, err
	}
	client, err := uc.clients.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.RestoredClientResponse{
		Message: "CLIENT_RESTORED_SUCCESSFULLY",
		Client:  *toClientResponse(client),
	}, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		CIF:       c.CIF,
		Address:   addressToDTO(c.Address),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toClientResponses(list []*entity.Client) []*dto.ClientResponse {
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out
}

func addressFromDTO(a *dto.AddressDTO) *entity.Address {
	if a == nil {
		return nil
	}
	return &entity.Address{
		Street:   a.Street,
		Number:   a.Number,
		Postal:   a.Postal,
		City:     a.City,
		Province: a.Province,
	}
}

func addressToDTO(a *entity.Address) *dto.AddressDTO {
	if a == nil {
		return nil
	}
	return &dto.AddressDTO{
		Street:   a.Street,
		Number:   a.Number,
		Postal:   a.Postal,
		City:     a.City,
		Province: a.Province,
	}
}
