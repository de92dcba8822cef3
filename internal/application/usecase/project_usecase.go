package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/albaranes/albaranes-api/internal/application/dto"
	"github.com/albaranes/albaranes-api/internal/domain"
	"github.com/albaranes/albaranes-api/internal/domain/entity"
	"github.com/albaranes/albaranes-api/internal/domain/repository"
)

// ProjectUseCase casos de uso de proyectos. Toda operación que referencia un
// cliente verifica primero que el cliente pertenece al caller: un cliente
// ajeno y un cliente inexistente son indistinguibles (domain.ErrForbidden).
type ProjectUseCase struct {
	projects repository.ProjectRepository
	clients  repository.ClientRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(projects repository.ProjectRepository, clients repository.ClientRepository) *ProjectUseCase {
	return &ProjectUseCase{projects: projects, clients: clients}
}

// clientOwned verifica la propiedad del cliente en visibilidad por defecto.
func (uc *ProjectUseCase) clientOwned(ctx context.Context, userID, clientID string) (bool, error) {
	if clientID == "" {
		return false, nil
	}
	client, err := uc.clients.GetByID(ctx, clientID, userID)
	if err != nil {
		return false, err
	}
	return client != nil, nil
}

// Create crea un proyecto bajo un cliente del caller. Si projectCode viene
// informado se comprueba la unicidad sparse (propietario, cliente, código);
// un código vacío nunca colisiona.
func (uc *ProjectUseCase) Create(ctx context.Context, userID string, in dto.CreateProjectRequest) (*dto.ProjectSummaryResponse, error) {
	if in.Name == "" || in.ClientID == "" {
		return nil, domain.ErrInvalidInput
	}
	prices, ok := unitPricesFromDTO(in.UnitPrices)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if in.Amount != nil && in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	owned, err := uc.clientOwned(ctx, userID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, domain.ErrForbidden
	}
	if in.ProjectCode != "" {
		existing, err := uc.projects.GetByCode(ctx, userID, in.ClientID, in.ProjectCode, "")
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrProjectCodeExists
		}
	}

	now := time.Now()
	project := &entity.Project{
		ID:          uuid.New().String(),
		UserID:      userID,
		ClientID:    in.ClientID,
		Name:        in.Name,
		ProjectCode: in.ProjectCode,
		Code:        in.Code,
		Address:     addressFromDTO(in.Address),
		Begin:       in.Begin,
		End:         in.End,
		Notes:       in.Notes,
		IsActive:    true,
		UnitPrices:  prices,
		Amount:      in.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return toProjectSummary(project), nil
}

// List lista los proyectos activos del usuario (sort: asc|desc por creación).
func (uc *ProjectUseCase) List(ctx context.Context, userID, sort string) ([]*dto.ProjectResponse, error) {
	list, err := uc.projects.ListByUser(ctx, userID, sort)
	if err != nil {
		return nil, err
	}
	return toProjectResponses(list), nil
}

// ListByClient lista los proyectos de un cliente, verificando antes su
// propiedad para no revelar la existencia de clientes ajenos.
func (uc *ProjectUseCase) ListByClient(ctx context.Context, userID, clientID, sort string) ([]*dto.ProjectResponse, error) {
	owned, err := uc.clientOwned(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, domain.ErrForbidden
	}
	list, err := uc.projects.ListByClient(ctx, userID, clientID, sort)
	if err != nil {
		return nil, err
	}
	return toProjectResponses(list), nil
}

// Get devuelve un proyecto del usuario; pricesFilter ("material"|"hours")
// filtra las tarifas devueltas.
func (uc *ProjectUseCase) Get(ctx context.Context, userID, id, pricesFilter string) (*dto.ProjectResponse, error) {
	project, err := uc.projects.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	resp := toProjectResponse(project)
	resp.UnitPrices = unitPricesToDTO(project.PricesByFormat(pricesFilter))
	return resp, nil
}

// GetByClientAndID devuelve un proyecto comprobando también el cliente:
// si el cliente no es del caller el fallo es ErrForbidden, si el proyecto no
// existe bajo ese cliente, ErrNotFound.
func (uc *ProjectUseCase) GetByClientAndID(ctx context.Context, userID, clientID, id string) (*dto.ProjectResponse, error) {
	project, err := uc.projects.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if project != nil && project.ClientID == clientID {
		return toProjectResponse(project), nil
	}
	owned, err := uc.clientOwned(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, domain.ErrForbidden
	}
	return nil, domain.ErrNotFound
}

// Update actualiza un proyecto. Si cambian cliente o projectCode se repiten
// las comprobaciones de propiedad y unicidad excluyendo al propio registro.
func (uc *ProjectUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProjectRequest) (*dto.ProjectSummaryResponse, error) {
	project, err := uc.projects.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	targetClient := project.ClientID
	if in.ClientID != "" && in.ClientID != project.ClientID {
		owned, err := uc.clientOwned(ctx, userID, in.ClientID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, domain.ErrForbidden
		}
		targetClient = in.ClientID
	}
	targetCode := project.ProjectCode
	if in.ProjectCode != "" {
		targetCode = in.ProjectCode
	}
	if targetCode != "" && (targetCode != project.ProjectCode || targetClient != project.ClientID) {
		conflicting, err := uc.projects.GetByCode(ctx, userID, targetClient, targetCode, id)
		if err != nil {
			return nil, err
		}
		if conflicting != nil {
			return nil, domain.ErrProjectCodeExists
		}
	}

	project.ClientID = targetClient
	project.ProjectCode = targetCode
	if in.Name != "" {
		project.Name = in.Name
	}
	if in.Code != "" {
		project.Code = in.Code
	}
	if in.Address != nil {
		project.Address = addressFromDTO(in.Address)
	}
	if in.Begin != "" {
		project.Begin = in.Begin
	}
	if in.End != "" {
		project.End = in.End
	}
	if in.Notes != "" {
		project.Notes = in.Notes
	}
	project.UpdatedAt = time.Now()
	if err := uc.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return toProjectSummary(project), nil
}

// Delete archiva (soft) o elimina físicamente (hard) un proyecto.
func (uc *ProjectUseCase) Delete(ctx context.Context, userID, id string, hard bool) (*dto.StatusResponse, error) {
	if hard {
		if err := uc.projects.HardDelete(ctx, id, userID); err != nil {
			return nil, err
		}
		return &dto.StatusResponse{Status: "OK", Message: "PROJECT_PERMANENTLY_DELETED"}, nil
	}
	if err := uc.projects.Archive(ctx, id, userID); err != nil {
		return nil, err
	}
	return &dto.StatusResponse{Status: "OK", Message: "PROJECT_ARCHIVED_SOFT_DELETE"}, nil
}

// Archive archiva un proyecto (endpoint dedicado, mismo efecto que el soft
// delete).
func (uc *ProjectUseCase) Archive(ctx context.Context, userID, id string) (*dto.StatusResponse, error) {
	if err := uc.projects.Archive(ctx, id, userID); err != nil {
		return nil, err
	}
	return &dto.StatusResponse{Status: "OK", Message: "PROJECT_ARCHIVED"}, nil
}

// ListArchived lista los proyectos archivados del usuario.
func (uc *ProjectUseCase) ListArchived(ctx context.Context, userID string) ([]*dto.ProjectResponse, error) {
	list, err := uc.projects.ListArchivedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProjectResponses(list), nil
}

// ListArchivedByClient lista los archivados de un cliente del caller.
func (uc *ProjectUseCase) ListArchivedByClient(ctx context.Context, userID, clientID string) ([]*dto.ProjectResponse, error) {
	owned, err := uc.clientOwned(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, domain.ErrForbidden
	}
	list, err := uc.projects.ListArchivedByClient(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	return toProjectResponses(list), nil
}

// Restore recupera un proyecto archivado.
func (uc *ProjectUseCase) Restore(ctx context.Context, userID, id string) (*dto.AckResponse, error) {
	if err := uc.projects.Restore(ctx, id, userID); err != nil {
		return nil, err
	}
	return &dto.AckResponse{Acknowledged: true}, nil
}

// Activate fija el flag isActive del proyecto.
func (uc *ProjectUseCase) Activate(ctx context.Context, userID, id string, active *bool) (*dto.AckResponse, error) {
	if active == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.projects.SetActive(ctx, id, userID, *active); err != nil {
		return nil, err
	}
	return &dto.AckResponse{Acknowledged: true}, nil
}

// UpdatePrices reemplaza las tarifas unitarias del proyecto.
func (uc *ProjectUseCase) UpdatePrices(ctx context.Context, userID, id string, in []dto.UnitPriceDTO) (*dto.AckResponse, error) {
	prices, ok := unitPricesFromDTO(in)
	if !ok || len(prices) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.projects.SetUnitPrices(ctx, id, userID, prices); err != nil {
		return nil, err
	}
	return &dto.AckResponse{Acknowledged: true}, nil
}

// UpdateAmount fija el importe total del proyecto.
func (uc *ProjectUseCase) UpdateAmount(ctx context.Context, userID, id string, amount *decimal.Decimal) (*dto.AckResponse, error) {
	if amount == nil || amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.projects.SetAmount(ctx, id, userID, *amount); err != nil {
		return nil, err
	}
	return &dto.AckResponse{Acknowledged: true}, nil
}

func unitPricesFromDTO(in []dto.UnitPriceDTO) ([]entity.UnitPrice, bool) {
	out := make([]entity.UnitPrice, 0, len(in))
	for _, p := range in {
		if !entity.ValidFormat(p.Format) || p.Concept == "" || p.Price.IsNegative() {
			return nil, false
		}
		out = append(out, entity.UnitPrice{
			Format:  p.Format,
			Unit:    p.Unit,
			Concept: p.Concept,
			Price:   p.Price,
		})
	}
	return out, true
}

func unitPricesToDTO(in []entity.UnitPrice) []dto.UnitPriceDTO {
	out := make([]dto.UnitPriceDTO, 0, len(in))
	for _, p := range in {
		out = append(out, dto.UnitPriceDTO{
			Format:  p.Format,
			Unit:    p.Unit,
			Concept: p.Concept,
			Price:   p.Price,
		})
	}
	return out
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		ProjectCode: p.ProjectCode,
		Code:        p.Code,
		Address:     addressToDTO(p.Address),
		Begin:       p.Begin,
		End:         p.End,
		Notes:       p.Notes,
		IsActive:    p.IsActive,
		UnitPrices:  unitPricesToDTO(p.UnitPrices),
		Amount:      p.Amount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjectResponses(list []*entity.Project) []*dto.ProjectResponse {
	out := make([]*dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProjectResponse(p))
	}
	return out
}

func toProjectSummary(p *entity.Project) *dto.ProjectSummaryResponse {
	return &dto.ProjectSummaryResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		ClientID:  p.ClientID,
		Name:      p.Name,
		Code:      p.Code,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
