package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/albaranes/albaranes-api/internal/application/dto"
	"github.com/albaranes/albaranes-api/internal/application/ports"
	"github.com/albaranes/albaranes-api/internal/domain"
	"github.com/albaranes/albaranes-api/internal/domain/entity"
	"github.com/albaranes/albaranes-api/internal/domain/repository"
)

// DeliveryNoteUseCase casos de uso de albaranes: alta, consulta, firma,
// borrado físico y generación de PDF.
type DeliveryNoteUseCase struct {
	notes    repository.DeliveryNoteRepository
	projects repository.ProjectRepository
	clients  repository.ClientRepository
	users    repository.UserRepository
	pinner   ports.Pinner
	pdf      ports.DeliveryNotePDFGenerator
	pdfDir   string
}

// NewDeliveryNoteUseCase construye el caso de uso.
func NewDeliveryNoteUseCase(
	notes repository.DeliveryNoteRepository,
	projects repository.ProjectRepository,
	clients repository.ClientRepository,
	users repository.UserRepository,
	pinner ports.Pinner,
	pdf ports.DeliveryNotePDFGenerator,
	pdfDir string,
) *DeliveryNoteUseCase {
	return &DeliveryNoteUseCase{
		notes:    notes,
		projects: projects,
		clients:  clients,
		users:    users,
		pinner:   pinner,
		pdf:      pdf,
		pdfDir:   pdfDir,
	}
}

// Create crea un albarán. La cadena de propiedad completa se valida antes de
// escribir: el proyecto debe ser del caller y pertenecer exactamente al
// cliente indicado; cualquier incumplimiento es el mismo ErrForbidden.
func (uc *DeliveryNoteUseCase) Create(ctx context.Context, userID string, in dto.CreateDeliveryNoteRequest) (*dto.DeliveryNoteResponse, error) {
	if in.ProjectID == "" || in.ClientID == "" {
		return nil, domain.ErrInvalidInput
	}
	workdate := time.Now()
	if in.WorkDate != nil {
		workdate = *in.WorkDate
	}
	now := time.Now()
	note := &entity.DeliveryNote{
		ID:           uuid.New().String(),
		UserID:       userID,
		ClientID:     in.ClientID,
		ProjectID:    in.ProjectID,
		Format:       in.Format,
		WorkDate:     workdate,
		Description:  in.Description,
		Hours:        in.Hours,
		Quantity:     in.Quantity,
		ObserverName: in.ObserverName,
		ObserverNIF:  in.ObserverNIF,
		Observations: in.Observations,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !note.ValidateMeasure() {
		return nil, domain.ErrInvalidInput
	}

	project, err := uc.projects.GetByID(ctx, in.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.ClientID != in.ClientID {
		return nil, domain.ErrForbidden
	}

	if err := uc.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// List lista los albaranes activos del usuario.
func (uc *DeliveryNoteUseCase) List(ctx context.Context, userID string) ([]*dto.DeliveryNoteResponse, error) {
	list, err := uc.notes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DeliveryNoteResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNoteResponse(n))
	}
	return out, nil
}

// Get devuelve un albarán con su cadena de propiedad resuelta (emisor,
// cliente y proyecto), el equivalente al populate del almacén de documentos.
func (uc *DeliveryNoteUseCase) Get(ctx context.Context, userID, id string) (*dto.DeliveryNoteDetailResponse, error) {
	note, emitter, client, project, err := uc.loadChain(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	detail := &dto.DeliveryNoteDetailResponse{DeliveryNoteResponse: *toNoteResponse(note)}
	if emitter != nil {
		detail.Emitter = dto.NoteEmitterDTO{
			Name:    emitter.Name,
			Surname: emitter.Surname,
			Email:   emitter.Email,
		}
		if emitter.Company != nil {
			detail.Emitter.Company = &dto.CompanyDTO{
				Name: emitter.Company.Name,
				CIF:  emitter.Company.CIF,
			}
		}
	}
	if client != nil {
		detail.Client = dto.NoteClientDTO{
			Name:    client.Name,
			CIF:     client.CIF,
			Address: addressToDTO(client.Address),
		}
	}
	if project != nil {
		detail.Project = dto.NoteProjectDTO{
			Name:        project.Name,
			ProjectCode: project.ProjectCode,
			Code:        project.Code,
		}
	}
	return detail, nil
}

// Delete elimina físicamente un albarán. El archivado no está soportado en
// esta superficie: sin hard=true la petición es inválida. El veto sobre
// notas firmadas lo aplica la capa de datos (domain.ErrNoteSigned).
func (uc *DeliveryNoteUseCase) Delete(ctx context.Context, userID, id string, hard bool) (*dto.StatusResponse, error) {
	if !hard {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.notes.HardDelete(ctx, id, userID); err != nil {
		return nil, err
	}
	return &dto.StatusResponse{Status: "OK", Message: "DELIVERY_NOTE_PERMANENTLY_DELETED"}, nil
}

// Sign sube la imagen de firma al servicio de pinning y marca la nota como
// firmada con la URL devuelta. Solo es posible sobre una nota propia sin
// firmar; la transición es terminal.
func (uc *DeliveryNoteUseCase) Sign(ctx context.Context, userID, id string, image []byte, filename string) (*dto.SignResponse, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidInput
	}
	note, err := uc.notes.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if note == nil || note.IsSigned {
		return nil, domain.ErrNotFound
	}

	name := fmt.Sprintf("signature_%s_%d_%s", id, time.Now().UnixMilli(), filename)
	url, err := uc.pinner.Pin(ctx, image, name)
	if err != nil {
		return nil, fmt.Errorf("%w: subir firma: %v", domain.ErrUpstream, err)
	}

	if err := uc.notes.SetSigned(ctx, id, userID, url); err != nil {
		return nil, err
	}
	return &dto.SignResponse{Message: "DELIVERY_NOTE_SIGNED_SUCCESSFULLY", SignURL: url}, nil
}

// GeneratePDF renderiza el albarán y lo guarda en el directorio configurado,
// devolviendo la ruta del archivo.
func (uc *DeliveryNoteUseCase) GeneratePDF(ctx context.Context, userID, id string) (*dto.PDFResponse, error) {
	note, emitter, client, project, err := uc.loadChain(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	data, err := uc.pdf.Generate(ctx, note, emitter, client, project)
	if err != nil {
		return nil, fmt.Errorf("%w: generar pdf: %v", domain.ErrUpstream, err)
	}

	if err := os.MkdirAll(uc.pdfDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: crear directorio pdf: %v", domain.ErrUpstream, err)
	}
	path := filepath.Join(uc.pdfDir, fmt.Sprintf("delivery_note_%s.pdf", note.ID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: guardar pdf: %v", domain.ErrUpstream, err)
	}
	return &dto.PDFResponse{Message: "PDF_GENERATED_AND_SAVED_SUCCESSFULLY", FilePath: path}, nil
}

// loadChain carga la nota (visibilidad por defecto) y su cadena de
// propiedad. Los padres se buscan incluyendo archivados: un cliente
// archivado no debe dejar ilegible un albarán existente.
func (uc *DeliveryNoteUseCase) loadChain(ctx context.Context, userID, id string) (*entity.DeliveryNote, *entity.User, *entity.Client, *entity.Project, error) {
	note, err := uc.notes.GetByID(ctx, id, userID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if note == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	emitter, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	client, err := uc.clients.GetByIDIncludingArchived(ctx, note.ClientID, userID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	project, err := uc.projects.GetByIDIncludingArchived(ctx, note.ProjectID, userID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return note, emitter, client, project, nil
}

func toNoteResponse(n *entity.DeliveryNote) *dto.DeliveryNoteResponse {
	return &dto.DeliveryNoteResponse{
		ID:           n.ID,
		UserID:       n.UserID,
		ClientID:     n.ClientID,
		ProjectID:    n.ProjectID,
		Format:       n.Format,
		WorkDate:     n.WorkDate,
		Description:  n.Description,
		Hours:        n.Hours,
		Quantity:     n.Quantity,
		SignURL:      n.SignURL,
		IsSigned:     n.IsSigned,
		ObserverName: n.ObserverName,
		ObserverNIF:  n.ObserverNIF,
		Observations: n.Observations,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}
