package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albaranes/albaranes-api/internal/application/dto"
	"github.com/albaranes/albaranes-api/internal/application/usecase"
	"github.com/albaranes/albaranes-api/internal/domain"
)

// fixture con un cliente activo por propietario.
func newProjectFixture(t *testing.T) (*usecase.ProjectUseCase, *usecase.ClientUseCase, string, string) {
	t.Helper()
	clients := newMemClients()
	clientUC := usecase.NewClientUseCase(clients)
	projectUC := usecase.NewProjectUseCase(newMemProjects(), clients)

	ctx := context.Background()
	clientA, err := clientUC.Create(ctx, ownerA, dto.CreateClientRequest{Name: "Cliente A", CIF: "B11111111"})
	require.NoError(t, err)
	clientB, err := clientUC.Create(ctx, ownerB, dto.CreateClientRequest{Name: "Cliente B", CIF: "B22222222"})
	require.NoError(t, err)
	return projectUC, clientUC, clientA.ID, clientB.ID
}

func TestProjectCreate_ClienteAjenoEsForbidden(t *testing.T) {
	uc, _, _, clientB := newProjectFixture(t)

	// ownerA intenta colgar un proyecto del cliente de ownerB.
	_, err := uc.Create(context.Background(), ownerA, dto.CreateProjectRequest{
		Name: "Reforma local", ClientID: clientB,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProjectCreate_CodigoDuplicadoEnMismoCliente(t *testing.T) {
	uc, _, clientA, _ := newProjectFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, ownerA, dto.CreateProjectRequest{
		Name: "Fase 1", ClientID: clientA, ProjectCode: "PRJ-001",
	})
	require.NoError(t, err)

	_, err = uc.Create(ctx, ownerA, dto.CreateProjectRequest{
		Name: "Fase 2", ClientID: clientA, ProjectCode: "PRJ-001",
	})
	require.Error(t, err)
	assert.Equal(t, "PROJECT_CODE_ALREADY_EXISTS_FOR_CLIENT", domain.ConflictCode(err))
}

func TestProjectCreate_CodigoVacioNuncaColisiona(t *testing.T) {
	uc, _, clientA, _ := newProjectFixture(t)
	ctx := context.Background()

	// Dos proyectos sin projectCode bajo el mismo cliente: unicidad sparse.
	_, err := uc.Create(ctx, ownerA, dto.CreateProjectRequest{Name: "Sin código 1", ClientID: clientA})
	require.NoError(t, err)
	_, err = uc.Create(ctx, ownerA, dto.CreateProjectRequest{Name: "Sin código 2", ClientID: clientA})
	assert.NoError(t, err)
}

func TestProjectCreate_MismoCodigoEnClientesDistintos(t *testing.T) {
	uc, clientUC, clientA, _ := newProjectFixture(t)
	ctx := context.Background()

	otherClient, err := clientUC.Create(ctx, ownerA, dto.CreateClientRequest{Name: "Cliente A2", CIF: "B33333333"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, ownerA, dto.CreateProjectRequest{Name: "Fase 1", ClientID: clientA, ProjectCode: "PRJ-001"})
	require.NoError(t, err)

	// El ámbito de unicidad es (propietario, cliente, código).
	_, err = uc.Create(ctx, ownerA, dto.CreateProjectRequest{Name: "Fase 1", ClientID: otherClient.ID, ProjectCode: "PRJ-001"})
	assert.NoError(t, err)
}

func TestProjectArchive_LiberaElCodigoYRestoreLoRecupera(t *testing.T) {
	uc, _, clientA, _ := newProjectFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, ownerA, dto.CreateProjectRequest{
		Name: "Fase 1", ClientID: clientA, ProjectCode: "PRJ-001",
	})
	require.NoError(t, err)

	out, err := uc.Archive(ctx, ownerA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "PROJECT_ARCHIVED", out.Message)

	// Invisible en visibilidad por defecto.
	_, err = uc.Get(ctx, ownerA, created.ID, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El código queda libre mientras el original está archivado.
	_, err = uc.Create(ctx, ownerA, dto.CreateProjectRequest{
		Name: "Fase 1 bis", ClientID: clientA, ProjectCode: "PRJ-001",
	})
	require.NoError(t, err)

	archived, err := uc.ListArchived(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, created.ID, archived[0].ID)

	_, err = uc.Restore(ctx, ownerA, created.ID)
	require.NoError(t, err)
	restoredProject, err := uc.Get(ctx, ownerA, created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "PRJ-001", restoredProject.ProjectCode)
}

func TestProjectGetByClientAndID_DistingueNotFoundDeForbidden(t *testing.T) {
	uc, clientUC, clientA, clientB := newProjectFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, ownerA, dto.CreateProjectRequest{Name: "Fase 1", ClientID: clientA})
	require.NoError(t, err)

	// Cliente del caller pero proyecto colgado de otro cliente: not-found.
	otherClient, err := clientUC.Create(ctx, ownerA, dto.CreateClientRequest{Name: "Cliente A2", CIF: "B33333333"})
	require.NoError(t, err)
	_, err = uc.GetByClientAndID(ctx, ownerA, otherClient.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Cliente ajeno: forbidden, sin revelar si el proyecto existe.
	_, err = uc.GetByClientAndID(ctx, ownerA, clientB, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Caso feliz.
	got, err := uc.GetByClientAndID(ctx, ownerA, clientA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestProjectGet_FiltroDeTarifasPorFormato(t *testing.T) {
	uc, _, clientA, _ := newProjectFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, ownerA, dto.CreateProjectRequest{
		Name:     "Con tarifas",
		ClientID: clientA,
		UnitPrices: []dto.UnitPriceDTO{
			{Format: "hours", Concept: "Oficial 1a", Price: decimal.NewFromInt(30)},
			{Format: "material", Unit: "m2", Concept: "Tarima", Price: decimal.NewFromInt(18)},
		},
	})
	require.NoError(t, err)

	got, err := uc.Get(ctx, ownerA, created.ID, "hours")
	require.NoError(t, err)
	require.Len(t, got.UnitPrices, 1)
	assert.Equal(t, "Oficial 1a", got.UnitPrices[0].Concept)

	all, err := uc.Get(ctx, ownerA, created.ID, "all")
	require.NoError(t, err)
	assert.Len(t, all.UnitPrices, 2)
}

func TestProjectActivateYAmount_Validaciones(t *testing.T) {
	uc, _, clientA, _ := newProjectFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, ownerA, dto.CreateProjectRequest{Name: "Fase 1", ClientID: clientA})
	require.NoError(t, err)

	_, err = uc.Activate(ctx, ownerA, created.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	inactive := false
	_, err = uc.Activate(ctx, ownerA, created.ID, &inactive)
	require.NoError(t, err)
	got, err := uc.Get(ctx, ownerA, created.ID, "")
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	negative := decimal.NewFromInt(-5)
	_, err = uc.UpdateAmount(ctx, ownerA, created.ID, &negative)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	amount := decimal.NewFromInt(1500)
	_, err = uc.UpdateAmount(ctx, ownerA, created.ID, &amount)
	require.NoError(t, err)
	got, err = uc.Get(ctx, ownerA, created.ID, "")
	require.NoError(t, err)
	require.NotNil(t, got.Amount)
	assert.True(t, got.Amount.Equal(amount))
}

func TestProjectUpdate_MoverDeClienteRevalidaCodigo(t *testing.T) {
	uc, clientUC, clientA, _ := newProjectFixture(t)
	ctx := context.Background()

	otherClient, err := clientUC.Create(ctx, ownerA, dto.CreateClientRequest{Name: "Cliente A2", CIF: "B33333333"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, ownerA, dto.CreateProjectRequest{Name: "Destino ocupado", ClientID: otherClient.ID, ProjectCode: "PRJ-001"})
	require.NoError(t, err)
	movable, err := uc.Create(ctx, ownerA, dto.CreateProjectRequest{Name: "A mover", ClientID: clientA, ProjectCode: "PRJ-001"})
	require.NoError(t, err)

	// Mover al cliente donde el código ya está ocupado es conflicto.
	_, err = uc.Update(ctx, ownerA, movable.ID, dto.UpdateProjectRequest{ClientID: otherClient.ID})
	require.Error(t, err)
	assert.Equal(t, "PROJECT_CODE_ALREADY_EXISTS_FOR_CLIENT", domain.ConflictCode(err))
}
