package usecase_test

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/albaranes/albaranes-api/internal/domain"
	"github.com/albaranes/albaranes-api/internal/domain/entity"
)

// Fakes en memoria de los repositorios, con la misma semántica de visibilidad
// que la implementación PostgreSQL: los finders por defecto excluyen
// archivados, Restore solo actúa sobre archivados y las claves de negocio
// solo cuentan entre filas activas.

// ── usuarios ──────────────────────────────────────────────────────────────────

type memUsers struct {
	byID map[string]*entity.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[string]*entity.User)}
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	for _, ex := range m.byID {
		if !ex.Deleted && ex.Verified && strings.EqualFold(ex.Email, u.Email) {
			return domain.ErrEmailExists
		}
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.byID[id]
	if !ok || u.Deleted {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if !u.Deleted && strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByResetToken(_ context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}
	for _, u := range m.byID {
		if !u.Deleted && u.ResetToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByInvitationToken(_ context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}
	for _, u := range m.byID {
		if !u.Deleted && u.InvitationToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	ex, ok := m.byID[u.ID]
	if !ok || ex.Deleted {
		return domain.ErrNotFound
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) Archive(_ context.Context, id string) error {
	u, ok := m.byID[id]
	if !ok || u.Deleted {
		return domain.ErrNotFound
	}
	now := time.Now()
	u.Deleted = true
	u.DeletedAt = &now
	return nil
}

func (m *memUsers) HardDelete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// ── clientes ──────────────────────────────────────────────────────────────────

type memClients struct {
	byID map[string]*entity.Client
}

func newMemClients() *memClients {
	return &memClients{byID: make(map[string]*entity.Client)}
}

func (m *memClients) Create(_ context.Context, c *entity.Client) error {
	for _, ex := range m.byID {
		if !ex.Deleted && ex.UserID == c.UserID && ex.CIF == c.CIF {
			return domain.ErrClientCIFExists
		}
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memClients) GetByID(_ context.Context, id, userID string) (*entity.Client, error) {
	c, ok := m.byID[id]
	if !ok || c.Deleted || c.UserID != userID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memClients) GetByIDIncludingArchived(_ context.Context, id, userID string) (*entity.Client, error) {
	c, ok := m.byID[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memClients) GetByCIF(_ context.Context, userID, cif, excludeID string) (*entity.Client, error) {
	for _, c := range m.byID {
		if !c.Deleted && c.UserID == userID && c.CIF == cif && c.ID != excludeID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memClients) ListByUser(_ context.Context, userID string) ([]*entity.Client, error) {
	out := make([]*entity.Client, 0)
	for _, c := range m.byID {
		if !c.Deleted && c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memClients) ListArchivedByUser(_ context.Context, userID string) ([]*entity.Client, error) {
	out := make([]*entity.Client, 0)
	for _, c := range m.byID {
		if c.Deleted && c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memClients) Update(_ context.Context, c *entity.Client) error {
	ex, ok := m.byID[c.ID]
	if !ok || ex.Deleted || ex.UserID != c.UserID {
		return domain.ErrNotFound
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memClients) Archive(_ context.Context, id, userID string) error {
	c, ok := m.byID[id]
	if !ok || c.Deleted || c.UserID != userID {
		return domain.ErrNotFound
	}
	now := time.Now()
	c.Deleted = true
	c.DeletedAt = &now
	return nil
}

func (m *memClients) Restore(_ context.Context, id, userID string) error {
	c, ok := m.byID[id]
	if !ok || !c.Deleted || c.UserID != userID {
		return domain.ErrNotFound
	}
	c.Deleted = false
	c.DeletedAt = nil
	return nil
}

func (m *memClients) HardDelete(_ context.Context, id, userID string) error {
	c, ok := m.byID[id]
	if !ok || c.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// ── proyectos ─────────────────────────────────────────────────────────────────

type memProjects struct {
	byID map[string]*entity.Project
}

func newMemProjects() *memProjects {
	return &memProjects{byID: make(map[string]*entity.Project)}
}

func (m *memProjects) Create(_ context.Context, p *entity.Project) error {
	if p.ProjectCode != "" {
		for _, ex := range m.byID {
			if !ex.Deleted && ex.UserID == p.UserID && ex.ClientID == p.ClientID && ex.ProjectCode == p.ProjectCode {
				return domain.ErrProjectCodeExists
			}
		}
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProjects) GetByID(_ context.Context, id, userID string) (*entity.Project, error) {
	p, ok := m.byID[id]
	if !ok || p.Deleted || p.UserID != userID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProjects) GetByIDIncludingArchived(_ context.Context, id, userID string) (*entity.Project, error) {
	p, ok := m.byID[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProjects) GetByCode(_ context.Context, userID, clientID, code, excludeID string) (*entity.Project, error) {
	if code == "" {
		return nil, nil
	}
	for _, p := range m.byID {
		if !p.Deleted && p.UserID == userID && p.ClientID == clientID && p.ProjectCode == code && p.ID != excludeID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProjects) ListByUser(_ context.Context, userID, _ string) ([]*entity.Project, error) {
	out := make([]*entity.Project, 0)
	for _, p := range m.byID {
		if !p.Deleted && p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memProjects) ListByClient(_ context.Context, userID, clientID, _ string) ([]*entity.Project, error) {
	out := make([]*entity.Project, 0)
	for _, p := range m.byID {
		if !p.Deleted && p.UserID == userID && p.ClientID == clientID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memProjects) ListArchivedByUser(_ context.Context, userID string) ([]*entity.Project, error) {
	out := make([]*entity.Project, 0)
	for _, p := range m.byID {
		if p.Deleted && p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memProjects) ListArchivedByClient(_ context.Context, userID, clientID string) ([]*entity.Project, error) {
	out := make([]*entity.Project, 0)
	for _, p := range m.byID {
		if p.Deleted && p.UserID == userID && p.ClientID == clientID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memProjects) Update(_ context.Context, p *entity.Project) error {
	ex, ok := m.byID[p.ID]
	if !ok || ex.Deleted || ex.UserID != p.UserID {
		return domain.ErrNotFound
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProjects) Archive(_ context.Context, id, userID string) error {
	p, ok := m.byID[id]
	if !ok || p.Deleted || p.UserID != userID {
		return domain.ErrNotFound
	}
	now := time.Now()
	p.Deleted = true
	p.DeletedAt = &now
	return nil
}

func (m *memProjects) Restore(_ context.Context, id, userID string) error {
	p, ok := m.byID[id]
	if !ok || !p.Deleted || p.UserID != userID {
		return domain.ErrNotFound
	}
	p.Deleted = false
	p.DeletedAt = nil
	return nil
}

func (m *memProjects) HardDelete(_ context.Context, id, userID string) error {
	p, ok := m.byID[id]
	if !ok || p.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memProjects) SetActive(_ context.Context, id, userID string, active bool) error {
	p, ok := m.byID[id]
	if !ok || p.Deleted || p.UserID != userID {
		return domain.ErrNotFound
	}
	p.IsActive = active
	return nil
}

func (m *memProjects) SetUnitPrices(_ context.Context, id, userID string, prices []entity.UnitPrice) error {
	p, ok := m.byID[id]
	if !ok || p.Deleted || p.UserID != userID {
		return domain.ErrNotFound
	}
	p.UnitPrices = prices
	return nil
}

func (m *memProjects) SetAmount(_ context.Context, id, userID string, amount decimal.Decimal) error {
	p, ok := m.byID[id]
	if !ok || p.Deleted || p.UserID != userID {
		return domain.ErrNotFound
	}
	p.Amount = &amount
	return nil
}

// ── albaranes ─────────────────────────────────────────────────────────────────

type memNotes struct {
	byID map[string]*entity.DeliveryNote
}

func newMemNotes() *memNotes {
	return &memNotes{byID: make(map[string]*entity.DeliveryNote)}
}

func (m *memNotes) Create(_ context.Context, n *entity.DeliveryNote) error {
	cp := *n
	m.byID[n.ID] = &cp
	return nil
}

func (m *memNotes) GetByID(_ context.Context, id, userID string) (*entity.DeliveryNote, error) {
	n, ok := m.byID[id]
	if !ok || n.Deleted || n.UserID != userID {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (m *memNotes) GetByIDIncludingArchived(_ context.Context, id, userID string) (*entity.DeliveryNote, error) {
	n, ok := m.byID[id]
	if !ok || n.UserID != userID {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (m *memNotes) ListByUser(_ context.Context, userID string) ([]*entity.DeliveryNote, error) {
	out := make([]*entity.DeliveryNote, 0)
	for _, n := range m.byID {
		if !n.Deleted && n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memNotes) SetSigned(_ context.Context, id, userID, signURL string) error {
	n, ok := m.byID[id]
	if !ok || n.Deleted || n.UserID != userID || n.IsSigned {
		return domain.ErrNotFound
	}
	n.IsSigned = true
	n.SignURL = signURL
	return nil
}

func (m *memNotes) HardDelete(_ context.Context, id, userID string) error {
	n, ok := m.byID[id]
	if !ok || n.UserID != userID {
		return domain.ErrNotFound
	}
	if n.IsSigned {
		return domain.ErrNoteSigned
	}
	delete(m.byID, id)
	return nil
}

// ── puertos ───────────────────────────────────────────────────────────────────

// fakePinner devuelve URLs deterministas y registra los nombres subidos.
type fakePinner struct {
	uploads []string
	fail    bool
}

func (f *fakePinner) Pin(_ context.Context, _ []byte, filename string) (string, error) {
	if f.fail {
		return "", context.DeadlineExceeded
	}
	f.uploads = append(f.uploads, filename)
	return "https://gateway.test/ipfs/" + filename, nil
}

// fakePDF devuelve bytes fijos.
type fakePDF struct{ calls int }

func (f *fakePDF) Generate(_ context.Context, _ *entity.DeliveryNote, _ *entity.User, _ *entity.Client, _ *entity.Project) ([]byte, error) {
	f.calls++
	return []byte("%PDF-fake"), nil
}

// fakeNotifier registra los envíos.
type fakeNotifier struct {
	sent []string
	fail bool
}

func (f *fakeNotifier) Send(_ context.Context, to, subject, _ string) error {
	if f.fail {
		return context.DeadlineExceeded
	}
	f.sent = append(f.sent, to+"|"+subject)
	return nil
}
