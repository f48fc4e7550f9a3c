package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/policy"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para tests de casos de uso (sin PostgreSQL)
// ─────────────────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]*entity.Company{}}
}

func (r *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	for _, e := range r.companies {
		if e.CompanyKey == c.CompanyKey || e.CNPJ == c.CNPJ {
			return fmt.Errorf("insert company: %w", domain.ErrConflict)
		}
	}
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) GetByKey(_ context.Context, key string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.CompanyKey == key && c.IsActive {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) GetByAnyKey(_ context.Context, key string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.CompanyKey == key {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) GetByCNPJ(_ context.Context, cnpj string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.CNPJ == cnpj {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) List(_ context.Context, scope repository.Scope, limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range r.companies {
		if scopeContains(scope, c.ID) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompanyKey < out[j].CompanyKey })
	return page(out, limit, offset), nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	for id, e := range r.companies {
		if id == c.ID {
			continue
		}
		if e.CompanyKey == c.CompanyKey || e.CNPJ == c.CNPJ {
			return fmt.Errorf("update company: %w", domain.ErrConflict)
		}
	}
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id string) error {
	delete(r.companies, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, e := range r.users {
		if e.Email == u.Email {
			return fmt.Errorf("insert user: %w", domain.ErrConflict)
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return page(out, limit, offset), nil
}

func (r *fakeUserRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return page(out, limit, offset), nil
}

func (r *fakeUserRepo) CountByCompany(_ context.Context, companyID string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	for id, e := range r.users {
		if id != u.ID && e.Email == u.Email {
			return fmt.Errorf("update user: %w", domain.ErrConflict)
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[string]*entity.Invoice{}}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id string) error {
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if !scopeContains(f.Scope, inv.CompanyID) {
			continue
		}
		if f.Month != 0 && int(inv.DueDate.Month()) != f.Month {
			continue
		}
		if f.Year != 0 && inv.DueDate.Year() != f.Year {
			continue
		}
		if f.IsPaid != nil && inv.IsPaid != *f.IsPaid {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return page(out, f.Limit, f.Offset), nil
}

func (r *fakeInvoiceRepo) ListByDueDate(_ context.Context, scope repository.Scope, date time.Time) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if !scopeContains(scope, inv.CompanyID) {
			continue
		}
		if !sameDay(inv.DueDate, date) {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Calendar(_ context.Context, scope repository.Scope, month, year int) (map[int]repository.CalendarDay, error) {
	days := map[int]repository.CalendarDay{}
	for _, inv := range r.invoices {
		if !scopeContains(scope, inv.CompanyID) {
			continue
		}
		if int(inv.DueDate.Month()) != month || inv.DueDate.Year() != year {
			continue
		}
		d := days[inv.DueDate.Day()]
		d.Total++
		if inv.IsPaid {
			d.Paid++
		} else {
			d.Pending++
		}
		days[inv.DueDate.Day()] = d
	}
	return days, nil
}

func (r *fakeInvoiceRepo) CountByCompany(_ context.Context, companyID string) (int64, error) {
	var n int64
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *fakeInvoiceRepo) Recent(_ context.Context, companyID string, limit int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Totals(_ context.Context, companyID string, today, upcomingUntil time.Time) (*repository.InvoiceTotals, error) {
	t := &repository.InvoiceTotals{
		TotalPending:   decimal.Zero,
		TotalReceived:  decimal.Zero,
		OverdueAmount:  decimal.Zero,
		UpcomingAmount: decimal.Zero,
	}
	for _, inv := range r.invoices {
		if inv.CompanyID != companyID {
			continue
		}
		t.TotalInvoices++
		if inv.IsPaid {
			t.TotalReceived = t.TotalReceived.Add(inv.Amount)
			continue
		}
		t.TotalPending = t.TotalPending.Add(inv.Amount)
		if inv.DueDate.Before(today) {
			t.OverdueCount++
			t.OverdueAmount = t.OverdueAmount.Add(inv.Amount)
		} else if !inv.DueDate.After(upcomingUntil) {
			t.UpcomingCount++
			t.UpcomingAmount = t.UpcomingAmount.Add(inv.Amount)
		}
	}
	return t, nil
}

type fakePlanRepo struct {
	plans map[string]*entity.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[string]*entity.Plan{}}
}

func (r *fakePlanRepo) Create(_ context.Context, p *entity.Plan) error {
	cp := *p
	r.plans[p.ID] = &cp
	return nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id string) (*entity.Plan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlanRepo) GetByName(_ context.Context, name string) (*entity.Plan, error) {
	for _, p := range r.plans {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePlanRepo) ListActive(_ context.Context) ([]*entity.Plan, error) {
	var out []*entity.Plan
	for _, p := range r.plans {
		if p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	return out, nil
}

// fakeFileStore almacén en memoria; registra los borrados.
type fakeFileStore struct {
	files   map[string][]byte
	deleted []string
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[string][]byte{}}
}

func (s *fakeFileStore) Save(_ context.Context, data []byte, contentType string) (string, error) {
	url := "/uploads/" + uuid.NewString()
	s.files[url] = data
	return url, nil
}

func (s *fakeFileStore) Delete(_ context.Context, url string) (bool, error) {
	s.deleted = append(s.deleted, url)
	if _, ok := s.files[url]; !ok {
		return false, nil
	}
	delete(s.files, url)
	return true, nil
}

// fakePDFGenerator devuelve un PDF sintético reconocible.
type fakePDFGenerator struct{}

func (fakePDFGenerator) GenerateReceipt(company *entity.Company, invoice *entity.Invoice) ([]byte, error) {
	return []byte("%PDF-fake " + invoice.ID), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func scopeContains(s repository.Scope, companyID string) bool {
	if s.All {
		return true
	}
	for _, id := range s.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// Principals de prueba.
func superadmin() policy.Principal {
	return policy.Principal{ID: "u-super", Role: entity.RoleSuperAdmin}
}

func adminOf(companyID string) policy.Principal {
	return policy.Principal{ID: "u-admin-" + companyID, Role: entity.RoleAdmin, CompanyID: companyID}
}

func userOf(companyID string) policy.Principal {
	return policy.Principal{ID: "u-user-" + companyID, Role: entity.RoleUser, CompanyID: companyID}
}
