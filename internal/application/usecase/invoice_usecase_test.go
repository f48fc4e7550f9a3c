package usecase_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/application/usecase"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────────────────────────────────────

type invoiceFixture struct {
	uc        *usecase.InvoiceUseCase
	invoices  *fakeInvoiceRepo
	companies *fakeCompanyRepo
	files     *fakeFileStore
	acme      *entity.Company
	tech      *entity.Company
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	companies := newFakeCompanyRepo()
	invoices := newFakeInvoiceRepo()
	files := newFakeFileStore()

	acme := &entity.Company{ID: "c-acme", CompanyKey: "acme", Name: "ACME", CNPJ: "12345678000190", IsActive: true}
	tech := &entity.Company{ID: "c-tech", CompanyKey: "techstart", Name: "TechStart", CNPJ: "98765432000110", IsActive: true}
	require.NoError(t, companies.Create(context.Background(), acme))
	require.NoError(t, companies.Create(context.Background(), tech))

	return &invoiceFixture{
		uc:        usecase.NewInvoiceUseCase(invoices, companies, files, fakePDFGenerator{}),
		invoices:  invoices,
		companies: companies,
		files:     files,
		acme:      acme,
		tech:      tech,
	}
}

func (f *invoiceFixture) seedInvoice(t *testing.T, companyID string, due string, paid bool) *entity.Invoice {
	t.Helper()
	dueDate, err := time.Parse(dto.DueDateLayout, due)
	require.NoError(t, err)
	inv := &entity.Invoice{
		ID:          "inv-" + companyID + "-" + due + "-" + strconv.Itoa(len(f.invoices.invoices)),
		CompanyID:   companyID,
		Description: "Servicio mensual",
		Amount:      decimal.NewFromInt(1000),
		DueDate:     dueDate,
		CreatedBy:   "u-super",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if paid {
		inv.MarkPaid(time.Now())
	}
	require.NoError(t, f.invoices.Create(context.Background(), inv))
	return inv
}

// ─────────────────────────────────────────────────────────────────────────────
// Crear
// ─────────────────────────────────────────────────────────────────────────────

func TestInvoiceCreate_AdminEnSuEmpresa(t *testing.T) {
	f := newInvoiceFixture(t)

	resp, err := f.uc.Create(context.Background(), adminOf(f.acme.ID), nil, dto.CreateInvoiceRequest{
		Description: "Consultoría",
		Amount:      decimal.NewFromInt(5000),
		DueDate:     "2026-09-15",
	})
	require.NoError(t, err)
	assert.Equal(t, f.acme.ID, resp.CompanyID, "el admin sin company_id explícito factura a su propia empresa")
	assert.False(t, resp.IsPaid)
	assert.Nil(t, resp.PaidAt)
}

func TestInvoiceCreate_PagadaDesdeElInicio_FijaPaidAt(t *testing.T) {
	f := newInvoiceFixture(t)
	paid := true

	resp, err := f.uc.Create(context.Background(), superadmin(), nil, dto.CreateInvoiceRequest{
		CompanyID:   f.acme.ID,
		Description: "Anticipo",
		Amount:      decimal.NewFromInt(300),
		DueDate:     "2026-09-01",
		IsPaid:      &paid,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsPaid)
	require.NotNil(t, resp.PaidAt, "is_paid=true al crear debe fijar paid_at en la misma operación")
}

func TestInvoiceCreate_UserNoPuede(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.uc.Create(context.Background(), userOf(f.acme.ID), nil, dto.CreateInvoiceRequest{
		Description: "Intento",
		Amount:      decimal.NewFromInt(10),
		DueDate:     "2026-09-01",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "el rol user no crea facturas ni en su propia empresa")
}

func TestInvoiceCreate_AdminEnOtraEmpresa_Prohibido(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.uc.Create(context.Background(), adminOf(f.acme.ID), nil, dto.CreateInvoiceRequest{
		CompanyID:   f.tech.ID,
		Description: "Ajena",
		Amount:      decimal.NewFromInt(10),
		DueDate:     "2026-09-01",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInvoiceCreate_MontoNegativo_Invalido(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.uc.Create(context.Background(), superadmin(), nil, dto.CreateInvoiceRequest{
		CompanyID:   f.acme.ID,
		Description: "Negativa",
		Amount:      decimal.NewFromInt(-1),
		DueDate:     "2026-09-01",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInvoiceCreate_FechaMalFormada_Invalida(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.uc.Create(context.Background(), superadmin(), nil, dto.CreateInvoiceRequest{
		CompanyID:   f.acme.ID,
		Description: "Fecha rota",
		Amount:      decimal.NewFromInt(10),
		DueDate:     "15/09/2026",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ─────────────────────────────────────────────────────────────────────────────
// Toggle de pago — el par is_paid/paid_at cambia siempre junto
// ─────────────────────────────────────────────────────────────────────────────

func TestInvoiceTogglePaid_ParAtomico(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.seedInvoice(t, f.acme.ID, "2026-09-10", false)
	p := userOf(f.acme.ID)

	resp, err := f.uc.TogglePaid(context.Background(), p, nil, inv.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsPaid)
	require.NotNil(t, resp.PaidAt, "pagar debe fijar paid_at")

	resp, err = f.uc.TogglePaid(context.Background(), p, nil, inv.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsPaid)
	assert.Nil(t, resp.PaidAt, "despagar debe limpiar paid_at")
}

func TestInvoiceTogglePaid_UserDeOtraEmpresa_Prohibido(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.seedInvoice(t, f.acme.ID, "2026-09-10", false)

	_, err := f.uc.TogglePaid(context.Background(), userOf(f.tech.ID), nil, inv.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInvoiceUpdate_IsPaidFalse_LimpiaPaidAt(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.seedInvoice(t, f.acme.ID, "2026-09-10", true)
	unpaid := false

	resp, err := f.uc.Update(context.Background(), adminOf(f.acme.ID), nil, inv.ID, dto.UpdateInvoiceRequest{
		IsPaid: &unpaid,
	})
	require.NoError(t, err)
	assert.False(t, resp.IsPaid)
	assert.Nil(t, resp.PaidAt)
}

// ─────────────────────────────────────────────────────────────────────────────
// Aislamiento por tenant
// ─────────────────────────────────────────────────────────────────────────────

func TestInvoiceGet_TenantAjeno_SeVeComoNoExistente(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.seedInvoice(t, f.tech.ID, "2026-09-10", false)

	// La ruta tenant de acme no revela la existencia de facturas de techstart.
	_, err := f.uc.Get(context.Background(), superadmin(), f.acme, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceList_AdminSoloVeSuEmpresa(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedInvoice(t, f.acme.ID, "2026-09-05", false)
	f.seedInvoice(t, f.tech.ID, "2026-09-06", false)

	resp, err := f.uc.List(context.Background(), adminOf(f.acme.ID), nil, dto.ListInvoicesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, f.acme.ID, resp.Items[0].CompanyID)
}

func TestInvoiceList_SuperadminVeTodo_YPuedeAcotar(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedInvoice(t, f.acme.ID, "2026-09-05", false)
	f.seedInvoice(t, f.tech.ID, "2026-09-06", false)

	all, err := f.uc.List(context.Background(), superadmin(), nil, dto.ListInvoicesRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	scoped, err := f.uc.List(context.Background(), superadmin(), nil, dto.ListInvoicesRequest{CompanyID: f.tech.ID})
	require.NoError(t, err)
	require.Len(t, scoped.Items, 1)
	assert.Equal(t, f.tech.ID, scoped.Items[0].CompanyID)
}

func TestInvoiceList_CompanyIDAjeno_SeIgnoraParaNoSuperadmin(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedInvoice(t, f.acme.ID, "2026-09-05", false)
	f.seedInvoice(t, f.tech.ID, "2026-09-06", false)

	// Un admin que pide company_id ajeno sigue viendo solo su empresa.
	resp, err := f.uc.List(context.Background(), adminOf(f.acme.ID), nil, dto.ListInvoicesRequest{CompanyID: f.tech.ID})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, f.acme.ID, resp.Items[0].CompanyID)
}

func TestInvoiceList_FiltroMesYEstado(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedInvoice(t, f.acme.ID, "2026-09-05", false)
	f.seedInvoice(t, f.acme.ID, "2026-09-20", true)
	f.seedInvoice(t, f.acme.ID, "2026-10-01", false)
	unpaid := false

	resp, err := f.uc.List(context.Background(), superadmin(), nil, dto.ListInvoicesRequest{
		Month:  9,
		Year:   2026,
		IsPaid: &unpaid,
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "2026-09-05", resp.Items[0].DueDate)
}

// ─────────────────────────────────────────────────────────────────────────────
// Calendario y vencimientos
// ─────────────────────────────────────────────────────────────────────────────

func TestInvoiceCalendar_AgrupaPorDia(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedInvoice(t, f.acme.ID, "2026-09-05", false)
	f.seedInvoice(t, f.acme.ID, "2026-09-05", true)
	f.seedInvoice(t, f.acme.ID, "2026-09-20", false)

	resp, err := f.uc.Calendar(context.Background(), adminOf(f.acme.ID), nil, "", 9, 2026)
	require.NoError(t, err)
	require.Contains(t, resp.Days, 5)
	assert.Equal(t, 1, resp.Days[5].Pending)
	assert.Equal(t, 1, resp.Days[5].Paid)
	assert.Equal(t, 2, resp.Days[5].Total)
	assert.Equal(t, 1, resp.Days[20].Pending)
}

func TestInvoiceCalendar_MesFueraDeRango(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.uc.Calendar(context.Background(), superadmin(), nil, "", 13, 2026)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInvoiceByDueDate_SoloElDiaExacto(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedInvoice(t, f.acme.ID, "2026-09-05", false)
	f.seedInvoice(t, f.acme.ID, "2026-09-06", false)

	items, err := f.uc.ByDueDate(context.Background(), adminOf(f.acme.ID), nil, "", "2026-09-05")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2026-09-05", items[0].DueDate)
}

// ─────────────────────────────────────────────────────────────────────────────
// Comprobantes y PDF
// ─────────────────────────────────────────────────────────────────────────────

func TestInvoiceAttachFile_SoloPDF(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.seedInvoice(t, f.acme.ID, "2026-09-10", false)

	_, err := f.uc.AttachFile(context.Background(), adminOf(f.acme.ID), nil, inv.ID, []byte("GIF89a"), "image/gif")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInvoiceAttachFile_ReemplazaElAnterior(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.seedInvoice(t, f.acme.ID, "2026-09-10", false)
	p := adminOf(f.acme.ID)

	first, err := f.uc.AttachFile(context.Background(), p, nil, inv.ID, []byte("%PDF-1"), "application/pdf")
	require.NoError(t, err)
	second, err := f.uc.AttachFile(context.Background(), p, nil, inv.ID, []byte("%PDF-2"), "application/pdf")
	require.NoError(t, err)

	assert.NotEqual(t, first.FileURL, second.FileURL)
	assert.Contains(t, f.files.deleted, first.FileURL, "el comprobante anterior se elimina del almacén")

	stored, err := f.invoices.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, second.FileURL, stored.FileURL)
}

func TestInvoiceDelete_EliminaComprobante(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.seedInvoice(t, f.acme.ID, "2026-09-10", false)
	p := adminOf(f.acme.ID)

	up, err := f.uc.AttachFile(context.Background(), p, nil, inv.ID, []byte("%PDF-1"), "application/pdf")
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), p, nil, inv.ID))
	assert.Contains(t, f.files.deleted, up.FileURL)

	stored, err := f.invoices.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestInvoiceDownloadPDF_NombreYContenido(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.seedInvoice(t, f.acme.ID, "2026-09-10", false)

	data, filename, err := f.uc.DownloadPDF(context.Background(), userOf(f.acme.ID), nil, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "factura-"+inv.ID+".pdf", filename)
	assert.NotEmpty(t, data)
}

func TestInvoiceDownloadPDF_UserDeOtraEmpresa_Prohibido(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.seedInvoice(t, f.acme.ID, "2026-09-10", false)

	_, _, err := f.uc.DownloadPDF(context.Background(), userOf(f.tech.ID), nil, inv.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
