package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/application/ports"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/policy"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

// InvoiceUseCase aplica reglas de negocio para facturas por cobrar. Sirve a
// la superficie global (/invoices) y a la de tenant (/:company_key/invoices);
// en esta última el parámetro tenant no es nil y acota todas las operaciones
// a esa empresa.
type InvoiceUseCase struct {
	repo        repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	files       ports.FileStore
	pdf         ports.InvoicePDFGenerator
}

// NewInvoiceUseCase construye el caso de uso con sus puertos.
func NewInvoiceUseCase(
	repo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	files ports.FileStore,
	pdf ports.InvoicePDFGenerator,
) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, companyRepo: companyRepo, files: files, pdf: pdf}
}

// List lista facturas con filtros opcionales aplicando el filtro de filas del
// motor de políticas. En rutas tenant, tenant acota el scope a esa empresa.
func (uc *InvoiceUseCase) List(ctx context.Context, p policy.Principal, tenant *entity.Company, in dto.ListInvoicesRequest) (*dto.InvoiceListResponse, error) {
	scope, err := uc.scopeFor(p, tenant, in.CompanyID)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()
	items := []dto.InvoiceResponse{}
	if !scope.Empty() {
		list, err := uc.repo.List(ctx, repository.InvoiceFilter{
			Scope:  scope,
			Month:  in.Month,
			Year:   in.Year,
			IsPaid: in.IsPaid,
			Limit:  in.Limit,
			Offset: in.Offset,
		})
		if err != nil {
			return nil, err
		}
		for _, inv := range list {
			items = append(items, *entityToInvoiceResponse(inv))
		}
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Get obtiene una factura. Todo rol puede leer facturas de su propia empresa;
// fuera de ella solo superadmin.
func (uc *InvoiceUseCase) Get(ctx context.Context, p policy.Principal, tenant *entity.Company, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.load(ctx, tenant, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanReadInvoice(p, invoice.CompanyID); err != nil {
		return nil, err
	}
	return entityToInvoiceResponse(invoice), nil
}

// Create crea una factura. Requiere admin o superadmin. En rutas tenant la
// empresa es la de la URL; en la global la decide el body o, en su defecto,
// la empresa propia del principal.
func (uc *InvoiceUseCase) Create(ctx context.Context, p policy.Principal, tenant *entity.Company, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := policy.CanMutateInvoice(p); err != nil {
		return nil, err
	}
	companyID := in.CompanyID
	if tenant != nil {
		companyID = tenant.ID
	} else if companyID == "" {
		companyID = p.CompanyID
	}
	if companyID == "" {
		return nil, fmt.Errorf("company_id requerido: %w", domain.ErrValidation)
	}
	if err := policy.ResolveTenantAccess(p, companyID); err != nil {
		return nil, err
	}
	if tenant == nil {
		company, err := uc.companyRepo.GetByID(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, fmt.Errorf("empresa %s: %w", companyID, domain.ErrNotFound)
		}
	}
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("el monto no puede ser negativo: %w", domain.ErrValidation)
	}
	dueDate, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	invoice := &entity.Invoice{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Description: in.Description,
		Amount:      in.Amount,
		DueDate:     dueDate,
		Notes:       in.Notes,
		CreatedBy:   p.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.IsPaid != nil && *in.IsPaid {
		invoice.MarkPaid(now)
	}
	if err := uc.repo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return entityToInvoiceResponse(invoice), nil
}

// Update actualiza una factura campo por campo. Requiere admin o superadmin.
// Cambiar is_paid por esta vía ajusta paid_at en la misma operación.
func (uc *InvoiceUseCase) Update(ctx context.Context, p policy.Principal, tenant *entity.Company, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := policy.CanMutateInvoice(p); err != nil {
		return nil, err
	}
	invoice, err := uc.load(ctx, tenant, id)
	if err != nil {
		return nil, err
	}
	if err := policy.ResolveTenantAccess(p, invoice.CompanyID); err != nil {
		return nil, err
	}
	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return nil, fmt.Errorf("el monto no puede ser negativo: %w", domain.ErrValidation)
		}
		invoice.Amount = *in.Amount
	}
	if in.DueDate != nil {
		dueDate, err := parseDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		invoice.DueDate = dueDate
	}
	if in.Description != nil {
		invoice.Description = *in.Description
	}
	if in.Notes != nil {
		invoice.Notes = *in.Notes
	}
	if in.IsPaid != nil && *in.IsPaid != invoice.IsPaid {
		if *in.IsPaid {
			invoice.MarkPaid(time.Now())
		} else {
			invoice.MarkUnpaid()
		}
	}
	invoice.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return entityToInvoiceResponse(invoice), nil
}

// Delete elimina una factura y su comprobante adjunto si lo hay.
func (uc *InvoiceUseCase) Delete(ctx context.Context, p policy.Principal, tenant *entity.Company, id string) error {
	if err := policy.CanMutateInvoice(p); err != nil {
		return err
	}
	invoice, err := uc.load(ctx, tenant, id)
	if err != nil {
		return err
	}
	if err := policy.ResolveTenantAccess(p, invoice.CompanyID); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, invoice.ID); err != nil {
		return err
	}
	if invoice.FileURL != "" {
		// El archivo huérfano no invalida la eliminación.
		_, _ = uc.files.Delete(ctx, invoice.FileURL)
	}
	return nil
}

// TogglePaid alterna el estado de pago de la factura. Lo puede hacer todo rol
// dentro de su propia empresa; paid_at cambia junto con is_paid siempre.
func (uc *InvoiceUseCase) TogglePaid(ctx context.Context, p policy.Principal, tenant *entity.Company, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.load(ctx, tenant, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanToggleInvoicePaid(p, invoice.CompanyID); err != nil {
		return nil, err
	}
	now := time.Now()
	invoice.TogglePaid(now)
	invoice.UpdatedAt = now
	if err := uc.repo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return entityToInvoiceResponse(invoice), nil
}

// Calendar devuelve el calendario de vencimientos del mes, agrupado por día,
// dentro del scope visible.
func (uc *InvoiceUseCase) Calendar(ctx context.Context, p policy.Principal, tenant *entity.Company, companyID string, month, year int) (*dto.CalendarResponse, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("mes %d fuera de rango: %w", month, domain.ErrValidation)
	}
	if year < 2000 {
		return nil, fmt.Errorf("año %d fuera de rango: %w", year, domain.ErrValidation)
	}
	scope, err := uc.scopeFor(p, tenant, companyID)
	if err != nil {
		return nil, err
	}
	days := map[int]dto.CalendarDayResponse{}
	if !scope.Empty() {
		grouped, err := uc.repo.Calendar(ctx, scope, month, year)
		if err != nil {
			return nil, err
		}
		for day, d := range grouped {
			days[day] = dto.CalendarDayResponse{Pending: d.Pending, Paid: d.Paid, Total: d.Total}
		}
	}
	return &dto.CalendarResponse{Days: days, Month: month, Year: year}, nil
}

// ByDueDate lista las facturas que vencen exactamente en la fecha dada
// (YYYY-MM-DD) dentro del scope visible.
func (uc *InvoiceUseCase) ByDueDate(ctx context.Context, p policy.Principal, tenant *entity.Company, companyID, date string) ([]dto.InvoiceResponse, error) {
	day, err := parseDueDate(date)
	if err != nil {
		return nil, err
	}
	scope, err := uc.scopeFor(p, tenant, companyID)
	if err != nil {
		return nil, err
	}
	items := []dto.InvoiceResponse{}
	if !scope.Empty() {
		list, err := uc.repo.ListByDueDate(ctx, scope, day)
		if err != nil {
			return nil, err
		}
		for _, inv := range list {
			items = append(items, *entityToInvoiceResponse(inv))
		}
	}
	return items, nil
}

// AttachFile adjunta el comprobante PDF a la factura, reemplazando el
// anterior si existía. Requiere admin o superadmin.
func (uc *InvoiceUseCase) AttachFile(ctx context.Context, p policy.Principal, tenant *entity.Company, id string, data []byte, contentType string) (*dto.UploadFileResponse, error) {
	if err := policy.CanMutateInvoice(p); err != nil {
		return nil, err
	}
	invoice, err := uc.load(ctx, tenant, id)
	if err != nil {
		return nil, err
	}
	if err := policy.ResolveTenantAccess(p, invoice.CompanyID); err != nil {
		return nil, err
	}
	if contentType != "application/pdf" {
		return nil, fmt.Errorf("el comprobante debe ser un PDF: %w", domain.ErrValidation)
	}
	url, err := uc.files.Save(ctx, data, contentType)
	if err != nil {
		return nil, err
	}
	if invoice.FileURL != "" {
		_, _ = uc.files.Delete(ctx, invoice.FileURL)
	}
	invoice.FileURL = url
	invoice.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return &dto.UploadFileResponse{OK: true, FileURL: url}, nil
}

// DownloadPDF genera la representación gráfica (PDF) de la factura con los
// datos de la empresa emisora. Es una lectura: mismo control que Get.
func (uc *InvoiceUseCase) DownloadPDF(ctx context.Context, p policy.Principal, tenant *entity.Company, id string) (pdfBytes []byte, filename string, err error) {
	invoice, err := uc.load(ctx, tenant, id)
	if err != nil {
		return nil, "", err
	}
	if err := policy.CanReadInvoice(p, invoice.CompanyID); err != nil {
		return nil, "", err
	}
	company := tenant
	if company == nil {
		company, err = uc.companyRepo.GetByID(ctx, invoice.CompanyID)
		if err != nil {
			return nil, "", err
		}
		if company == nil {
			return nil, "", fmt.Errorf("empresa %s: %w", invoice.CompanyID, domain.ErrNotFound)
		}
	}
	pdfBytes, err = uc.pdf.GenerateReceipt(company, invoice)
	if err != nil {
		return nil, "", fmt.Errorf("generar pdf: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura-%s.pdf", invoice.ID), nil
}

// load carga una factura; en rutas tenant, una factura de otra empresa es
// indistinguible de una inexistente.
func (uc *InvoiceUseCase) load(ctx context.Context, tenant *entity.Company, id string) (*entity.Invoice, error) {
	invoice, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil || (tenant != nil && invoice.CompanyID != tenant.ID) {
		return nil, fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
	}
	return invoice, nil
}

// scopeFor arma el filtro de filas: el tenant de la URL si lo hay (previa
// autorización), o el filtro del motor de políticas. El parámetro company_id
// solo acota para superadmin; para el resto manda su propia empresa.
func (uc *InvoiceUseCase) scopeFor(p policy.Principal, tenant *entity.Company, companyID string) (repository.Scope, error) {
	if tenant != nil {
		if err := policy.ResolveTenantAccess(p, tenant.ID); err != nil {
			return repository.Scope{}, err
		}
		return repository.Scope{CompanyIDs: []string{tenant.ID}}, nil
	}
	filter := policy.VisibleCompanies(p)
	if filter.All {
		if companyID != "" {
			return repository.Scope{CompanyIDs: []string{companyID}}, nil
		}
		return repository.Scope{All: true}, nil
	}
	return repository.Scope{CompanyIDs: filter.IDs}, nil
}

func parseDueDate(value string) (time.Time, error) {
	t, err := time.Parse(dto.DueDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q inválida, se espera YYYY-MM-DD: %w", value, domain.ErrValidation)
	}
	return t, nil
}

func entityToInvoiceResponse(i *entity.Invoice) *dto.InvoiceResponse {
	if i == nil {
		return nil
	}
	return &dto.InvoiceResponse{
		ID:          i.ID,
		CompanyID:   i.CompanyID,
		Description: i.Description,
		Amount:      i.Amount,
		DueDate:     i.DueDate.Format(dto.DueDateLayout),
		FileURL:     i.FileURL,
		IsPaid:      i.IsPaid,
		PaidAt:      i.PaidAt,
		Notes:       i.Notes,
		CreatedBy:   i.CreatedBy,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
