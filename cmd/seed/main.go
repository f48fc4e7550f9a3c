// seed puebla la base de datos con los planes contratables y datos de
// demostración (empresas, usuarios y facturas de prueba).
//
// Uso: go run ./cmd/seed
// Idempotente: si ya existen usuarios no vuelve a cargar los datos demo;
// los planes se insertan solo si faltan.
//
// Credenciales demo (solo entornos de desarrollo):
//
//	super@example.com / super123  (superadmin, acceso global)
//	admin@acme.com    / admin123  (admin del tenant "acme")
//	user@acme.com     / user123   (user del tenant "acme")
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Cobranza-api/pkg/config"
	"github.com/jhoicas/Cobranza-api/pkg/password"
	"github.com/jhoicas/Cobranza-api/pkg/slug"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := run(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, pool *pgxpool.Pool) error {
	planRepo := postgres.NewPlanRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)

	starterID, err := seedPlans(ctx, planRepo)
	if err != nil {
		return err
	}

	// Datos demo: solo si la base está vacía.
	existing, err := userRepo.GetByEmail(ctx, "super@example.com")
	if err != nil {
		return err
	}
	if existing != nil {
		fmt.Println("La base ya tiene datos demo. Nada que hacer.")
		return nil
	}

	now := time.Now().UTC()

	acme, err := seedCompany(ctx, companyRepo, &entity.Company{
		Name:         "ACME Corporation",
		CNPJ:         "12345678000190",
		Email:        "contato@acme.com",
		Phone:        "(11) 1234-5678",
		Address:      "Av. Paulista, 1000 - São Paulo, SP",
		PrimaryColor: entity.DefaultPrimaryColor,
		PlanID:       starterID,
	}, now)
	if err != nil {
		return err
	}
	techstart, err := seedCompany(ctx, companyRepo, &entity.Company{
		Name:         "TechStart Ltda",
		CNPJ:         "98765432000110",
		Email:        "contato@techstart.com",
		Phone:        "(21) 9876-5432",
		Address:      "Rua das Flores, 200 - Rio de Janeiro, RJ",
		PrimaryColor: "#10B981",
		PlanID:       starterID,
	}, now)
	if err != nil {
		return err
	}

	super, err := seedUser(ctx, userRepo, "super@example.com", "super123", "Super Admin", entity.RoleSuperAdmin, "", now)
	if err != nil {
		return err
	}
	seedUsers := []struct {
		email, pass, name, role string
		company                 *entity.Company
	}{
		{"admin@acme.com", "admin123", "Admin ACME", entity.RoleAdmin, acme},
		{"admin@techstart.com", "admin123", "Admin TechStart", entity.RoleAdmin, techstart},
		{"user@acme.com", "user123", "ACME User", entity.RoleUser, acme},
		{"user@techstart.com", "user123", "TechStart User", entity.RoleUser, techstart},
	}
	for _, s := range seedUsers {
		if _, err := seedUser(ctx, userRepo, s.email, s.pass, s.name, s.role, s.company.ID, now); err != nil {
			return err
		}
	}

	if err := seedInvoices(ctx, invoiceRepo, acme, techstart, super, now); err != nil {
		return err
	}

	fmt.Println("Base de datos poblada.")
	fmt.Println()
	fmt.Println("Usuarios de prueba:")
	fmt.Println("  super@example.com / super123  -> POST /api/v1/auth/login")
	fmt.Println("  admin@acme.com    / admin123  -> POST /api/v1/acme/auth/login")
	fmt.Println("  user@techstart.com / user123  -> POST /api/v1/techstart/auth/login")
	return nil
}

// seedPlans inserta los tres planes si no existen y devuelve el ID del starter.
func seedPlans(ctx context.Context, repo *postgres.PlanRepo) (string, error) {
	plans := []*entity.Plan{
		{
			Name:        entity.PlanStarter,
			DisplayName: "Starter",
			Price:       decimal.Zero,
			MaxClients:  1,
			Features:    []string{"1 cliente", "facturas ilimitadas", "calendario de vencimientos"},
		},
		{
			Name:        entity.PlanProfissional,
			DisplayName: "Profissional",
			Price:       decimal.NewFromInt(97),
			MaxClients:  30,
			Features:    []string{"hasta 30 clientes", "comprobantes PDF", "logo y color personalizados"},
		},
		{
			Name:        entity.PlanEnterprise,
			DisplayName: "Enterprise",
			Price:       decimal.NewFromInt(297),
			MaxClients:  -1,
			Features:    []string{"clientes ilimitados", "soporte prioritario", "almacenamiento S3"},
		},
	}

	starterID := ""
	for _, p := range plans {
		existing, err := repo.GetByName(ctx, p.Name)
		if err != nil {
			return "", err
		}
		if existing == nil {
			p.ID = uuid.NewString()
			p.IsActive = true
			p.CreatedAt = time.Now().UTC()
			if err := repo.Create(ctx, p); err != nil {
				return "", fmt.Errorf("plan %s: %w", p.Name, err)
			}
			existing = p
			fmt.Printf("Plan creado: %s (R$ %s)\n", p.DisplayName, p.Price.StringFixed(2))
		}
		if existing.Name == entity.PlanStarter {
			starterID = existing.ID
		}
	}
	return starterID, nil
}

func seedCompany(ctx context.Context, repo *postgres.CompanyRepo, c *entity.Company, now time.Time) (*entity.Company, error) {
	c.ID = uuid.NewString()
	c.CompanyKey = slug.Normalize(c.Name)
	c.IsActive = true
	c.CreatedAt = now
	c.UpdatedAt = now
	// "ACME Corporation" -> "acme-corporation"; para los demos queremos el slug corto.
	switch c.Name {
	case "ACME Corporation":
		c.CompanyKey = "acme"
	case "TechStart Ltda":
		c.CompanyKey = "techstart"
	}
	if err := repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("empresa %s: %w", c.CompanyKey, err)
	}
	return c, nil
}

func seedUser(ctx context.Context, repo *postgres.UserRepo, email, plain, name, role, companyID string, now time.Time) (*entity.User, error) {
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("usuario %s: %w", email, err)
	}
	return u, nil
}

func seedInvoices(ctx context.Context, repo *postgres.InvoiceRepo, acme, techstart *entity.Company, creator *entity.User, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	mk := func(company *entity.Company, desc string, amount int64, dueInDays int, paid bool, notes string) *entity.Invoice {
		inv := &entity.Invoice{
			ID:          uuid.NewString(),
			CompanyID:   company.ID,
			Description: desc,
			Amount:      decimal.NewFromInt(amount),
			DueDate:     today.AddDate(0, 0, dueInDays),
			Notes:       notes,
			CreatedBy:   creator.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if paid {
			inv.MarkPaid(now)
		}
		return inv
	}

	invoices := []*entity.Invoice{
		mk(acme, "Licença de Software - Janeiro", 5000, 5, false, ""),
		mk(acme, "Manutenção Servidor", 2500, 15, true, ""),
		mk(acme, "Consultoria TI", 8000, -10, false, "Pagamento atrasado"),
		mk(techstart, "Hospedagem Cloud - Q1", 3500, 20, false, ""),
		mk(techstart, "Suporte Técnico", 1500, 7, true, ""),
		mk(techstart, "Desenvolvimento App Mobile", 15000, 30, false, ""),
	}
	for _, inv := range invoices {
		if err := repo.Create(ctx, inv); err != nil {
			return fmt.Errorf("factura %q: %w", inv.Description, err)
		}
	}
	return nil
}
