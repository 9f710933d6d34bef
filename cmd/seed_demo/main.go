// seed_demo crea el tenant de demostración: el admin demo@bill-sync.com (plan STANDARD),
// un cajero y un catálogo de productos.
//
// Uso: go run ./cmd/seed_demo [ruta/productos.csv]
// El CSV opcional tiene columnas nombre;precio;iva y puede venir en ISO-8859-1.
// Si el admin ya existe, solo agrega lo que falte.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/BillSync-api/internal/application/account"
	"github.com/jhoicas/BillSync-api/internal/application/auth"
	"github.com/jhoicas/BillSync-api/internal/application/catalog"
	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/application/subscription"
	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/infrastructure/mail"
	"github.com/jhoicas/BillSync-api/internal/infrastructure/postgres"
	"github.com/jhoicas/BillSync-api/pkg/config"
	"github.com/jhoicas/BillSync-api/pkg/logger"
)

const (
	demoEmail    = "demo@bill-sync.com"
	demoPassword = "demo-password"
	cashierEmail = "cashier@bill-sync.com"
)

type productRow struct {
	Name    string
	Price   decimal.Decimal
	TaxRate decimal.Decimal
}

var defaultProducts = []productRow{
	{"Masala Chai", decimal.NewFromInt(20), decimal.NewFromInt(5)},
	{"Filter Coffee", decimal.NewFromInt(30), decimal.NewFromInt(5)},
	{"Samosa", decimal.NewFromInt(15), decimal.NewFromInt(5)},
	{"Veg Sandwich", decimal.NewFromInt(60), decimal.NewFromInt(12)},
	{"Mineral Water 1L", decimal.NewFromInt(20), decimal.NewFromInt(18)},
}

func main() {
	products := defaultProducts
	if len(os.Args) > 1 {
		rows, err := readProducts(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer productos: %v\n", err)
			os.Exit(1)
		}
		products = rows
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Named("seed_demo")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	adminRepo := postgres.NewAdminRepository(pool)
	accountRepo := postgres.NewBillingAccountRepository(pool)
	subs := subscription.NewService(postgres.NewSubscriptionRepository(pool), postgres.NewPlanRepository(pool))
	sessions := auth.NewSessionResolver(auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer})
	authUC := auth.NewAuthUseCase(adminRepo, accountRepo, postgres.NewTxRunner(pool), sessions, mail.NewLogNotifier(log), log)
	accountUC := account.NewUseCase(adminRepo, accountRepo, subs, nil)
	productUC := catalog.NewProductUseCase(postgres.NewProductRepository(pool), subs)

	login, err := authUC.Signup(ctx, dto.SignupRequest{
		Name:         "Demo Owner",
		Email:        demoEmail,
		Password:     demoPassword,
		BusinessName: "Demo Cafe",
		Phone:        "+91 98765 43210",
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		login, err = authUC.Login(ctx, dto.LoginRequest{Email: demoEmail, Password: demoPassword})
	}
	if err != nil {
		log.Fatal().Err(err).Msg("admin demo")
	}
	admin := access.Principal{ID: login.AdminID, Role: access.RoleAdmin}
	log.Info().Str("admin_id", admin.ID).Str("email", demoEmail).Msg("admin demo listo")

	_, err = accountUC.CreateCashier(ctx, admin, dto.CreateCashierRequest{
		Name:     "Demo Cashier",
		Email:    cashierEmail,
		Password: demoPassword,
	})
	switch {
	case err == nil:
		log.Info().Str("email", cashierEmail).Msg("cajero demo creado")
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrDuplicate):
		log.Info().Str("email", cashierEmail).Msg("cajero demo ya existe")
	default:
		log.Fatal().Err(err).Msg("cajero demo")
	}

	created := 0
	for _, p := range products {
		_, err := productUC.Create(ctx, admin, dto.CreateProductRequest{Name: p.Name, SKU: demoSKU(p.Name), Price: p.Price, TaxRate: p.TaxRate})
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
		default:
			log.Fatal().Err(err).Str("product", p.Name).Msg("producto demo")
		}
	}
	log.Info().Int("created", created).Int("total", len(products)).Msg("catálogo demo listo")
}

// demoSKU deriva un SKU estable del nombre; el índice único (admin_id, sku) hace que
// repetir la carga no duplique productos.
func demoSKU(name string) string {
	var b strings.Builder
	b.WriteString("DEMO-")
	for _, r := range strings.ToUpper(name) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteByte('-')
		}
	}
	return b.String()
}

// readProducts lee el CSV nombre;precio;iva. Si el archivo no es UTF-8 válido se decodifica
// como ISO-8859-1.
func readProducts(path string) ([]productRow, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var in io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		in = transform.NewReader(in, charmap.ISO8859_1.NewDecoder())
	}
	r := csv.NewReader(bufio.NewReader(in))
	r.Comma = ';'
	r.FieldsPerRecord = 3
	r.TrimLeadingSpace = true

	var rows []productRow
	for line := 1; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio %q: %w", line, rec[1], err)
		}
		tax, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: iva %q: %w", line, rec[2], err)
		}
		rows = append(rows, productRow{Name: strings.TrimSpace(rec[0]), Price: price, TaxRate: tax})
	}
	return rows, nil
}
