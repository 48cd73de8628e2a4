package persistence

import (
	"testing"
	"time"

	"github.com/aptos/backend/internal/domain/leasing"
	"github.com/aptos/backend/internal/domain/property"
	"github.com/aptos/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema.
// TranslateError is enabled to mirror production: unique violations must
// surface as gorm.ErrDuplicatedKey for the lease overlap backstop.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE buildings (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			street TEXT,
			neighborhood TEXT,
			city TEXT,
			state TEXT,
			zip_code TEXT,
			country TEXT,
			video_url TEXT,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE apartments (
			id TEXT PRIMARY KEY,
			unit_number TEXT NOT NULL,
			floor TEXT,
			building_id TEXT NOT NULL,
			description TEXT,
			rental_price NUMERIC NOT NULL DEFAULT 0,
			is_available INTEGER NOT NULL DEFAULT 1,
			is_furnished INTEGER NOT NULL DEFAULT 0,
			is_pets_allowed INTEGER NOT NULL DEFAULT 0,
			has_laundry INTEGER NOT NULL DEFAULT 0,
			has_parking INTEGER NOT NULL DEFAULT 0,
			has_internet INTEGER NOT NULL DEFAULT 0,
			has_air_conditioning INTEGER NOT NULL DEFAULT 0,
			bedrooms INTEGER NOT NULL DEFAULT 0,
			bathrooms INTEGER NOT NULL DEFAULT 0,
			square_footage INTEGER NOT NULL DEFAULT 0,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE(building_id, unit_number)
		)`,
		`CREATE TABLE tenants (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			document TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			status TEXT NOT NULL DEFAULT 'ACTIVE',
			notes TEXT,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE UNIQUE INDEX uniq_tenant_document ON tenants(document)`,
		`CREATE TABLE tenant_status_history (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			previous_status TEXT NOT NULL,
			new_status TEXT NOT NULL,
			reason TEXT,
			reason_category TEXT NOT NULL DEFAULT 'MANUAL',
			actor TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE tenant_status_rules (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			criterion TEXT NOT NULL,
			threshold_days INTEGER NOT NULL,
			target_status TEXT NOT NULL,
			enabled INTEGER NOT NULL DEFAULT 1,
			automatic INTEGER NOT NULL DEFAULT 0,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE leases (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			apartment_id TEXT NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE,
			rent NUMERIC,
			active INTEGER NOT NULL DEFAULT 1,
			notes TEXT,
			created_by TEXT,
			updated_by TEXT,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE UNIQUE INDEX uniq_lease_active_apartment ON leases(apartment_id) WHERE active = 1`,
		`CREATE TABLE lease_history (
			id TEXT PRIMARY KEY,
			lease_id TEXT NOT NULL,
			apartment_id TEXT NOT NULL,
			tenant_id TEXT NOT NULL,
			event TEXT NOT NULL,
			snapshot TEXT,
			actor TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func seedBuilding(t *testing.T, db *gorm.DB) *property.Building {
	t.Helper()
	building, err := property.NewBuilding("Edificio Central")
	require.NoError(t, err)
	require.NoError(t, db.Create(building).Error)
	return building
}

func seedApartment(t *testing.T, db *gorm.DB, buildingID uuid.UUID, unit string) *property.Apartment {
	t.Helper()
	apartment, err := property.NewApartment(buildingID, unit, 2, 1)
	require.NoError(t, err)
	require.NoError(t, apartment.SetRentalPrice(decimal.NewFromInt(1500)))
	require.NoError(t, db.Create(apartment).Error)
	return apartment
}

func seedTenant(t *testing.T, db *gorm.DB, cpf string) *tenancy.Tenant {
	t.Helper()
	tenant, err := tenancy.NewIndividualTenant("Maria Souza", cpf)
	require.NoError(t, err)
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

func testDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func buildLease(t *testing.T, tenantID, apartmentID uuid.UUID, start string, end *string) *leasing.Lease {
	t.Helper()
	var endDate *time.Time
	if end != nil {
		d := testDate(t, *end)
		endDate = &d
	}
	rent := decimal.NewFromInt(1500)
	lease, err := leasing.NewLease(tenantID, apartmentID, testDate(t, start), endDate, &rent)
	require.NoError(t, err)
	return lease
}

func strPtr(s string) *string {
	return &s
}
