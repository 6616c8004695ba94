package database

import (
	"galangan-backend/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN. PreferSimpleProtocol disables prepared
// statement caching to avoid 42P05 ("prepared statement already exists") when
// connecting through a pooler (PgBouncer etc.).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for all catalog, event and user tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Asset{},
		&domain.Complementary{},
		&domain.ComplementaryRelation{},
		&domain.Component{},
		&domain.ComponentRelation{},
		&domain.Event{},
		&domain.LocationEvent{},
		&domain.MaintenanceEvent{},
		&domain.RepairEvent{},
	)
}
