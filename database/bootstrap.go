// database/bootstrap.go
package database

import (
	"fmt"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"musafir/entities"
)

// Options tunes the connection pool. Every operation checks out its own
// connection from the pool; a connection is never shared by two running
// operations.
type Options struct {
	MaxOpenConns int
	SlowQuery    time.Duration
}

// OpenSQLite opens (or creates) the database at path and brings the schema up
// to date. ":memory:" gives a private in-memory database.
func OpenSQLite(path string, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.StandardLogger(), logger.Config{
			SlowThreshold:             opts.SlowQuery,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates missing tables and the uniqueness constraints the
// persistence layer relies on.
func Migrate(db *gorm.DB) error {
	// run BEFORE AutoMigrate/unique index so legacy duplicate places don't
	// make the index creation fail
	if err := dedupeLegacyPlaces(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Trip{},
		&entities.Place{},
		&entities.PlaceDetail{},
		&entities.ItineraryItem{},
		&entities.PlanningSession{},
		&entities.SessionEntry{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	// NULL coordinates must collide too, so the identity index is on
	// expressions rather than the raw columns.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_places_identity
ON places (name, IFNULL(latitude, -999), IFNULL(longitude, -999))`).Error; err != nil {
		return fmt.Errorf("create places identity index: %w", err)
	}
	return nil
}

// dedupeLegacyPlaces folds duplicate (name, latitude, longitude) rows left by
// databases created before the identity index existed. Items and details are
// re-pointed to the lowest place_id of each group.
func dedupeLegacyPlaces(db *gorm.DB) error {
	var tbl string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name='places'`).Scan(&tbl).Error; err != nil {
		return fmt.Errorf("check table exist: %w", err)
	}
	if tbl == "" {
		// fresh DB, nothing to do
		return nil
	}
	var idx string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='index' AND name='ux_places_identity'`).Scan(&idx).Error; err != nil {
		return fmt.Errorf("check index exist: %w", err)
	}
	if idx != "" {
		return nil
	}

	type dup struct {
		KeepID uint
		DropID uint
	}
	var dups []dup
	if err := db.Raw(`
SELECT k.keep_id AS keep_id, p.place_id AS drop_id
FROM places p
JOIN (
    SELECT MIN(place_id) AS keep_id, name,
           IFNULL(latitude, -999) AS lat, IFNULL(longitude, -999) AS lng
    FROM places
    GROUP BY name, IFNULL(latitude, -999), IFNULL(longitude, -999)
    HAVING COUNT(*) > 1
) k ON k.name = p.name
   AND k.lat = IFNULL(p.latitude, -999)
   AND k.lng = IFNULL(p.longitude, -999)
WHERE p.place_id <> k.keep_id`).Scan(&dups).Error; err != nil {
		return fmt.Errorf("find duplicate places: %w", err)
	}
	if len(dups) == 0 {
		return nil
	}

	log.WithField("duplicates", len(dups)).Warn("folding duplicate places before creating identity index")
	return db.Transaction(func(tx *gorm.DB) error {
		for _, d := range dups {
			if hasTable(tx, "itinerary_items") {
				if err := tx.Exec(`UPDATE itinerary_items SET place_id = ? WHERE place_id = ?`, d.KeepID, d.DropID).Error; err != nil {
					return err
				}
			}
			if hasTable(tx, "place_details") {
				if err := tx.Exec(`UPDATE OR IGNORE place_details SET place_id = ? WHERE place_id = ?`, d.KeepID, d.DropID).Error; err != nil {
					return err
				}
				if err := tx.Exec(`DELETE FROM place_details WHERE place_id = ?`, d.DropID).Error; err != nil {
					return err
				}
			}
			if err := tx.Exec(`DELETE FROM places WHERE place_id = ?`, d.DropID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func hasTable(db *gorm.DB, name string) bool {
	var tbl string
	_ = db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&tbl).Error
	return tbl != ""
}

func dsn(path string) string {
	if path == ":memory:" {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}
