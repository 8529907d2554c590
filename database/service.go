package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/shopspring/decimal"

	"track-catalog/config"
	"track-catalog/matching"
	"track-catalog/models"

	_ "github.com/go-sql-driver/mysql"
)

// CatalogService handles all catalog database operations and applies the
// matching core to loaded rows. Matching runs in the service rather than in
// SQL so that queries tolerate the formatting variations the normalizer
// handles.
type CatalogService struct {
	db      *sql.DB
	matcher *matching.Matcher
	brands  *matching.BrandResolver
}

// NewCatalogService opens the database connection and wires the matcher.
func NewCatalogService(cfg *config.Config) (*CatalogService, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection with exponential backoff retry
	deadline := time.Now().Add(60 * time.Second)
	waitInterval := time.Second
	for {
		if err := db.Ping(); err == nil {
			break
		} else {
			if time.Now().After(deadline) {
				return nil, fmt.Errorf("database ping timeout: %w", err)
			}
			log.Warnf("Database connection failed, retrying in %v: %v", waitInterval, err)
			time.Sleep(waitInterval)
			waitInterval *= 2
			if waitInterval > 30*time.Second {
				waitInterval = 30 * time.Second
			}
		}
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Infof("Database connection established to %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)

	brands := matching.NewBrandResolver(cfg.BrandAliases)
	return &CatalogService{
		db:      db,
		matcher: matching.NewMatcher(brands),
		brands:  brands,
	}, nil
}

// NewCatalogServiceWithDB wires the service over an existing connection.
// Used by tests with a mocked database.
func NewCatalogServiceWithDB(db *sql.DB, aliases map[string]string) *CatalogService {
	brands := matching.NewBrandResolver(aliases)
	return &CatalogService{
		db:      db,
		matcher: matching.NewMatcher(brands),
		brands:  brands,
	}
}

// Close closes the database connection
func (s *CatalogService) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for schema initialization.
func (s *CatalogService) DB() *sql.DB {
	return s.db
}

// Brands returns the brand resolver backing this catalog.
func (s *CatalogService) Brands() *matching.BrandResolver {
	return s.brands
}

// ListMachines returns all active machines ordered by make and model.
func (s *CatalogService) ListMachines(ctx context.Context) ([]models.Machine, error) {
	query := `
		SELECT seq, make, model, equipment_type, is_active, created_at, updated_at
		FROM machines
		WHERE is_active = TRUE
		ORDER BY make, model
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query machines: %w", err)
	}
	defer rows.Close()

	var machines []models.Machine
	for rows.Next() {
		var m models.Machine
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&m.Seq, &m.Make, &m.Model, &m.EquipmentType, &m.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan machine: %w", err)
		}
		m.CreatedAt = createdAt.Format(time.RFC3339)
		m.UpdatedAt = updatedAt.Format(time.RFC3339)
		machines = append(machines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over machine rows: %w", err)
	}

	return machines, nil
}

// SearchMachines returns the active machines matching the query, in catalog
// order. An empty query returns every machine.
func (s *CatalogService) SearchMachines(ctx context.Context, query string) ([]models.Machine, error) {
	machines, err := s.ListMachines(ctx)
	if err != nil {
		return nil, err
	}

	return matching.FilterRecords(s.matcher, query, machines,
		func(m models.Machine) string { return m.Make },
		func(m models.Machine) string { return m.Model }), nil
}

// ListTrackSizes returns all active track sizes ordered by size code.
func (s *CatalogService) ListTrackSizes(ctx context.Context) ([]models.TrackSize, error) {
	query := `
		SELECT size, width, pitch, links, price, is_in_stock, inventory_count, description, is_active
		FROM track_sizes
		WHERE is_active = TRUE
		ORDER BY size
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query track sizes: %w", err)
	}
	defer rows.Close()

	var sizes []models.TrackSize
	for rows.Next() {
		ts, err := scanTrackSize(rows)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over track size rows: %w", err)
	}

	return sizes, nil
}

// SearchTrackSizes returns the active track sizes whose size code matches the
// query as a flat string. An empty query returns every size.
func (s *CatalogService) SearchTrackSizes(ctx context.Context, query string) ([]models.TrackSize, error) {
	sizes, err := s.ListTrackSizes(ctx)
	if err != nil {
		return nil, err
	}

	return matching.FilterByField(s.matcher, query, sizes,
		func(ts models.TrackSize) string { return ts.Size }), nil
}

// ListPartNumbers returns all active parts ordered by part number.
func (s *CatalogService) ListPartNumbers(ctx context.Context) ([]models.PartNumber, error) {
	query := `
		SELECT part_number, description, price, is_in_stock, is_active
		FROM part_numbers
		WHERE is_active = TRUE
		ORDER BY part_number
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query part numbers: %w", err)
	}
	defer rows.Close()

	var parts []models.PartNumber
	for rows.Next() {
		var p models.PartNumber
		var description sql.NullString
		var price sql.NullString

		if err := rows.Scan(&p.PartNumber, &description, &price, &p.IsInStock, &p.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan part number: %w", err)
		}
		if description.Valid {
			p.Description = description.String
		}
		if price.Valid {
			d, err := decimal.NewFromString(price.String)
			if err != nil {
				return nil, fmt.Errorf("invalid price for part %s: %w", p.PartNumber, err)
			}
			p.Price = &d
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over part number rows: %w", err)
	}

	return parts, nil
}

// SearchPartNumbers returns the active parts whose part number matches the
// query as a flat string. "1273807" finds "127-3807". An empty query returns
// every part.
func (s *CatalogService) SearchPartNumbers(ctx context.Context, query string) ([]models.PartNumber, error) {
	parts, err := s.ListPartNumbers(ctx)
	if err != nil {
		return nil, err
	}

	return matching.FilterByField(s.matcher, query, parts,
		func(p models.PartNumber) string { return p.PartNumber }), nil
}

// GetTrackSizesForMachine returns the track sizes compatible with a machine.
// The make is resolved through the brand alias table first, so "caterpillar"
// finds machines stored under "CAT". Models are selected by normalized
// comparison in the service, so "svl75" finds a machine stored as "SVL 75".
func (s *CatalogService) GetTrackSizesForMachine(ctx context.Context, make, model string) ([]models.TrackSize, error) {
	resolvedMake := s.brands.Resolve(make)

	query := `
		SELECT c.model, ts.size, ts.width, ts.pitch, ts.links, ts.price, ts.is_in_stock,
		       ts.inventory_count, ts.description, ts.is_active
		FROM track_sizes ts
		INNER JOIN compatibility c ON ts.size = c.size
		WHERE LOWER(c.make) = LOWER(?)
		AND ts.is_active = TRUE
		ORDER BY ts.size
	`

	rows, err := s.db.QueryContext(ctx, query, resolvedMake)
	if err != nil {
		return nil, fmt.Errorf("failed to query compatibility: %w", err)
	}
	defer rows.Close()

	wantedModel := matching.Normalize(model)

	var sizes []models.TrackSize
	seen := map[string]struct{}{}
	for rows.Next() {
		var rowModel string
		var ts models.TrackSize
		var width, pitch sql.NullFloat64
		var links sql.NullInt64
		var price sql.NullString
		var description sql.NullString

		err := rows.Scan(&rowModel, &ts.Size, &width, &pitch, &links, &price,
			&ts.IsInStock, &ts.InventoryCount, &description, &ts.IsActive)
		if err != nil {
			return nil, fmt.Errorf("failed to scan compatibility row: %w", err)
		}

		if matching.Normalize(rowModel) != wantedModel {
			continue
		}
		if _, ok := seen[ts.Size]; ok {
			continue
		}
		seen[ts.Size] = struct{}{}

		if width.Valid {
			ts.Width = &width.Float64
		}
		if pitch.Valid {
			ts.Pitch = &pitch.Float64
		}
		if links.Valid {
			n := int(links.Int64)
			ts.Links = &n
		}
		if price.Valid {
			p, err := decimal.NewFromString(price.String)
			if err != nil {
				return nil, fmt.Errorf("invalid price for track size %s: %w", ts.Size, err)
			}
			ts.Price = &p
		}
		if description.Valid {
			ts.Description = description.String
		}

		sizes = append(sizes, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over compatibility rows: %w", err)
	}

	return sizes, nil
}

// UpsertMachine inserts a machine or reactivates an existing one.
func (s *CatalogService) UpsertMachine(ctx context.Context, make, model, equipmentType string) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO machines (make, model, equipment_type, is_active)
		VALUES (?, ?, ?, TRUE)
		ON DUPLICATE KEY UPDATE equipment_type = VALUES(equipment_type), is_active = TRUE`,
		make, model, equipmentType)
	if err != nil {
		return fmt.Errorf("failed to upsert machine %s %s: %w", make, model, err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 1 {
		log.Infof("Added machine %s %s", make, model)
	}
	return nil
}

// UpsertTrackSize inserts a track size or updates its listing fields.
func (s *CatalogService) UpsertTrackSize(ctx context.Context, ts models.TrackSize) error {
	var price interface{}
	if ts.Price != nil {
		price = ts.Price.StringFixed(2)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO track_sizes (size, width, pitch, links, price, is_in_stock, inventory_count, description, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, TRUE)
		ON DUPLICATE KEY UPDATE
			width = VALUES(width), pitch = VALUES(pitch), links = VALUES(links),
			price = VALUES(price), is_in_stock = VALUES(is_in_stock),
			inventory_count = VALUES(inventory_count), description = VALUES(description),
			is_active = TRUE`,
		ts.Size, ts.Width, ts.Pitch, ts.Links, price, ts.IsInStock, ts.InventoryCount, ts.Description)
	if err != nil {
		return fmt.Errorf("failed to upsert track size %s: %w", ts.Size, err)
	}
	return nil
}

// UpsertCompatibility links a machine to a track size.
func (s *CatalogService) UpsertCompatibility(ctx context.Context, make, model, size string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO compatibility (make, model, size)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE size = VALUES(size)`,
		make, model, size)
	if err != nil {
		return fmt.Errorf("failed to upsert compatibility %s %s -> %s: %w", make, model, size, err)
	}
	return nil
}

func scanTrackSize(rows *sql.Rows) (models.TrackSize, error) {
	var ts models.TrackSize
	var width, pitch sql.NullFloat64
	var links sql.NullInt64
	var price sql.NullString
	var description sql.NullString

	err := rows.Scan(&ts.Size, &width, &pitch, &links, &price,
		&ts.IsInStock, &ts.InventoryCount, &description, &ts.IsActive)
	if err != nil {
		return ts, fmt.Errorf("failed to scan track size: %w", err)
	}

	if width.Valid {
		ts.Width = &width.Float64
	}
	if pitch.Valid {
		ts.Pitch = &pitch.Float64
	}
	if links.Valid {
		n := int(links.Int64)
		ts.Links = &n
	}
	if price.Valid {
		p, err := decimal.NewFromString(price.String)
		if err != nil {
			return ts, fmt.Errorf("invalid price for track size %s: %w", ts.Size, err)
		}
		ts.Price = &p
	}
	if description.Valid {
		ts.Description = description.String
	}

	return ts, nil
}
