package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/apex/log"
)

// Schema contains the catalog database schema
const Schema = `
CREATE TABLE IF NOT EXISTS machines (
    seq INT AUTO_INCREMENT PRIMARY KEY,
    make VARCHAR(100) NOT NULL,
    model VARCHAR(100) NOT NULL,
    equipment_type ENUM('track_loader', 'mini_excavator') NOT NULL DEFAULT 'track_loader',
    is_active BOOLEAN DEFAULT TRUE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    UNIQUE KEY unique_make_model (make, model),
    INDEX idx_make (make)
);

CREATE TABLE IF NOT EXISTS track_sizes (
    size VARCHAR(50) PRIMARY KEY,
    width FLOAT,
    pitch FLOAT,
    links INT,
    price DECIMAL(10, 2),
    is_in_stock BOOLEAN DEFAULT FALSE,
    inventory_count INT DEFAULT 0,
    description VARCHAR(256),
    is_active BOOLEAN DEFAULT TRUE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS part_numbers (
    part_number VARCHAR(50) PRIMARY KEY,
    description VARCHAR(256),
    price DECIMAL(10, 2),
    is_in_stock BOOLEAN DEFAULT FALSE,
    is_active BOOLEAN DEFAULT TRUE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS compatibility (
    make VARCHAR(100) NOT NULL,
    model VARCHAR(100) NOT NULL,
    size VARCHAR(50) NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (make, model, size),
    FOREIGN KEY (size) REFERENCES track_sizes(size) ON DELETE CASCADE,
    INDEX idx_machine (make, model)
);
`

// InitSchema creates the catalog tables if they don't exist.
func InitSchema(db *sql.DB) error {
	for _, stmt := range strings.Split(Schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	log.Info("Catalog schema initialized")
	return nil
}
