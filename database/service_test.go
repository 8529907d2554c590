package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jknair0/beforeeach"
)

var (
	db      *sql.DB
	mock    sqlmock.Sqlmock
	service *CatalogService
)

func testBrandAliases() map[string]string {
	return map[string]string{
		"cat":         "CAT",
		"caterpillar": "CAT",
		"bobcat":      "Bobcat",
		"kubota":      "Kubota",
	}
}

func setUp() {
	db, mock, _ = sqlmock.New()
	service = NewCatalogServiceWithDB(db, testBrandAliases())
}

func tearDown() {
	db.Close()
}

var it = beforeeach.Create(setUp, tearDown)

func machineRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"seq", "make", "model", "equipment_type", "is_active", "created_at", "updated_at"}).
		AddRow(1, "Bobcat", "T190", "track_loader", true, now, now).
		AddRow(2, "CAT", "259D", "track_loader", true, now, now).
		AddRow(3, "CAT", "320D", "mini_excavator", true, now, now).
		AddRow(4, "Kubota", "SVL75", "track_loader", true, now, now)
}

func trackSizeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"size", "width", "pitch", "links", "price", "is_in_stock", "inventory_count", "description", "is_active"}).
		AddRow("320x86x52", 320.0, 86.0, 52, "899.00", true, 4, "Bobcat rubber track", true).
		AddRow("450x86x60", 450.0, 86.0, 60, nil, false, 0, nil, true)
}

func TestSearchMachines(t *testing.T) {
	it(func() {
		testCases := []struct {
			name           string
			query          string
			expectedModels []string
		}{
			{
				// Substring matching on the resolved brand also catches
				// Bobcat, whose make contains "cat".
				name:           "brand alias finds canonical make",
				query:          "caterpillar",
				expectedModels: []string{"T190", "259D", "320D"},
			},
			{
				name:           "brand and model words",
				query:          "cat 320",
				expectedModels: []string{"320D"},
			},
			{
				name:           "model formatting difference",
				query:          "svl 75",
				expectedModels: []string{"SVL75"},
			},
			{
				name:           "empty query returns everything",
				query:          "",
				expectedModels: []string{"T190", "259D", "320D", "SVL75"},
			},
			{
				name:           "no matches",
				query:          "takeuchi tl12",
				expectedModels: []string{},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				mock.ExpectQuery("SELECT seq, make, model").WillReturnRows(machineRows())

				machines, err := service.SearchMachines(context.Background(), tc.query)
				if err != nil {
					t.Fatalf("SearchMachines(%q) returned error: %v", tc.query, err)
				}

				if len(machines) != len(tc.expectedModels) {
					t.Fatalf("SearchMachines(%q) returned %d machines, want %d: %v",
						tc.query, len(machines), len(tc.expectedModels), machines)
				}
				for i, model := range tc.expectedModels {
					if machines[i].Model != model {
						t.Errorf("SearchMachines(%q)[%d].Model = %q, want %q",
							tc.query, i, machines[i].Model, model)
					}
				}
			})
		}
	})
}

func TestSearchTrackSizes(t *testing.T) {
	it(func() {
		testCases := []struct {
			name          string
			query         string
			expectedSizes []string
		}{
			{
				name:          "width prefix",
				query:         "320x86",
				expectedSizes: []string{"320x86x52"},
			},
			{
				name:          "whitespace in query",
				query:         "450 x 86 x 60",
				expectedSizes: []string{"450x86x60"},
			},
			{
				name:          "empty query returns everything",
				query:         "",
				expectedSizes: []string{"320x86x52", "450x86x60"},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				mock.ExpectQuery("SELECT size, width, pitch").WillReturnRows(trackSizeRows())

				sizes, err := service.SearchTrackSizes(context.Background(), tc.query)
				if err != nil {
					t.Fatalf("SearchTrackSizes(%q) returned error: %v", tc.query, err)
				}

				if len(sizes) != len(tc.expectedSizes) {
					t.Fatalf("SearchTrackSizes(%q) returned %d sizes, want %d",
						tc.query, len(sizes), len(tc.expectedSizes))
				}
				for i, size := range tc.expectedSizes {
					if sizes[i].Size != size {
						t.Errorf("SearchTrackSizes(%q)[%d].Size = %q, want %q",
							tc.query, i, sizes[i].Size, size)
					}
				}
			})
		}
	})
}

func TestTrackSizeScanning(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT size, width, pitch").WillReturnRows(trackSizeRows())

		sizes, err := service.ListTrackSizes(context.Background())
		if err != nil {
			t.Fatalf("ListTrackSizes returned error: %v", err)
		}
		if len(sizes) != 2 {
			t.Fatalf("ListTrackSizes returned %d sizes, want 2", len(sizes))
		}

		priced := sizes[0]
		if priced.Price == nil || priced.Price.StringFixed(2) != "899.00" {
			t.Errorf("priced track size Price = %v, want 899.00", priced.Price)
		}
		if priced.Width == nil || *priced.Width != 320.0 {
			t.Errorf("priced track size Width = %v, want 320", priced.Width)
		}
		if priced.Links == nil || *priced.Links != 52 {
			t.Errorf("priced track size Links = %v, want 52", priced.Links)
		}

		unpriced := sizes[1]
		if unpriced.Price != nil {
			t.Errorf("unpriced track size Price = %v, want nil", unpriced.Price)
		}
		if unpriced.Description != "" {
			t.Errorf("unpriced track size Description = %q, want empty", unpriced.Description)
		}
	})
}

func compatibilityRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"model", "size", "width", "pitch", "links", "price", "is_in_stock", "inventory_count", "description", "is_active"}).
		AddRow("SVL 75", "320x86x52", 320.0, 86.0, 52, "899.00", true, 4, "Kubota rubber track", true).
		AddRow("SVL 95", "400x86x56", 400.0, 86.0, 56, nil, false, 0, nil, true)
}

func TestGetTrackSizesForMachine(t *testing.T) {
	it(func() {
		testCases := []struct {
			name          string
			make          string
			model         string
			resolvedMake  string
			expectedSizes []string
		}{
			{
				// The alias resolves to the stored make, and the collapsed
				// model form finds the spaced spelling.
				name:          "normalized model finds spaced spelling",
				make:          "kubota",
				model:         "svl75",
				resolvedMake:  "Kubota",
				expectedSizes: []string{"320x86x52"},
			},
			{
				name:          "exact model spelling",
				make:          "Kubota",
				model:         "SVL 95",
				resolvedMake:  "Kubota",
				expectedSizes: []string{"400x86x56"},
			},
			{
				name:          "unknown model finds nothing",
				make:          "Kubota",
				model:         "KX040",
				resolvedMake:  "Kubota",
				expectedSizes: []string{},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				mock.ExpectQuery("SELECT c.model, ts.size").
					WithArgs(tc.resolvedMake).
					WillReturnRows(compatibilityRows())

				sizes, err := service.GetTrackSizesForMachine(context.Background(), tc.make, tc.model)
				if err != nil {
					t.Fatalf("GetTrackSizesForMachine(%q, %q) returned error: %v", tc.make, tc.model, err)
				}

				if len(sizes) != len(tc.expectedSizes) {
					t.Fatalf("GetTrackSizesForMachine(%q, %q) returned %d sizes, want %d",
						tc.make, tc.model, len(sizes), len(tc.expectedSizes))
				}
				for i, size := range tc.expectedSizes {
					if sizes[i].Size != size {
						t.Errorf("GetTrackSizesForMachine(%q, %q)[%d].Size = %q, want %q",
							tc.make, tc.model, i, sizes[i].Size, size)
					}
				}
			})
		}

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func partNumberRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"part_number", "description", "price", "is_in_stock", "is_active"}).
		AddRow("127-3807", "CAT drive sprocket", "249.00", true, true).
		AddRow("6577954", "Bobcat idler wheel", nil, false, true)
}

func TestSearchPartNumbers(t *testing.T) {
	it(func() {
		testCases := []struct {
			name          string
			query         string
			expectedParts []string
		}{
			{
				name:          "hyphen insensitive",
				query:         "1273807",
				expectedParts: []string{"127-3807"},
			},
			{
				name:          "hyphenated query",
				query:         "127-3807",
				expectedParts: []string{"127-3807"},
			},
			{
				name:          "prefix of part number",
				query:         "6577",
				expectedParts: []string{"6577954"},
			},
			{
				name:          "empty query returns everything",
				query:         "",
				expectedParts: []string{"127-3807", "6577954"},
			},
			{
				name:          "no matches",
				query:         "999999",
				expectedParts: []string{},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				mock.ExpectQuery("SELECT part_number").WillReturnRows(partNumberRows())

				parts, err := service.SearchPartNumbers(context.Background(), tc.query)
				if err != nil {
					t.Fatalf("SearchPartNumbers(%q) returned error: %v", tc.query, err)
				}

				if len(parts) != len(tc.expectedParts) {
					t.Fatalf("SearchPartNumbers(%q) returned %d parts, want %d",
						tc.query, len(parts), len(tc.expectedParts))
				}
				for i, part := range tc.expectedParts {
					if parts[i].PartNumber != part {
						t.Errorf("SearchPartNumbers(%q)[%d].PartNumber = %q, want %q",
							tc.query, i, parts[i].PartNumber, part)
					}
				}
			})
		}
	})
}

func TestUpsertMachine(t *testing.T) {
	it(func() {
		mock.ExpectExec("INSERT INTO machines").
			WithArgs("CAT", "259D", "track_loader").
			WillReturnResult(sqlmock.NewResult(1, 1))

		if err := service.UpsertMachine(context.Background(), "CAT", "259D", "track_loader"); err != nil {
			t.Errorf("UpsertMachine returned error: %v", err)
		}

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestUpsertCompatibility(t *testing.T) {
	it(func() {
		mock.ExpectExec("INSERT INTO compatibility").
			WithArgs("CAT", "259D", "320x86x53").
			WillReturnResult(sqlmock.NewResult(1, 1))

		if err := service.UpsertCompatibility(context.Background(), "CAT", "259D", "320x86x53"); err != nil {
			t.Errorf("UpsertCompatibility returned error: %v", err)
		}
	})
}
