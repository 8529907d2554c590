package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/apex/log"

	"track-catalog/models"
)

// seedEntry is one machine family with its compatible track sizes. The data
// reflects Camso fitment research for Caterpillar compact track loaders.
type seedEntry struct {
	models     []string
	trackSizes []string
	notes      string
}

var catSeedData = []seedEntry{
	{
		models:     []string{"247", "247A", "247B", "247B2", "247B3"},
		trackSizes: []string{"381x100x42"},
		notes:      "General Duty Track",
	},
	{
		models:     []string{"257", "257A", "257B", "257B2", "257B3", "257D", "257D3"},
		trackSizes: []string{"381x100x42"},
		notes:      "General Duty Track",
	},
	{
		models:     []string{"267", "267A", "267B"},
		trackSizes: []string{"457x100.6x56"},
		notes:      "General Duty Track",
	},
	{
		models:     []string{"277", "277A", "277B"},
		trackSizes: []string{"457x100.6x56"},
		notes:      "General Duty Track for A, B series",
	},
	{
		models:     []string{"277C", "277C2", "277D"},
		trackSizes: []string{"457x100.6x51"},
		notes:      "General Duty for C series and later",
	},
	{
		models:     []string{"287", "287A", "287B", "287C", "287D"},
		trackSizes: []string{"457x100x51"},
		notes:      "General Duty Track",
	},
	{
		models:     []string{"289C", "289C2", "289D", "289D2", "289D3"},
		trackSizes: []string{"400x86x56", "450x86x60"},
		notes:      "Heavy Duty Block or Bar Track options",
	},
	{
		models:     []string{"297C", "297D", "297D2", "297D2 XHP"},
		trackSizes: []string{"457x100x51"},
		notes:      "General Duty Track",
	},
	{
		models:     []string{"299C", "299C2", "299D", "299D XHP", "299D2", "299D2 XHP", "299D3", "299D3XE"},
		trackSizes: []string{"450x86x60", "400x86x60"},
		notes:      "Heavy Duty Rubber Track",
	},
	{
		models:     []string{"259", "259B", "259B3", "259C", "259D", "259D3"},
		trackSizes: []string{"320x86x53"},
		notes:      "Multi-Bar rubber track",
	},
	{
		models:     []string{"279C", "279C2", "279D", "279D2", "279D3"},
		trackSizes: []string{"400x86x56", "450x86x60"},
		notes:      "Heavy Duty Block or Bar Track options",
	},
}

// SeedCatalog loads the built-in Caterpillar track loader data. Safe to run
// repeatedly; every write is an upsert.
func (s *CatalogService) SeedCatalog(ctx context.Context) error {
	added := 0

	for _, entry := range catSeedData {
		for _, size := range entry.trackSizes {
			ts, err := parseTrackSize(size)
			if err != nil {
				return err
			}
			ts.Description = fmt.Sprintf("Caterpillar rubber track %s - %s", size, entry.notes)
			if err := s.UpsertTrackSize(ctx, ts); err != nil {
				return err
			}
		}

		for _, model := range entry.models {
			if err := s.UpsertMachine(ctx, "CAT", model, "track_loader"); err != nil {
				return err
			}
			for _, size := range entry.trackSizes {
				if err := s.UpsertCompatibility(ctx, "CAT", model, size); err != nil {
					return err
				}
			}
			added++
		}
	}

	log.Infof("Catalog seeded with %d CAT machines", added)
	return nil
}

// parseTrackSize splits a WIDTHxPITCHxLINKS size code into its dimensions.
func parseTrackSize(size string) (ts models.TrackSize, err error) {
	parts := strings.Split(size, "x")
	if len(parts) != 3 {
		return ts, fmt.Errorf("invalid track size code %q", size)
	}

	width, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return ts, fmt.Errorf("invalid width in track size %q: %w", size, err)
	}
	pitch, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return ts, fmt.Errorf("invalid pitch in track size %q: %w", size, err)
	}
	links, err := strconv.Atoi(parts[2])
	if err != nil {
		return ts, fmt.Errorf("invalid link count in track size %q: %w", size, err)
	}

	ts.Size = size
	ts.Width = &width
	ts.Pitch = &pitch
	ts.Links = &links
	return ts, nil
}
