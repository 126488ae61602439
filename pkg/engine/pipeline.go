package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openfleet/fleetlens/pkg/booking"
	"github.com/openfleet/fleetlens/pkg/config"
	"github.com/openfleet/fleetlens/pkg/schema"
	"github.com/openfleet/fleetlens/pkg/sheet"
)

// Quality is the data-quality summary for one run: every row-level
// recovery the pipeline made, counted so a caller can display it.
type Quality struct {
	RowsTotal           int
	RowsUnparseable     int
	RowsMissingVehicle  int
	IdentifiersRejected int
	SchemaWarnings      []schema.Warning
}

// Result is the full output of one pipeline run over one workbook.
type Result struct {
	RunID        string
	SourceDigest string

	Records  []booking.Record
	Overlaps []Overlap
	Metrics  Metrics
	Quality  Quality
}

// Analyze runs the whole reconciliation pipeline over raw workbook bytes:
// read, discover sheets, locate headers, map fields, build and join
// records, detect overlaps, compute KPIs. It is a pure function of its
// inputs apart from the generated RunID, which is why Cache can memoize
// it by content digest.
func Analyze(data []byte, cfg *config.Config, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sheets, err := sheet.ReadWorkbook(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}

	roles, err := sheet.Discover(sheets, cfg.Sheets.BookingHints, cfg.Sheets.RegistryHints, cfg.Sheets.PersonnelHints)
	if err != nil {
		return nil, err
	}
	if len(roles.Booking.Rows) == 0 {
		return nil, fmt.Errorf("booking sheet %q: %w", roles.Booking.Name, sheet.ErrEmptyWorkbook)
	}

	res := &Result{
		RunID:        uuid.NewString(),
		SourceDigest: contentDigest(data),
	}

	headerRow := sheet.LocateHeader(*roles.Booking, schema.HeaderKeywords(schema.RoleBooking), cfg.Sheets.MaxHeaderScan, cfg.Sheets.BookingHeaderRow)
	cols, warnings := schema.MapHeader(roles.Booking.Rows[safeRow(roles.Booking, headerRow)], schema.RoleBooking)
	res.Quality.SchemaWarnings = append(res.Quality.SchemaWarnings, warnings...)
	for _, w := range warnings {
		logger.Warn("booking sheet schema warning", zap.String("field", string(w.Field)), zap.String("detail", w.Message))
	}

	records, stats := booking.BuildRecords(*roles.Booking, safeRow(roles.Booking, headerRow), cols, cfg.Rules)
	res.Quality.RowsTotal = stats.RowsTotal
	res.Quality.RowsUnparseable = stats.RowsUnparseable
	res.Quality.RowsMissingVehicle = stats.RowsMissingVehicle
	res.Quality.IdentifiersRejected = stats.IdentifiersRejected

	vehicles := loadVehicles(roles.Registry, cfg, res, logger)
	persons := loadPersons(roles.Personnel, cfg, res, logger)
	booking.Join(records, vehicles, persons)
	res.Records = records

	res.Overlaps = DetectOverlaps(records)
	res.Metrics = Compute(records, res.Overlaps, cfg.Capacity)

	logger.Info("pipeline run complete",
		zap.String("run_id", res.RunID),
		zap.Int("trips", res.Metrics.TotalTrips),
		zap.Float64("hours", res.Metrics.TotalHours),
		zap.Int("overlaps", res.Metrics.OverlapCount),
		zap.Int("rows_unparseable", stats.RowsUnparseable),
		zap.Int("identifiers_rejected", stats.IdentifiersRejected),
	)
	return res, nil
}

func loadVehicles(s *sheet.RawSheet, cfg *config.Config, res *Result, logger *zap.Logger) map[string]booking.VehicleEntry {
	if s == nil || len(s.Rows) == 0 {
		return nil
	}
	row := sheet.LocateHeader(*s, schema.HeaderKeywords(schema.RoleRegistry), cfg.Sheets.MaxHeaderScan, cfg.Sheets.RegistryHeaderRow)
	cols, warnings := schema.MapHeader(s.Rows[safeRow(s, row)], schema.RoleRegistry)
	res.Quality.SchemaWarnings = append(res.Quality.SchemaWarnings, warnings...)
	for _, w := range warnings {
		logger.Warn("registry sheet schema warning", zap.String("field", string(w.Field)), zap.String("detail", w.Message))
	}
	return booking.BuildVehicleDirectory(s.Rows, safeRow(s, row), cols)
}

func loadPersons(s *sheet.RawSheet, cfg *config.Config, res *Result, logger *zap.Logger) map[string]booking.PersonEntry {
	if s == nil || len(s.Rows) == 0 {
		return nil
	}
	row := sheet.LocateHeader(*s, schema.HeaderKeywords(schema.RolePersonnel), cfg.Sheets.MaxHeaderScan, cfg.Sheets.PersonnelHeaderRow)
	cols, warnings := schema.MapHeader(s.Rows[safeRow(s, row)], schema.RolePersonnel)
	res.Quality.SchemaWarnings = append(res.Quality.SchemaWarnings, warnings...)
	for _, w := range warnings {
		logger.Warn("personnel sheet schema warning", zap.String("field", string(w.Field)), zap.String("detail", w.Message))
	}
	return booking.BuildPersonDirectory(s.Rows, safeRow(s, row), cols)
}

// safeRow clamps a (possibly fallback) header index into the sheet.
func safeRow(s *sheet.RawSheet, idx int) int {
	if idx < 0 || idx >= len(s.Rows) {
		return 0
	}
	return idx
}

func contentDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
