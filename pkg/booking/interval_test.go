package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfleet/fleetlens/pkg/config"
	"github.com/openfleet/fleetlens/pkg/schema"
	"github.com/openfleet/fleetlens/pkg/sheet"
)

var testRules = config.RuleConfig{
	HalfDayMaxHours:   4,
	IntercityKeywords: []string{"liên tỉnh", "intercity"},
}

func bookingSheet(rows ...[]string) (sheet.RawSheet, schema.ColumnMap) {
	header := []string{"Ngày khởi hành", "Giờ khởi hành", "Giờ kết thúc", "Biển số xe", "Tên tài xế", "Người sử dụng xe", "Trạng thái", "Lộ trình", "Tổng chi phí"}
	all := append([][]string{header}, rows...)
	s := sheet.RawSheet{Name: "Booking Car", Rows: all}
	cols, _ := schema.MapHeader(header, schema.RoleBooking)
	return s, cols
}

func TestBuildRecordsOvernightTrip(t *testing.T) {
	s, cols := bookingSheet(
		[]string{"2024-01-10", "22:00", "02:00", "51F-123.45", "Nguyễn Văn A", "Trần B", "Đã duyệt", "", ""},
	)

	records, stats := BuildRecords(s, 0, cols, testRules)
	require.Len(t, records, 1)
	assert.Zero(t, stats.RowsUnparseable)

	rec := records[0]
	assert.True(t, rec.IntervalParsed)
	assert.Equal(t, time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC), rec.StartAt)
	assert.Equal(t, time.Date(2024, 1, 11, 2, 0, 0, 0, time.UTC), rec.EndAt)
	assert.Equal(t, 4.0, rec.DurationHours)
	assert.Equal(t, SessionHalfDay, rec.Session)
	assert.Equal(t, "51F12345", rec.VehicleIDNorm)
	assert.True(t, rec.PlatePlausible)
	assert.Equal(t, StatusApproved, rec.Status)
}

func TestBuildRecordsEndNeverBeforeStart(t *testing.T) {
	s, cols := bookingSheet(
		[]string{"2024-01-10", "08:00", "12:30", "51F-123.45", "", "", "", "", ""},
		[]string{"2024-01-10", "23:59", "00:01", "51F-123.45", "", "", "", "", ""},
		[]string{"2024-01-10", "12:00", "12:00", "51F-123.45", "", "", "", "", ""},
	)
	records, _ := BuildRecords(s, 0, cols, testRules)
	for _, rec := range records {
		require.True(t, rec.IntervalParsed)
		assert.False(t, rec.EndAt.Before(rec.StartAt), "row %d: end %v before start %v", rec.ID, rec.EndAt, rec.StartAt)
		assert.GreaterOrEqual(t, rec.DurationHours, 0.0)
	}
}

func TestBuildRecordsUnparseableRowKeptWithZeroDuration(t *testing.T) {
	s, cols := bookingSheet(
		[]string{"not a date", "08:00", "12:00", "51F-123.45", "", "", "", "", ""},
		[]string{"2024-01-10", "junk", "12:00", "51F-123.45", "", "", "", "", ""},
		[]string{"2024-01-10", "08:00", "12:00", "51F-123.45", "", "", "", "", ""},
	)
	records, stats := BuildRecords(s, 0, cols, testRules)
	require.Len(t, records, 3)
	assert.Equal(t, 2, stats.RowsUnparseable)

	assert.False(t, records[0].IntervalParsed)
	assert.Zero(t, records[0].DurationHours)
	assert.False(t, records[1].IntervalParsed)
	assert.True(t, records[2].IntervalParsed)
	assert.Equal(t, 4.0, records[2].DurationHours)
}

func TestBuildRecordsIdentifierChecks(t *testing.T) {
	s, cols := bookingSheet(
		[]string{"2024-01-10", "08:00", "12:00", "51F-123.45", "", "", "", "", ""},
		[]string{"2024-01-10", "08:00", "12:00", "10/01/2024", "", "", "", "", ""},
		[]string{"2024-01-10", "08:00", "12:00", "", "", "", "", "", ""},
	)
	records, stats := BuildRecords(s, 0, cols, testRules)
	require.Len(t, records, 3)
	assert.Equal(t, 1, stats.IdentifiersRejected)
	assert.Equal(t, 1, stats.RowsMissingVehicle)

	assert.True(t, records[0].PlatePlausible)
	assert.False(t, records[1].PlatePlausible, "a date in the plate column must be rejected")
	assert.False(t, records[2].PlatePlausible)
}

func TestBuildRecordsSessionAndScope(t *testing.T) {
	s, cols := bookingSheet(
		[]string{"2024-01-10", "08:00", "17:30", "51F-123.45", "", "", "", "Đi liên tỉnh Bình Dương", ""},
		[]string{"2024-01-10", "08:00", "10:00", "51F-123.45", "", "", "", "Nội thành", ""},
	)
	records, _ := BuildRecords(s, 0, cols, testRules)
	require.Len(t, records, 2)

	assert.Equal(t, SessionFullDay, records[0].Session)
	assert.Equal(t, ScopeIntercity, records[0].Scope)
	assert.Equal(t, SessionHalfDay, records[1].Session)
	assert.Equal(t, ScopeLocal, records[1].Scope)
}

func TestBuildRecordsCostParsing(t *testing.T) {
	s, cols := bookingSheet(
		[]string{"2024-01-10", "08:00", "10:00", "51F-123.45", "", "", "", "", "1.500.000"},
		[]string{"2024-01-10", "08:00", "10:00", "51F-123.45", "", "", "", "", "250000"},
		[]string{"2024-01-10", "08:00", "10:00", "51F-123.45", "", "", "", "", "n/a"},
	)
	records, _ := BuildRecords(s, 0, cols, testRules)
	assert.Equal(t, 1500000.0, records[0].Cost)
	assert.Equal(t, 250000.0, records[1].Cost)
	assert.Zero(t, records[2].Cost)
}

func TestBuildRecordsSkipsEmptyRows(t *testing.T) {
	s, cols := bookingSheet(
		[]string{"", "", "", "", "", "", "", "", ""},
		[]string{"2024-01-10", "08:00", "10:00", "51F-123.45", "", "", "", "", ""},
	)
	records, stats := BuildRecords(s, 0, cols, testRules)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, stats.RowsTotal)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
	}{
		{"Đã duyệt", StatusApproved},
		{"Approved", StatusApproved},
		{"Hoàn thành", StatusClosed},
		{"Closed", StatusClosed},
		{"Đã hủy", StatusCancelled},
		{"Cancelled", StatusCancelled},
		{"Từ chối", StatusRejected},
		{"Rejected", StatusRejected},
		{"", StatusUnknown},
		{"???", StatusUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseStatus(tt.input), "input %q", tt.input)
	}
}
