package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLocateHeaderSkipsBannerRows(t *testing.T) {
	s := RawSheet{
		Name: "Booking Car",
		Rows: [][]string{
			{"CÔNG TY TNHH ABC"},
			{"BÁO CÁO ĐẶT XE THÁNG 1"},
			{"Ngày khởi hành", "Giờ khởi hành", "Giờ kết thúc", "Biển số xe"},
			{"2024-01-10", "08:00", "12:00", "51F-123.45"},
		},
	}
	idx := LocateHeader(s, []string{"ngay khoi hanh", "bien so"}, 10, 0)
	assert.Equal(t, 2, idx)
}

func TestLocateHeaderFallback(t *testing.T) {
	s := RawSheet{Rows: [][]string{
		{"nothing", "matches"},
		{"here", "either"},
	}}
	assert.Equal(t, 1, LocateHeader(s, []string{"trip date"}, 10, 1))
}

func TestLocateHeaderRespectsScanLimit(t *testing.T) {
	rows := make([][]string, 12)
	for i := range rows {
		rows[i] = []string{"banner"}
	}
	rows[11] = []string{"Trip Date"}
	s := RawSheet{Rows: rows}
	// The header sits past the scan window, so the fallback applies.
	assert.Equal(t, 0, LocateHeader(s, []string{"trip date"}, 10, 0))
}

func TestDiscoverAssignsRoles(t *testing.T) {
	sheets := []RawSheet{
		{Name: "Booking Car 2024"},
		{Name: "Danh sách xe"},
		{Name: "Nhân viên"},
	}
	roles, err := Discover(sheets,
		[]string{"booking"},
		[]string{"danh sach xe"},
		[]string{"nhan vien"},
	)
	require.NoError(t, err)
	assert.Equal(t, "Booking Car 2024", roles.Booking.Name)
	require.NotNil(t, roles.Registry)
	assert.Equal(t, "Danh sách xe", roles.Registry.Name)
	require.NotNil(t, roles.Personnel)
	assert.Equal(t, "Nhân viên", roles.Personnel.Name)
}

func TestDiscoverSingleSheetIsBooking(t *testing.T) {
	roles, err := Discover([]RawSheet{{Name: "whatever"}}, []string{"booking"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "whatever", roles.Booking.Name)
	assert.Nil(t, roles.Registry)
	assert.Nil(t, roles.Personnel)
}

func TestDiscoverMissingBookingSheet(t *testing.T) {
	_, err := Discover([]RawSheet{{Name: "foo"}, {Name: "bar"}}, []string{"booking"}, nil, nil)
	assert.ErrorIs(t, err, ErrMissingBookingSheet)
}

func TestReadWorkbookXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Booking Car"))
	require.NoError(t, f.SetSheetRow("Booking Car", "A1", &[]interface{}{"Ngày khởi hành", "Biển số xe"}))
	require.NoError(t, f.SetSheetRow("Booking Car", "A2", &[]interface{}{"2024-01-10", "51F-123.45"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	sheets, err := ReadWorkbook(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, "Booking Car", sheets[0].Name)
	require.Len(t, sheets[0].Rows, 2)
	assert.Equal(t, "51F-123.45", sheets[0].Rows[1][1])
}

func TestReadWorkbookCSV(t *testing.T) {
	data := []byte("Trip Date,Plate Number\n2024-01-10,51F-123.45\n")
	sheets, err := ReadWorkbook(data)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, [][]string{
		{"Trip Date", "Plate Number"},
		{"2024-01-10", "51F-123.45"},
	}, sheets[0].Rows)
}

func TestReadWorkbookCSVWithUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b\n1,2\n")...)
	sheets, err := ReadWorkbook(data)
	require.NoError(t, err)
	assert.Equal(t, "a", sheets[0].Rows[0][0])
}

func TestReadWorkbookCSVUTF16(t *testing.T) {
	// "a,b\n1,2\n" as UTF-16 LE with BOM.
	src := "a,b\n1,2\n"
	data := []byte{0xFF, 0xFE}
	for _, r := range src {
		data = append(data, byte(r), 0x00)
	}
	sheets, err := ReadWorkbook(data)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, sheets[0].Rows)
}

func TestReadWorkbookEmptyCSV(t *testing.T) {
	_, err := ReadWorkbook([]byte(""))
	assert.ErrorIs(t, err, ErrEmptyWorkbook)
}
