package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davron-dev/murojaat-bot/internal/domain/appeals"
	"github.com/davron-dev/murojaat-bot/internal/domain/users"
)

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "statistics_20250314_092653.xlsx", Filename(now))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Ishlangan", StatusLabel(appeals.StatusProcessed))
	assert.Equal(t, "Ishlanmagan", StatusLabel(appeals.StatusUnprocessed))
}

func TestFileTypeLabel(t *testing.T) {
	assert.Equal(t, "Rasm", FileTypeLabel(appeals.FilePhoto))
	assert.Equal(t, "Video", FileTypeLabel(appeals.FileVideo))
}

func TestWorkbookSheets(t *testing.T) {
	f, err := Workbook(nil, users.Stats{}, appeals.Stats{})
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.ElementsMatch(t, []string{"Statistika", "Murojaatlar"}, f.GetSheetList())
}

func TestWorkbookStatsSheet(t *testing.T) {
	us := users.Stats{Total: 7, Admins: 2, Users: 5}
	as := appeals.Stats{
		Total: 12, Processed: 4, Unprocessed: 8, TotalMedia: 3,
		MediaByType: map[appeals.FileType]int64{
			appeals.FilePhoto: 2,
			appeals.FileVideo: 1,
		},
	}

	f, err := Workbook(nil, us, as)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	get := func(cell string) string {
		v, err := f.GetCellValue("Statistika", cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Ko'rsatkich", get("A1"))
	assert.Equal(t, "Qiymat", get("B1"))
	assert.Equal(t, "Jami foydalanuvchilar", get("A2"))
	assert.Equal(t, "7", get("B2"))
	assert.Equal(t, "Jami murojaatlar", get("A6"))
	assert.Equal(t, "12", get("B6"))
	assert.Equal(t, "Ishlangan murojaatlar", get("A7"))
	assert.Equal(t, "4", get("B7"))
	assert.Equal(t, "Jami media fayllar", get("A10"))
	assert.Equal(t, "Rasm turi", get("A11"))
	assert.Equal(t, "2", get("B11"))
	assert.Equal(t, "Video turi", get("A12"))
}

func TestWorkbookAppealsSheet(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	rows := []appeals.ExportRow{
		{
			Appeal: appeals.Appeal{
				ID: 1, UserID: 200, Phone: "+998901234567",
				FullName: "Aliyev Ali", Address: "Toshkent", Domkom: "MFI-12",
				Text: "Suv yo'q", CreatedAt: created,
				Status: appeals.StatusProcessed, Comment: "Hal qilindi",
			},
			MediaCount: 2,
			MediaTypes: []appeals.FileType{appeals.FilePhoto, appeals.FileVideo},
		},
		{
			Appeal: appeals.Appeal{
				ID: 2, UserID: 201, Phone: "+998991112233",
				FullName: "Valiyev Vali", Address: "Samarqand", Domkom: "OFI-3",
				Text: "Chiroq yonmaydi", CreatedAt: created,
				Status: appeals.StatusUnprocessed,
			},
		},
	}

	f, err := Workbook(rows, users.Stats{}, appeals.Stats{})
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	get := func(cell string) string {
		v, err := f.GetCellValue("Murojaatlar", cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "ID", get("A1"))
	assert.Equal(t, "Media turlari", get("L1"))

	assert.Equal(t, "1", get("A2"))
	assert.Equal(t, "+998901234567", get("C2"))
	assert.Equal(t, "Aliyev Ali", get("D2"))
	assert.Equal(t, "2025-06-01 12:30:00", get("H2"))
	assert.Equal(t, "Ishlangan", get("I2"))
	assert.Equal(t, "Hal qilindi", get("J2"))
	assert.Equal(t, "2", get("K2"))
	assert.Equal(t, "Rasm, Video", get("L2"))

	assert.Equal(t, "Ishlanmagan", get("I3"))
	assert.Equal(t, "", get("J3"), "empty comment stays empty")
	assert.Equal(t, "", get("L3"))
}

func TestWorkbookColumnWidthCapped(t *testing.T) {
	rows := []appeals.ExportRow{
		{
			Appeal: appeals.Appeal{
				ID: 1, UserID: 200, Phone: "+998901234567",
				FullName: "A", Address: "B", Domkom: "C",
				Text:      strings.Repeat("uzun matn ", 30),
				CreatedAt: time.Now(), Status: appeals.StatusUnprocessed,
			},
		},
	}

	f, err := Workbook(rows, users.Stats{}, appeals.Stats{})
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	w, err := f.GetColWidth("Murojaatlar", "G")
	require.NoError(t, err)
	assert.LessOrEqual(t, w, float64(50))
}
