package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/davron-dev/murojaat-bot/internal/domain/appeals"
	"github.com/davron-dev/murojaat-bot/internal/domain/users"
)

const (
	sheetStats   = "Statistika"
	sheetAppeals = "Murojaatlar"

	maxColWidth = 50
)

// StatusLabel — подпись статуса в выгрузке и карточках.
func StatusLabel(s appeals.Status) string {
	if s == appeals.StatusProcessed {
		return "Ishlangan"
	}
	return "Ishlanmagan"
}

// FileTypeLabel — подпись типа вложения.
func FileTypeLabel(t appeals.FileType) string {
	switch t {
	case appeals.FilePhoto:
		return "Rasm"
	case appeals.FileVideo:
		return "Video"
	default:
		return string(t)
	}
}

// Filename — имя файла выгрузки с отметкой времени.
func Filename(now time.Time) string {
	return fmt.Sprintf("statistics_%s.xlsx", now.Format("20060102_150405"))
}

// Workbook собирает книгу из двух листов: сводка «ключ-значение»
// и полный список обращений по строке на обращение.
func Workbook(rows []appeals.ExportRow, us users.Stats, as appeals.Stats) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetStats)
	if _, err := f.NewSheet(sheetAppeals); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"CCCCCC"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	if err := writeStats(f, headerStyle, us, as); err != nil {
		return nil, err
	}
	if err := writeAppeals(f, headerStyle, rows); err != nil {
		return nil, err
	}

	idx, err := f.GetSheetIndex(sheetStats)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	return f, nil
}

func writeStats(f *excelize.File, headerStyle int, us users.Stats, as appeals.Stats) error {
	header := []any{"Ko'rsatkich", "Qiymat"}
	if err := f.SetSheetRow(sheetStats, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetStats, "A1", "B1", headerStyle); err != nil {
		return err
	}

	lines := [][2]any{
		{"Jami foydalanuvchilar", us.Total},
		{"Administratorlar", us.Admins},
		{"Oddiy foydalanuvchilar", us.Users},
		{"", ""},
		{"Jami murojaatlar", as.Total},
		{"Ishlangan murojaatlar", as.Processed},
		{"Ishlanmagan murojaatlar", as.Unprocessed},
		{"", ""},
		{"Jami media fayllar", as.TotalMedia},
	}
	for _, t := range []appeals.FileType{appeals.FilePhoto, appeals.FileVideo} {
		if n, ok := as.MediaByType[t]; ok {
			lines = append(lines, [2]any{FileTypeLabel(t) + " turi", n})
		}
	}

	for i, line := range lines {
		row := []any{line[0], line[1]}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetStats, cell, &row); err != nil {
			return err
		}
	}

	fitColumns(f, sheetStats)
	return nil
}

func writeAppeals(f *excelize.File, headerStyle int, rows []appeals.ExportRow) error {
	header := []any{
		"ID", "Foydalanuvchi", "Telefon", "F.I.O.", "Manzil", "Uy MFI/OFI",
		"Murojaat matni", "Yaratilgan sana", "Status", "Izoh",
		"Media soni", "Media turlari",
	}
	if err := f.SetSheetRow(sheetAppeals, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetAppeals, "A1", "L1", headerStyle); err != nil {
		return err
	}

	for i, r := range rows {
		labels := make([]string, 0, len(r.MediaTypes))
		for _, t := range r.MediaTypes {
			labels = append(labels, FileTypeLabel(t))
		}
		row := []any{
			r.ID, r.UserID, r.Phone, r.FullName, r.Address, r.Domkom,
			r.Text, r.CreatedAt.Format("2006-01-02 15:04:05"),
			StatusLabel(r.Status), r.Comment,
			r.MediaCount, strings.Join(labels, ", "),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetAppeals, cell, &row); err != nil {
			return err
		}
	}

	fitColumns(f, sheetAppeals)
	return nil
}

// fitColumns подгоняет ширину колонок под содержимое, не шире maxColWidth.
func fitColumns(f *excelize.File, sheet string) {
	cols, err := f.GetCols(sheet)
	if err != nil {
		return
	}
	for i, col := range cols {
		maxLen := 0
		for _, v := range col {
			if n := len([]rune(v)); n > maxLen {
				maxLen = n
			}
		}
		if maxLen == 0 {
			continue
		}
		w := float64(maxLen + 2)
		if w > maxColWidth {
			w = maxColWidth
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(sheet, name, name, w)
	}
}
