package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"takjil_scheduler/internal/repository"

	"github.com/xuri/excelize/v2"
)

// utf8BOM lets spreadsheet applications detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// exportHeader is shared by the CSV and XLSX exports. Column order follows
// the admin table: computed date, slot day, family, house code, phone,
// registration timestamp.
var exportHeader = []string{"Tanggal", "Hari Ke", "Nama Keluarga", "Kode Jalan", "WhatsApp", "Tanggal Daftar"}

// ExportService renders the current registrations for download
type ExportService interface {
	ExportCSV(ctx context.Context) (*bytes.Buffer, error)
	ExportXLSX(ctx context.Context) (*bytes.Buffer, error)
}

type exportService struct {
	repo         repository.RegistrationRepository
	settingsRepo repository.SettingsRepository
}

// NewExportService creates a new ExportService
func NewExportService(repo repository.RegistrationRepository, settingsRepo repository.SettingsRepository) ExportService {
	return &exportService{repo: repo, settingsRepo: settingsRepo}
}

// sanitizeCell neutralizes spreadsheet formula triggers. A leading =, +, -,
// @, tab, CR or LF would otherwise execute when the file is opened in
// spreadsheet software.
func sanitizeCell(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n':
		return "'" + v
	}
	return v
}

// slotDate translates a slot day to a real calendar date, or "" when no
// campaign start date is configured.
func slotDate(startDate *time.Time, slotDay int) string {
	if startDate == nil {
		return ""
	}
	return startDate.AddDate(0, 0, slotDay-1).Format("2006-01-02")
}

func (s *exportService) rows(ctx context.Context) ([][]string, error) {
	regs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registrations for export: %w", err)
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings for export: %w", err)
	}

	out := make([][]string, 0, len(regs))
	for _, reg := range regs {
		out = append(out, []string{
			slotDate(settings.StartDate, reg.SlotDay),
			strconv.Itoa(reg.SlotDay),
			sanitizeCell(reg.FamilyName),
			sanitizeCell(reg.HouseCode),
			sanitizeCell(reg.PhoneNumber),
			reg.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return out, nil
}

func (s *exportService) ExportCSV(ctx context.Context) (*bytes.Buffer, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	buffer := &bytes.Buffer{}
	buffer.Write(utf8BOM)
	writer := csv.NewWriter(buffer)

	if err := writer.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV writer: %w", err)
	}
	return buffer, nil
}

func (s *exportService) ExportXLSX(ctx context.Context) (*bytes.Buffer, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Registrations"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style header cell: %w", err)
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	columnWidths := []float64{14, 10, 28, 12, 18, 18}
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buffer, nil
}

// ExportFilename builds the download filename for the given extension,
// stamped with the current date.
func ExportFilename(ext string) string {
	return fmt.Sprintf("takjil_%s.%s", time.Now().Format("2006-01-02"), strings.TrimPrefix(ext, "."))
}
