package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders report rows into downloadable files.
type Exporter interface {
	ExportRoster(format string, rows []RosterRow) ([]byte, string, string, error)
	ExportCalendarPDF(username string, rows []FeedRow) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

// ExportRoster renders an application roster in the requested format and
// returns the payload with its filename and content type.
func (e *exporter) ExportRoster(format string, rows []RosterRow) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatExcel:
		data, err := e.exportRosterExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("application_roster_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportRosterCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("application_roster_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for roster: %s", format)
	}
}

func (e *exporter) exportRosterCSV(rows []RosterRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Event", "Event Date", "Performer", "Email", "Talent Type", "Status", "Applied At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ApplicationID), 10),
			r.EventTitle,
			r.EventDate.Format("2006-01-02"),
			r.Performer,
			r.Email,
			r.TalentType,
			r.Status,
			r.AppliedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportRosterExcel(rows []RosterRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Applications"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Event", "Event Date", "Performer", "Email", "Talent Type", "Status", "Applied At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ApplicationID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.EventTitle)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.EventDate.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Performer)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Email)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.TalentType)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.AppliedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportCalendarPDF renders a user's aggregated calendar feed as a PDF
// table.
func (e *exporter) ExportCalendarPDF(username string, rows []FeedRow) ([]byte, string, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Calendar — %s", username))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"Date", "Start", "End", "Title", "Source", "Location"}
	widths := []float64{25, 15, 15, 65, 25, 45}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		title := r.Title
		if len(title) > 38 {
			title = title[:35] + "..."
		}
		location := r.Location
		if len(location) > 26 {
			location = location[:23] + "..."
		}

		pdf.CellFormat(widths[0], 6, r.Date.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.StartTime, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.EndTime, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.Source, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, location, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("calendar_%s.pdf", time.Now().Format("20060102"))
	return buf.Bytes(), filename, "application/pdf", nil
}
