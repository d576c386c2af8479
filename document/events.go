package document

import (
	"fmt"

	"storefront/entity"
	"storefront/price"

	"github.com/xuri/excelize/v2"
)

const eventsSheet = "Events"

var eventsHeader = []any{"Title", "Description", "Date", "Location", "Total Tickets", "Available Tickets"}

// EventsPDF renders one page per event with its ticket types.
func (Generator) EventsPDF(events []entity.Event) ([]byte, error) {
	pdf := newDocument()
	tr := translator(pdf)

	if len(events) == 0 {
		pdf.AddPage()
		pdf.SetFont(fontFamily, "", 12)
		pdf.CellFormat(0, 8, tr("No events."), "", 1, "L", false, 0, "")
	}

	for _, e := range events {
		pdf.AddPage()

		pdf.SetFont(fontFamily, "B", 16)
		pdf.MultiCell(0, 8, tr(e.Title), "", "L", false)
		pdf.Ln(2)

		pdf.SetFont(fontFamily, "", 12)
		pdf.CellFormat(0, 7, tr("Date: "+e.Date.Format("02/01/2006")), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 7, tr("Location: "+e.Location), "", 1, "L", false, 0, "")
		pdf.MultiCell(0, 7, tr("Description: "+e.Description), "", "L", false)
		pdf.Ln(6)

		pdf.SetFont(fontFamily, "B", 12)
		pdf.CellFormat(0, 7, tr("Tickets:"), "", 1, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 12)
		for _, t := range e.Tickets {
			line := fmt.Sprintf("%s: %s (%d available)", t.Name, price.Format(t.Price), t.Available)
			pdf.CellFormat(0, 7, tr("    "+line), "", 1, "L", false, 0, "")
		}
	}

	return output(pdf)
}

// EventsXLSX builds a spreadsheet with one row per event and its ticket counts.
func (Generator) EventsXLSX(events []entity.Event) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", eventsSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	if err := f.SetSheetRow(eventsSheet, "A1", &eventsHeader); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, e := range events {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("locating row %d: %w", i+2, err)
		}

		row := []any{
			e.Title,
			e.Description,
			e.Date.Format("02/01/2006"),
			e.Location,
			e.TotalTickets(),
			e.AvailableTickets(),
		}
		if err := f.SetSheetRow(eventsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing event %s: %w", e.ID, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing spreadsheet: %w", err)
	}

	return buf.Bytes(), nil
}
