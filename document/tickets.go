// Package document renders printable tickets and event exports.
package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"storefront/entity"
	"storefront/price"
	"storefront/proof"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	fontFamily       = "Helvetica"
	ticketBlockH     = 42.0
	ticketBlockGap   = 4.0
	codeSize         = 34.0
	entranceReminder = "Please present this ticket at the event entrance."
)

// Tickets is the content of the document handed to the customer after checkout.
type Tickets struct {
	OrderID      string
	CustomerName string
	Email        string
	Items        []entity.CartItem
	// Purchases carry the proof-of-purchase code of each line, matched by ticket id.
	Purchases []entity.Purchase
	Total     decimal.Decimal
	IssuedAt  time.Time
}

type Generator struct{}

func NewGenerator() Generator {
	return Generator{}
}

// TicketsPDF renders one bordered block per ticket line with its code.
func (Generator) TicketsPDF(t Tickets) ([]byte, error) {
	pdf := newDocument()
	tr := translator(pdf)

	codes := make(map[string]string, len(t.Purchases))
	for _, p := range t.Purchases {
		codes[p.TicketID] = p.QRCode
	}

	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(0, 12, tr("Event Ticket"), "", 1, "C", false, 0, "")
	if t.OrderID != "" {
		pdf.SetFont(fontFamily, "", 9)
		pdf.CellFormat(0, 6, tr("Order "+t.OrderID), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 8, tr("Customer Information"), "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 12)
	pdf.CellFormat(0, 7, tr("Name: "+t.CustomerName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr("Email: "+t.Email), "", 1, "L", false, 0, "")
	if !t.IssuedAt.IsZero() {
		pdf.CellFormat(0, 7, tr("Date: "+t.IssuedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 8, tr("Ticket Details"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for i, item := range t.Items {
		if err := ticketBlock(pdf, tr, fmt.Sprintf("code-%d", i), item, codes[item.TicketID]); err != nil {
			return nil, fmt.Errorf("rendering ticket %s: %w", item.TicketID, err)
		}
	}

	ensureSpace(pdf, 24)
	pdf.Ln(2)
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 8, tr("Total Amount: "+price.Format(t.Total)), "", 1, "R", false, 0, "")
	pdf.Ln(6)
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(0, 6, tr(entranceReminder), "", 1, "C", false, 0, "")

	return output(pdf)
}

func ticketBlock(pdf *fpdf.Fpdf, tr func(string) string, imageName string, item entity.CartItem, code string) error {
	ensureSpace(pdf, ticketBlockH+ticketBlockGap)

	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	width := pageW - left - right
	top := pdf.GetY()

	pdf.Rect(left, top, width, ticketBlockH, "D")

	pdf.SetXY(left+4, top+4)
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(width-codeSize-12, 7, tr(item.Name), "", 2, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 11)
	pdf.CellFormat(width-codeSize-12, 7, tr(fmt.Sprintf("Quantity: %d", item.Quantity)), "", 2, "L", false, 0, "")
	pdf.CellFormat(width-codeSize-12, 7, tr("Price per ticket: "+price.Format(item.UnitPrice)), "", 2, "L", false, 0, "")
	pdf.CellFormat(width-codeSize-12, 7, tr("Subtotal: "+price.Format(item.LineTotal())), "", 2, "L", false, 0, "")

	if code != "" {
		png, err := proof.DecodeImage(code)
		if err != nil {
			return fmt.Errorf("decoding proof of purchase: %w", err)
		}

		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(png))
		pdf.ImageOptions(imageName, left+width-codeSize-4, top+4, codeSize, codeSize, false, opts, 0, "")
	}

	pdf.SetXY(left, top+ticketBlockH+ticketBlockGap)

	return nil
}

func newDocument() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	return pdf
}

// ensureSpace starts a new page when h millimetres do not fit on the current one.
func ensureSpace(pdf *fpdf.Fpdf, h float64) {
	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+h > pageH-bottom {
		pdf.AddPage()
	}
}

// translator maps UTF-8 to the code page of the core fonts. The narrow
// no-break space used for digit grouping has no cp1252 equivalent.
func translator(pdf *fpdf.Fpdf) func(string) string {
	cp1252 := pdf.UnicodeTranslatorFromDescriptor("")
	return func(s string) string {
		return cp1252(strings.ReplaceAll(s, "\u202f", " "))
	}
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}
