// Package billing renders a cart snapshot into a printable PDF bill.
// Rendering is a pure function of the snapshot: the same lines produce
// the same document content.
package billing

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/SKTA1805/Smart-trolley/internal/cart"
)

const (
	headerText   = "Your Bill"
	emptyText    = "Your cart is empty"
	thankYouText = "Thank you for visiting us!"
)

// money formats an amount with the currency suffix. Line subtotals and
// the grand total go through the same formatter so they always agree.
func money(amount float64) string {
	return fmt.Sprintf("%.2f Rs", amount)
}

// Render produces the PDF bill for a cart snapshot: a centered header,
// one table row per line in snapshot order, the total quantity and
// amount, and a closing message. An empty snapshot yields only the
// empty-cart notice.
func Render(lines []cart.Line) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	if len(lines) == 0 {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Text(20, 20, emptyText)
		return output(pdf)
	}

	pageWidth, _ := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text((pageWidth-pdf.GetStringWidth(headerText))/2, 20, headerText)

	// Table header.
	colWidths := []float64{70, 35, 30, 35}
	headers := []string{"Product", "Price", "Quantity", "Subtotal"}
	pdf.SetXY(15, 30)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	// One row per cart line, in snapshot order.
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	totalQuantity := 0
	for _, l := range lines {
		totalQuantity += l.Quantity

		pdf.SetX(15)
		pdf.CellFormat(colWidths[0], 8, l.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, money(l.Price), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%d", l.Quantity), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, money(l.Subtotal()), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	finalY := pdf.GetY() + 10
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(20, finalY, fmt.Sprintf("Total Qty: %d", totalQuantity))
	pdf.Text(20, finalY+10, fmt.Sprintf("Total Amt: %s", money(cart.Total(lines))))

	pdf.SetFont("Helvetica", "I", 18)
	pdf.Text((pageWidth-pdf.GetStringWidth(thankYouText))/2, finalY+30, thankYouText)

	return output(pdf)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("billing: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
