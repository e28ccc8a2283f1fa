package analytics

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// WriteReport renders the dashboard summary as a PDF. A non-empty source
// warning is printed under the header so an exported report never hides
// that it was built from fallback data.
func WriteReport(w io.Writer, summary Summary, warning string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 16)
	pdf.Cell(0, 10, "Fleet Analytics Report")

	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total buses: %d", summary.TotalBuses))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total capacity: %d seats", summary.TotalCapacity))
	pdf.Ln(10)

	if warning != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Note: "+warning, "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Status distribution")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, label := range []string{"Active", "Maintenance", "Inactive"} {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %d", label, summary.StatusCounts[label]))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Company utilization")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 7, "Company", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Buses", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "QNext boarded", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Traditional", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, company := range summary.Companies {
		pdf.CellFormat(60, 7, company.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", company.Buses), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%d", company.Qnext), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%d", company.Traditional), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Route frequency")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, route := range summary.Routes {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %d", route.Route, route.Count))
		pdf.Ln(6)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render analytics report: %w", err)
	}
	return nil
}
