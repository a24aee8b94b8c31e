package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"payroll/internal/domain/payroll"
)

type Document struct {
	Company     string
	GeneratedAt time.Time
	Results     []payroll.Result
	Summary     payroll.Summary
}

var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Employee #", 22, "L"},
	{"First Name", 34, "L"},
	{"Last Name", 34, "L"},
	{"Gross", 30, "R"},
	{"Deductions", 30, "R"},
	{"Net", 30, "R"},
}

// WritePDF renders the payroll report as an A4 PDF.
func WritePDF(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetTitle(doc.Company+" payroll report", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(doc.Company))
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Payroll report generated %s", doc.GeneratedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "B", 0, col.align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range doc.Results {
		cells := []string{
			fmt.Sprintf("%05d", r.Employee.Number),
			tr(r.Employee.FirstName),
			tr(r.Employee.LastName),
			payroll.Amount(r.Gross),
			payroll.Amount(r.Deductions),
			payroll.Amount(r.Net),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, cells[i], "", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	totals := []string{"Total", fmt.Sprintf("%d employees", doc.Summary.EmployeeCount), "",
		payroll.Amount(doc.Summary.TotalGross), payroll.Amount(doc.Summary.TotalDeductions), payroll.Amount(doc.Summary.TotalNet)}
	for i, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, totals[i], "T", 0, col.align, false, 0, "")
	}
	pdf.Ln(-1)
	if doc.Summary.Rejected > 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.Cell(0, 6, fmt.Sprintf("%d input lines rejected; see the error file.", doc.Summary.Rejected))
	}

	return pdf.Output(w)
}
