package export

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/aminedz/microimport/internal/domain/models"
)

// VoyagePDF renders a cost report for one voyage and returns the document
// bytes together with a suggested filename.
func (s *Service) VoyagePDF(voyage *models.Voyage, owner *models.User) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Voyage Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "VOYAGE COST REPORT")
	pdf.Ln(12)

	calc := voyage.Calculation

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Trader        : %s", owner.Name),
		fmt.Sprintf("Destination   : %s", voyage.Destination),
		fmt.Sprintf("Date          : %s", voyage.Date.Format(dateLayout)),
		fmt.Sprintf("Currency      : %s", voyage.Currency),
		fmt.Sprintf("Status        : %s", voyage.Status),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Merchandise")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	for _, d := range calc.Details {
		pdf.Cell(0, 6, fmt.Sprintf("%s  x%d  cost %s DA  sale %s DA",
			d.Name, d.Quantity, amount(d.TotalCost), amount(d.SaleRevenue)))
		pdf.Ln(6)
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Totals (DA)")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	totals := []string{
		fmt.Sprintf("Purchase cost          : %s", amount(calc.TotalPurchaseCost)),
		fmt.Sprintf("Customs value          : %s", amount(calc.CustomsValue)),
		fmt.Sprintf("Base levy (5%%)         : %s", amount(calc.BaseLevy)),
		fmt.Sprintf("Solidarity (3%%)        : %s", amount(calc.SolidarityContribution)),
		fmt.Sprintf("Incidental fees (1.5%%) : %s", amount(calc.IncidentalFee)),
		fmt.Sprintf("Fixed costs            : %s", amount(calc.FixedCostsTotal)),
		fmt.Sprintf("Supplementary fees     : %s", amount(calc.SupplementaryFees)),
		fmt.Sprintf("Total cost             : %s", amount(calc.TotalCost)),
		fmt.Sprintf("Total revenue          : %s", amount(calc.TotalRevenue)),
		fmt.Sprintf("Net profit             : %s", amount(calc.NetProfit)),
		fmt.Sprintf("Margin                 : %.2f%%", calc.MarginPercent),
		fmt.Sprintf("ROI                    : %.2f%%", calc.ROIPercent),
	}
	for _, line := range totals {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render voyage pdf: %w", err)
	}

	filename := fmt.Sprintf("voyage-%s-%s.pdf", voyage.Date.Format(dateLayout), voyage.ID.Hex())
	return buf.Bytes(), filename, nil
}

func amount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
