package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vaychinnakhet-arch/canetrack/internal/domain/models"
)

// csvHeaders is the fixed export column order. Thai headers so the file
// opens cleanly in the spreadsheets the operator already uses.
var csvHeaders = []string{
	"วันที่",
	"เวลา",
	"เลขที่ใบชั่ง",
	"ทะเบียนรถ",
	"ลูกค้า/ชาวไร่",
	"สินค้า",
	"น้ำหนักสุทธิ (กก.)",
	"น้ำหนักรวม (กก.)",
	"น้ำหนักรถ (กก.)",
	"ความชื้น (%)",
	"ราคา/ตัน (บาท)",
	"มูลค่ารวม (บาท)",
}

// ExportCSV writes all tickets as a UTF-8 CSV with a BOM so Excel renders
// the Thai headers correctly.
func ExportCSV(w io.Writer, records []models.CaneTicket) error {
	if _, err := w.Write([]byte("\uFEFF")); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Date,
			r.Time,
			r.TicketNumber,
			r.LicensePlate,
			r.VendorName,
			r.ProductName,
			formatNumber(r.NetWeightKg),
			formatNumber(r.GrossWeightKg),
			formatNumber(r.TareWeightKg),
			formatOptional(r.Moisture),
			formatOptional(r.CanePrice),
			formatOptional(r.TotalValue),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatNumber(*v)
}
