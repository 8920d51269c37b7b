package sheets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vaychinnakhet-arch/canetrack/internal/domain/models"
	"github.com/vaychinnakhet-arch/canetrack/internal/thaidate"
)

// Mirror column layout, A through Q.
const (
	colID = iota
	colTicketNumber
	colDate
	colTime
	colNetWeightKg
	colGrossWeightKg
	colTareWeightKg
	colLicensePlate
	colVendorName
	colProductName
	colGoalTarget
	colGoalRound
	colMoisture
	colCanePrice
	colTotalValue
	colImageURL
	colTimestamp
)

func ticketRow(t models.CaneTicket) []interface{} {
	return []interface{}{
		t.ID,
		t.TicketNumber,
		t.Date,
		t.Time,
		t.NetWeightKg,
		t.GrossWeightKg,
		t.TareWeightKg,
		t.LicensePlate,
		t.VendorName,
		t.ProductName,
		t.GoalTarget,
		t.GoalRound,
		optionalCell(t.Moisture),
		optionalCell(t.CanePrice),
		optionalCell(t.TotalValue),
		t.ImageURL,
		t.Timestamp,
	}
}

func optionalCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

// isHeaderRow recognizes the column-name row a fresh sheet starts with.
func isHeaderRow(row []interface{}) bool {
	return strings.EqualFold(cellString(row, colID), "id")
}

// parseTicketRow coerces one loose spreadsheet row back into a ticket.
// Missing numbers become 0 and missing strings a placeholder; only a row
// with no usable id and no ticket number is dropped.
func parseTicketRow(row []interface{}, index int) (models.CaneTicket, bool) {
	id := cellString(row, colID)
	number := cellString(row, colTicketNumber)
	if id == "" && number == "" {
		return models.CaneTicket{}, false
	}
	if id == "" {
		id = fmt.Sprintf("sheet-%d-%d", index, time.Now().UnixMilli())
	}

	t := models.CaneTicket{
		ID:            id,
		TicketNumber:  stringOrPlaceholder(number),
		Date:          normalizeSheetDate(cellString(row, colDate)),
		Time:          normalizeSheetTime(cellString(row, colTime)),
		NetWeightKg:   cellNumber(row, colNetWeightKg),
		GrossWeightKg: cellNumber(row, colGrossWeightKg),
		TareWeightKg:  cellNumber(row, colTareWeightKg),
		LicensePlate:  stringOrPlaceholder(cellString(row, colLicensePlate)),
		VendorName:    stringOrPlaceholder(cellString(row, colVendorName)),
		ProductName:   cellString(row, colProductName),
		GoalTarget:    cellNumber(row, colGoalTarget),
		GoalRound:     int(cellNumber(row, colGoalRound)),
		Moisture:      cellOptionalNumber(row, colMoisture),
		CanePrice:     cellOptionalNumber(row, colCanePrice),
		TotalValue:    cellOptionalNumber(row, colTotalValue),
		ImageURL:      normalizeImageURL(cellString(row, colImageURL)),
	}

	if t.ProductName == "" {
		t.ProductName = models.DefaultProductName
	}
	if t.GoalRound == 0 {
		t.GoalRound = 1
	}

	t.Timestamp = cellTimestamp(row, colTimestamp)
	return t, true
}

func cellString(row []interface{}, col int) string {
	if len(row) <= col || row[col] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[col]))
}

func cellNumber(row []interface{}, col int) float64 {
	s := strings.ReplaceAll(cellString(row, col), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func cellOptionalNumber(row []interface{}, col int) *float64 {
	s := strings.ReplaceAll(cellString(row, col), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

func cellTimestamp(row []interface{}, col int) int64 {
	s := cellString(row, col)
	if s == "" {
		return time.Now().UnixMilli()
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UnixMilli()
	}
	return time.Now().UnixMilli()
}

func stringOrPlaceholder(s string) string {
	if s == "" {
		return models.PlaceholderText
	}
	return s
}

var isoDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// normalizeSheetDate turns ISO date strings the Sheets API hands back into
// the short Thai display form; anything else passes through untouched.
func normalizeSheetDate(s string) string {
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "T") && !isoDatePrefix.MatchString(s) {
		return s
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return thaidate.FormatDisplayDate(t)
		}
	}
	return s
}

// normalizeSheetTime turns ISO timestamps into "HH:mm".
func normalizeSheetTime(s string) string {
	if s == "" || !strings.Contains(s, "T") {
		return s
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("15:04")
	}
	return s
}

var driveIDPattern = regexp.MustCompile(`[-\w]{25,}`)

// normalizeImageURL rewrites Google Drive links to the stable thumbnail
// endpoint and wraps bare base64 blobs in a data URL, mirroring how slip
// photos come back from the sheet.
func normalizeImageURL(s string) string {
	if len(s) < 5 {
		return ""
	}

	if strings.Contains(s, "drive.google.com") {
		if id := driveIDPattern.FindString(s); id != "" {
			return fmt.Sprintf("https://drive.google.com/thumbnail?id=%s&sz=w1000", id)
		}
	}

	if len(s) > 100 && !strings.HasPrefix(s, "data:image") && !strings.HasPrefix(s, "http") {
		return "data:image/jpeg;base64," + s
	}

	if strings.HasPrefix(s, "data:image") || strings.HasPrefix(s, "http") {
		return s
	}

	return ""
}
