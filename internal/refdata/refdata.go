// Package refdata ships the fixed reference tables for the BE 2568
// crushing season: public holidays and the good/bad day calendar. Both use
// year-less "d/m" keys, so they are only valid for this one season.
package refdata

import "github.com/vaychinnakhet-arch/canetrack/internal/domain/models"

// seasonHolidays are the public holidays between February and the end of
// crushing in April (Makha Bucha, Chakri day, Songkran).
var seasonHolidays = []string{
	"12/2",
	"6/4",
	"13/4",
	"14/4",
	"15/4",
	"16/4",
}

// Holidays returns the season's holiday list.
func Holidays() []string {
	out := make([]string, len(seasonHolidays))
	copy(out, seasonHolidays)
	return out
}

// HolidaySet returns the holidays as a "d/m" lookup set.
func HolidaySet() map[string]struct{} {
	set := make(map[string]struct{}, len(seasonHolidays))
	for _, h := range seasonHolidays {
		set[h] = struct{}{}
	}
	return set
}

// LuckyEvents returns the season's good/bad day calendar, ordered by date.
func LuckyEvents() []models.LuckyEvent {
	out := make([]models.LuckyEvent, len(luckyEvents))
	copy(out, luckyEvents)
	return out
}

var luckyEvents = []models.LuckyEvent{
	// February
	{DateStr: "19/2", Day: 19, Month: 2, DayLabel: "พฤหัส 19 ก.พ.", Type: models.LuckyBad, Action: "เลี่ยง: รับปากผู้ใหญ่, เซ็นค้ำประกัน", Description: "ระวัง: โดนเอาเปรียบสัญญา"},
	{DateStr: "20/2", Day: 20, Month: 2, DayLabel: "ศุกร์ 20 ก.พ.", Type: models.LuckyGood, Action: "ทวงหนี้, วางบิล, เอารถเข้าเช็คระยะ"},
	{DateStr: "26/2", Day: 26, Month: 2, DayLabel: "พฤหัส 26 ก.พ.", Type: models.LuckyBad, Action: "เลี่ยง: รับปากผู้ใหญ่, เซ็นค้ำประกัน", Description: "ระวัง: โดนเอาเปรียบสัญญา"},
	{DateStr: "27/2", Day: 27, Month: 2, DayLabel: "ศุกร์ 27 ก.พ.", Type: models.LuckyGood, Action: "เคลียร์บัญชีสิ้นเดือน, ปิดยอดเงินสด"},

	// March
	{DateStr: "1/3", Day: 1, Month: 3, DayLabel: "อาทิตย์ 1 มี.ค.", Type: models.LuckyBad, Action: "ห้าม: เอารถไปซ่อมหนัก (ซ่อมไม่จบ), ออกรถใหม่", Description: "ระวัง: เครื่องจักรพังหน้างาน, อุบัติเหตุเล็กน้อย"},
	{DateStr: "5/3", Day: 5, Month: 3, DayLabel: "พฤหัส 5 มี.ค.", Type: models.LuckyBad, Action: "เลี่ยง: เจรจาเรื่องเงิน", Description: "ระวัง: พูดจาผิดหูผู้ใหญ่"},
	{DateStr: "6/3", Day: 6, Month: 3, DayLabel: "ศุกร์ 6 มี.ค.", Type: models.LuckyGood, Action: "นัดคุยงานทั่วไป, วางบิลรับเช็ค"},
	{DateStr: "8/3", Day: 8, Month: 3, DayLabel: "อาทิตย์ 8 มี.ค.", Type: models.LuckyBad, Action: "ห้าม: เอารถไปซ่อมหนัก (ซ่อมไม่จบ), ออกรถใหม่", Description: "ระวัง: เครื่องจักรพังหน้างาน, อุบัติเหตุเล็กน้อย"},
	{DateStr: "10/3", Day: 10, Month: 3, DayLabel: "อังคาร 10 มี.ค.", Type: models.LuckyGood, Action: "ไหว้ขอพรที่วัดซานหยวนกง (กวางโจว)", SpecialTag: "วันพิเศษ"},
	{DateStr: "12/3", Day: 12, Month: 3, DayLabel: "พฤหัส 12 มี.ค.", Type: models.LuckyBad, Action: "เลี่ยง: เจรจาเรื่องเงิน", Description: "ระวัง: พูดจาผิดหูผู้ใหญ่"},
	{DateStr: "13/3", Day: 13, Month: 3, DayLabel: "ศุกร์ 13 มี.ค.", Type: models.LuckyGood, Action: "นัดคุยงานทั่วไป, วางบิลรับเช็ค"},
	{DateStr: "15/3", Day: 15, Month: 3, DayLabel: "อาทิตย์ 15 มี.ค.", Type: models.LuckyBad, Action: "ห้าม: เอารถไปซ่อมหนัก (ซ่อมไม่จบ), ออกรถใหม่", Description: "ระวัง: เครื่องจักรพังหน้างาน, อุบัติเหตุเล็กน้อย"},
	{DateStr: "19/3", Day: 19, Month: 3, DayLabel: "พฤหัส 19 มี.ค.", Type: models.LuckyBad, Action: "เลี่ยง: เจรจาเรื่องเงิน", Description: "ระวัง: พูดจาผิดหูผู้ใหญ่"},
	{DateStr: "20/3", Day: 20, Month: 3, DayLabel: "ศุกร์ 20 มี.ค.", Type: models.LuckyGood, Action: "นัดคุยงานทั่วไป, วางบิลรับเช็ค"},
	{DateStr: "22/3", Day: 22, Month: 3, DayLabel: "อาทิตย์ 22 มี.ค.", Type: models.LuckyBad, Action: "ห้าม: เอารถไปซ่อมหนัก (ซ่อมไม่จบ), ออกรถใหม่", Description: "ระวัง: เครื่องจักรพังหน้างาน, อุบัติเหตุเล็กน้อย"},
	{DateStr: "26/3", Day: 26, Month: 3, DayLabel: "พฤหัส 26 มี.ค.", Type: models.LuckyBad, Action: "เลี่ยง: เจรจาเรื่องเงิน", Description: "ระวัง: พูดจาผิดหูผู้ใหญ่"},
	{DateStr: "27/3", Day: 27, Month: 3, DayLabel: "ศุกร์ 27 มี.ค.", Type: models.LuckyGood, Action: "ให้กิตติพงษ์นัดผู้ใหญ่คุยดีลใหญ่, เซ็นสัญญาสำคัญ", SpecialTag: "วันมหาเฮง ⭐"},
	{DateStr: "29/3", Day: 29, Month: 3, DayLabel: "อาทิตย์ 29 มี.ค.", Type: models.LuckyBad, Action: "ห้าม: เอารถไปซ่อมหนัก (ซ่อมไม่จบ), ออกรถใหม่", Description: "ระวัง: เครื่องจักรพังหน้างาน, อุบัติเหตุเล็กน้อย"},

	// April
	{DateStr: "2/4", Day: 2, Month: 4, DayLabel: "พฤหัส 2 เม.ย.", Type: models.LuckyBad, Action: "เลี่ยง: เร่งงานลูกน้อง (จะทะเลาะกัน)"},
	{DateStr: "3/4", Day: 3, Month: 4, DayLabel: "ศุกร์ 3 เม.ย.", Type: models.LuckyGood, Action: "ต้องปิดดีลให้จบวันนี้ (ก่อนหยุดยาว), รับเงินก้อน", SpecialTag: "วันนาทีทอง ⭐"},
	{DateStr: "5/4", Day: 5, Month: 4, DayLabel: "อาทิตย์ 5 เม.ย.", Type: models.LuckyBad, Action: "ห้าม: ซ่อมรถ"},
	{DateStr: "9/4", Day: 9, Month: 4, DayLabel: "พฤหัส 9 เม.ย.", Type: models.LuckyBad, Action: "เลี่ยง: เร่งงานลูกน้อง (จะทะเลาะกัน)"},
	{DateStr: "10/4", Day: 10, Month: 4, DayLabel: "ศุกร์ 10 เม.ย.", Type: models.LuckyGood, Action: "เก็บตกงานเอกสาร, จ่ายโบนัสลูกน้อง"},
	{DateStr: "12/4", Day: 12, Month: 4, DayLabel: "12-14 เม.ย.", Type: models.LuckyBad, Action: "ห้าม: ด่าว่าลูกน้อง, พูดคำหยาบ", Description: "ระวัง: ถ้าปากเสียวันนี้ จะซวยเรื่องคนไปตลอดปี", SpecialTag: "วันเนา-สงกรานต์"},
	{DateStr: "17/4", Day: 17, Month: 4, DayLabel: "ศุกร์ 17 เม.ย.", Type: models.LuckyGood, Action: "เริ่มงานวันแรก, เปิดกล้องหน้ารถใหม่เอาฤกษ์", SpecialTag: "หลังสงกรานต์"},
	{DateStr: "20/4", Day: 20, Month: 4, DayLabel: "จันทร์ 20 เม.ย.", Type: models.LuckyGood, Action: "เซ็นสัญญาจ้างงาน, รับเงินก้อนโต", SpecialTag: "วันธงชัยใหม่"},
	{DateStr: "26/4", Day: 26, Month: 4, DayLabel: "อาทิตย์ 26 เม.ย.", Type: models.LuckyBad, Action: "ห้าม: ซ่อมรถ"},
	{DateStr: "27/4", Day: 27, Month: 4, DayLabel: "จันทร์ 27 เม.ย.", Type: models.LuckyGood, Action: "เซ็นสัญญาจ้างงาน, รับเงินก้อนโต", SpecialTag: "วันธงชัยใหม่"},
}
