// Package pricing maps a measured moisture percentage to the mill's
// price-per-ton schedule and derives ticket value from it.
package pricing

// UnsellableMoisture is the cutoff above which cane has no buyer.
const UnsellableMoisture = 41.0

type pricePoint struct {
	MaxMoisture float64
	Price       float64
}

// The mill's schedule for the season. Anything between breakpoints takes
// the price of the nearest breakpoint at or above the input.
var priceTable = []pricePoint{
	{20.00, 900},
	{21.00, 889},
	{22.00, 877},
	{23.00, 865},
	{24.00, 853},
	{25.00, 840},
	{26.00, 825},
	{27.00, 810},
	{28.00, 795},
	{29.00, 780},
	{30.00, 765},
	{31.00, 750},
	{32.00, 735},
	{33.00, 720},
	{34.00, 700},
	{35.00, 680},
	{36.00, 660},
	{37.00, 640},
	{38.00, 625},
	{39.00, 610},
	{40.00, 595},
	{41.00, 580},
}

// PriceForMoisture returns the price per ton for a moisture reading.
// Moisture above the cutoff prices at 0 (unsellable). Any numeric input is
// accepted; range validation happens at the boundary, so 0 or negative
// readings simply land on the first breakpoint.
func PriceForMoisture(moisture float64) float64 {
	for _, p := range priceTable {
		if moisture <= p.MaxMoisture {
			return p.Price
		}
	}
	return 0
}

// TotalValue computes the ticket's monetary value from its net weight in
// kilograms and the price per ton.
func TotalValue(netWeightKg, pricePerTon float64) float64 {
	return netWeightKg / 1000 * pricePerTon
}
