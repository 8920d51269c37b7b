package models

// CaneTicket is one weighbridge event captured from a slip photo or pulled
// back from the spreadsheet mirror. Timestamp (epoch milliseconds) is
// authoritative for ordering and goal-round membership; Date and Time are
// display strings as they appear on the slip.
type CaneTicket struct {
	ID            string  `bson:"_id" json:"id"`
	TicketNumber  string  `bson:"ticket_number" json:"ticketNumber"`
	Date          string  `bson:"date" json:"date"`
	Time          string  `bson:"time" json:"time"`
	NetWeightKg   float64 `bson:"net_weight_kg" json:"netWeightKg"`
	GrossWeightKg float64 `bson:"gross_weight_kg,omitempty" json:"grossWeightKg,omitempty"`
	TareWeightKg  float64 `bson:"tare_weight_kg,omitempty" json:"tareWeightKg,omitempty"`
	LicensePlate  string  `bson:"license_plate" json:"licensePlate"`
	VendorName    string  `bson:"vendor_name" json:"vendorName"`
	ProductName   string  `bson:"product_name" json:"productName"`
	ImageURL      string  `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Timestamp     int64   `bson:"timestamp" json:"timestamp"`

	// Snapshot of the goal that was active when the ticket was created.
	// Historical attribution only; never recomputed when the goal changes.
	GoalTarget float64 `bson:"goal_target,omitempty" json:"goalTarget,omitempty"`
	GoalRound  int     `bson:"goal_round,omitempty" json:"goalRound,omitempty"`

	// Pricing fields stay nil until the user supplies a moisture reading.
	// CanePrice is always derived from Moisture, and TotalValue must equal
	// (NetWeightKg/1000)*CanePrice whenever CanePrice is set.
	Moisture   *float64 `bson:"moisture,omitempty" json:"moisture,omitempty"`
	CanePrice  *float64 `bson:"cane_price,omitempty" json:"canePrice,omitempty"`
	TotalValue *float64 `bson:"total_value,omitempty" json:"totalValue,omitempty"`
}

// PlaceholderText is what missing string fields are coerced to when the
// vision model cannot read them off the slip.
const PlaceholderText = "-"

// DefaultProductName is assumed when the slip does not name the product.
const DefaultProductName = "อ้อย"
