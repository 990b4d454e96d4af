package domain

// Material is a catalog row attached to a finding. The engine never mutates
// materials; they exist for display and availability checks.
type Material struct {
	ID          string
	FindingID   string
	PartNumber  string
	Description string
	Qty         float64
	Unit        string
	Available   bool
}
