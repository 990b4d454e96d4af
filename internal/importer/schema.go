package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for a work-order catalog file.
type ImportSchema struct {
	WorkOrder WorkOrderImport `json:"work_order"`
	Findings  []FindingImport `json:"findings"`
}

// WorkOrderImport defines the work-order header fields in the import file.
type WorkOrderImport struct {
	WONo        string `json:"wo_no"`
	Reg         string `json:"reg,omitempty"`
	Customer    string `json:"customer,omitempty"`
	Description string `json:"description,omitempty"`
	PN          string `json:"pn,omitempty"`
	SN          string `json:"sn,omitempty"`
}

// FindingImport defines one finding with its material list.
type FindingImport struct {
	No          string           `json:"no"`
	Description string           `json:"description"`
	ActionGiven string           `json:"action_given,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	Status      string           `json:"status,omitempty"`
	Materials   []MaterialImport `json:"materials,omitempty"`
}

// MaterialImport defines one material row under a finding.
type MaterialImport struct {
	PartNumber  string  `json:"pn"`
	Description string  `json:"description,omitempty"`
	Qty         float64 `json:"qty"`
	Unit        string  `json:"unit,omitempty"`
	Available   bool    `json:"available"`
}

// LoadImportSchema reads and parses a work-order catalog JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
