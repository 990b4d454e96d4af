package importer

import (
	"time"

	"github.com/google/uuid"
	"github.com/rgaitan/wotrack/internal/domain"
)

// ConvertResult holds the domain entities produced from a catalog file.
type ConvertResult struct {
	WorkOrder *domain.WorkOrder
	Findings  []*domain.Finding
	Materials []*domain.Material
}

// Convert turns a validated schema into domain entities. A finding with no
// status starts OPEN.
func Convert(schema *ImportSchema, now time.Time) *ConvertResult {
	wo := &domain.WorkOrder{
		ID:          uuid.New().String(),
		WONo:        schema.WorkOrder.WONo,
		Reg:         schema.WorkOrder.Reg,
		Customer:    schema.WorkOrder.Customer,
		Description: schema.WorkOrder.Description,
		PN:          schema.WorkOrder.PN,
		SN:          schema.WorkOrder.SN,
		CreatedAt:   now,
	}

	result := &ConvertResult{WorkOrder: wo}

	for _, fi := range schema.Findings {
		status := domain.FindingStatus(fi.Status)
		if status == "" {
			status = domain.FindingOpen
		}
		f := &domain.Finding{
			ID:          uuid.New().String(),
			WorkOrderID: wo.ID,
			FindingNo:   fi.No,
			Description: fi.Description,
			ActionGiven: fi.ActionGiven,
			ImageURL:    fi.ImageURL,
			Status:      status,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		result.Findings = append(result.Findings, f)

		for _, mi := range fi.Materials {
			result.Materials = append(result.Materials, &domain.Material{
				ID:          uuid.New().String(),
				FindingID:   f.ID,
				PartNumber:  mi.PartNumber,
				Description: mi.Description,
				Qty:         mi.Qty,
				Unit:        mi.Unit,
				Available:   mi.Available,
			})
		}
	}

	return result
}
