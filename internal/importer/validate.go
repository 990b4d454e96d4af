package importer

import "fmt"

var validStatuses = map[string]bool{"OPEN": true, "IN_PROGRESS": true, "ON_HOLD": true, "CLOSED": true}

// ValidateImportSchema checks the catalog for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.WorkOrder.WONo == "" {
		errs = append(errs, fmt.Errorf("work_order.wo_no is required"))
	}
	if len(schema.Findings) == 0 {
		errs = append(errs, fmt.Errorf("at least one finding is required"))
	}

	seen := make(map[string]bool)
	for i, f := range schema.Findings {
		if f.No == "" {
			errs = append(errs, fmt.Errorf("findings[%d].no is required", i))
			continue
		}
		if seen[f.No] {
			errs = append(errs, fmt.Errorf("findings[%d].no %q is duplicated", i, f.No))
		}
		seen[f.No] = true

		if f.Description == "" {
			errs = append(errs, fmt.Errorf("finding %s: description is required", f.No))
		}
		if f.Status != "" && !validStatuses[f.Status] {
			errs = append(errs, fmt.Errorf("finding %s: invalid status %q", f.No, f.Status))
		}

		for j, m := range f.Materials {
			if m.PartNumber == "" {
				errs = append(errs, fmt.Errorf("finding %s: materials[%d].pn is required", f.No, j))
			}
			if m.Qty < 0 {
				errs = append(errs, fmt.Errorf("finding %s: material %s has negative qty", f.No, m.PartNumber))
			}
		}
	}

	return errs
}
