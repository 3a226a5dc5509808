// Package fleet converts data store records into domain types. The textual
// form of set columns (comma joined) is handled here and nowhere else.
package fleet

import (
	"strings"

	"github.com/kilianp07/skylark/core/model"
	"github.com/kilianp07/skylark/core/store"
)

// Column headers of the three tables.
const (
	ColPilotID           = "pilot_id"
	ColName              = "name"
	ColStatus            = "status"
	ColLocation          = "location"
	ColSkills            = "skills"
	ColCertifications    = "certifications"
	ColCurrentAssignment = "current_assignment"

	ColDroneID      = "drone_id"
	ColModel        = "model"
	ColCapabilities = "capabilities"

	ColProjectID              = "project_id"
	ColClient                 = "client"
	ColPriority               = "priority"
	ColRequiredSkills         = "required_skills"
	ColRequiredCertifications = "required_certifications"
	ColRequiredCapabilities   = "required_capabilities"
	ColStartDate              = "start_date"
	ColEndDate                = "end_date"
)

// ParseSet splits a comma joined column. Items are trimmed and empty items
// dropped so that a blank cell yields the empty set.
func ParseSet(s string) model.Set {
	set := model.NewSet()
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			set.Add(part)
		}
	}
	return set
}

// FormatSet joins a set back into its column form, sorted.
func FormatSet(s model.Set) string { return strings.Join(s.Sorted(), ",") }

// PilotFromRecord decodes a roster row.
func PilotFromRecord(r store.Record) model.Pilot {
	return model.Pilot{
		ID:                r.Get(ColPilotID),
		Name:              r.Get(ColName),
		Status:            model.PilotStatus(r.Get(ColStatus)),
		Location:          r.Get(ColLocation),
		Skills:            ParseSet(r.Get(ColSkills)),
		Certifications:    ParseSet(r.Get(ColCertifications)),
		CurrentAssignment: r.Get(ColCurrentAssignment),
	}
}

// DroneFromRecord decodes a fleet row.
func DroneFromRecord(r store.Record) model.Drone {
	return model.Drone{
		ID:                r.Get(ColDroneID),
		Model:             r.Get(ColModel),
		Status:            r.Get(ColStatus),
		Location:          r.Get(ColLocation),
		Capabilities:      ParseSet(r.Get(ColCapabilities)),
		CurrentAssignment: r.Get(ColCurrentAssignment),
	}
}

// MissionFromRecord decodes a missions row.
func MissionFromRecord(r store.Record) model.Mission {
	return model.Mission{
		ProjectID:              r.Get(ColProjectID),
		Client:                 r.Get(ColClient),
		Location:               r.Get(ColLocation),
		Priority:               model.Priority(r.Get(ColPriority)),
		RequiredSkills:         ParseSet(r.Get(ColRequiredSkills)),
		RequiredCertifications: ParseSet(r.Get(ColRequiredCertifications)),
		RequiredCapabilities:   ParseSet(r.Get(ColRequiredCapabilities)),
		StartDate:              r.Get(ColStartDate),
		EndDate:                r.Get(ColEndDate),
	}
}
