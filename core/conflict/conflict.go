// Package conflict flags scheduling, maintenance and location problems for a
// candidate pilot or drone. Results are advisory and never block a match.
package conflict

import (
	"cmp"

	"github.com/kilianp07/skylark/core/model"
)

const (
	PilotAlreadyAssigned = "Pilot already assigned to another project"
	DroneInMaintenance   = "Drone is under maintenance"
)

// PilotConflicts lists the issues with p flying another mission.
func PilotConflicts(p model.Pilot) []string {
	var issues []string
	if p.CurrentAssignment != "" {
		issues = append(issues, PilotAlreadyAssigned)
	}
	return issues
}

// DroneConflicts lists the issues with d.
func DroneConflicts(d model.Drone) []string {
	var issues []string
	if d.Status == model.DroneMaintenance {
		issues = append(issues, DroneInMaintenance)
	}
	return issues
}

// LocationMismatch reports whether p and d are based in different places.
func LocationMismatch(p model.Pilot, d model.Drone) bool {
	return p.Location != d.Location
}

// Overlap reports whether [aStart, aEnd] and [bStart, bEnd] intersect.
// Touching bounds overlap.
func Overlap[T cmp.Ordered](aStart, aEnd, bStart, bEnd T) bool {
	return !(aEnd < bStart || bEnd < aStart)
}

// Annotation is the advisory view of one candidate.
type Annotation struct {
	Subject string   `json:"subject"`
	Issues  []string `json:"issues"`
}

// Report collects annotations for an assignment candidate list.
type Report struct {
	Pilots []Annotation `json:"pilots,omitempty"`
	Drones []Annotation `json:"drones,omitempty"`
	// LocationMismatches pairs "pilot/drone" whose bases differ.
	LocationMismatches []string `json:"location_mismatches,omitempty"`
}

// Empty reports whether nothing was flagged.
func (r Report) Empty() bool {
	return len(r.Pilots) == 0 && len(r.Drones) == 0 && len(r.LocationMismatches) == 0
}

// Annotate runs every check over the given pools. Pass the unfiltered pools:
// eligible candidates are available and co-located already, so only the pilot
// check could fire on them. Only subjects with at least one issue appear in
// the report.
func Annotate(pilots []model.Pilot, drones []model.Drone) Report {
	var r Report
	for _, p := range pilots {
		if issues := PilotConflicts(p); len(issues) > 0 {
			r.Pilots = append(r.Pilots, Annotation{Subject: p.Name, Issues: issues})
		}
	}
	for _, d := range drones {
		if issues := DroneConflicts(d); len(issues) > 0 {
			r.Drones = append(r.Drones, Annotation{Subject: d.ID, Issues: issues})
		}
	}
	for _, p := range pilots {
		for _, d := range drones {
			if LocationMismatch(p, d) {
				r.LocationMismatches = append(r.LocationMismatches, p.Name+"/"+d.ID)
			}
		}
	}
	return r
}
