package model

import "strings"

// PilotStatus is the availability state recorded in the pilot roster.
type PilotStatus string

const (
	StatusAvailable   PilotStatus = "Available"
	StatusAssigned    PilotStatus = "Assigned"
	StatusOnLeave     PilotStatus = "On Leave"
	StatusUnavailable PilotStatus = "Unavailable"
)

// CanonicalStatuses lists the accepted pilot statuses.
var CanonicalStatuses = []PilotStatus{StatusAvailable, StatusAssigned, StatusOnLeave, StatusUnavailable}

// ParseStatus maps s case-insensitively onto a canonical status.
func ParseStatus(s string) (PilotStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range CanonicalStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// DroneMaintenance is the drone status that marks it as grounded.
const DroneMaintenance = "Maintenance"

// Pilot is one row of the pilot roster. Status keeps whatever text the roster
// holds; only the canonical values above are produced by this service.
type Pilot struct {
	ID                string
	Name              string
	Status            PilotStatus
	Location          string
	Skills            Set
	Certifications    Set
	CurrentAssignment string
}

// Drone is one row of the drone fleet.
type Drone struct {
	ID                string
	Model             string
	Status            string
	Location          string
	Capabilities      Set
	CurrentAssignment string
}

// Priority is the mission urgency as written in the missions table.
type Priority string

// Rank orders priorities for urgent reassignment. Unknown values rank lowest.
func (p Priority) Rank() int {
	switch strings.ToLower(string(p)) {
	case "urgent":
		return 3
	case "high":
		return 2
	case "medium":
		return 1
	default:
		return 0
	}
}

// Mission is a unit of work needing pilots and drones.
type Mission struct {
	ProjectID              string
	Client                 string
	Location               string
	Priority               Priority
	RequiredSkills         Set
	RequiredCertifications Set
	RequiredCapabilities   Set
	StartDate              string
	EndDate                string
}
