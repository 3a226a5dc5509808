// Package matcher filters the pilot and drone pools down to the candidates
// able to fly a mission.
package matcher

import "github.com/kilianp07/skylark/core/model"

// PilotEligible reports whether p can fly m: available, on site, and holding
// every required skill and certification.
func PilotEligible(p model.Pilot, m model.Mission) bool {
	if p.Status != model.StatusAvailable {
		return false
	}
	if p.Location != m.Location {
		return false
	}
	return PilotQualified(p, m)
}

// PilotQualified reports whether p holds every skill and certification m
// requires, whatever the pilot's status or base.
func PilotQualified(p model.Pilot, m model.Mission) bool {
	return m.RequiredSkills.SubsetOf(p.Skills) &&
		m.RequiredCertifications.SubsetOf(p.Certifications)
}

// DroneEligible reports whether d can serve m.
func DroneEligible(d model.Drone, m model.Mission) bool {
	if d.Status != string(model.StatusAvailable) {
		return false
	}
	if d.Location != m.Location {
		return false
	}
	return DroneQualified(d, m)
}

// DroneQualified reports whether d carries the capabilities m requires.
func DroneQualified(d model.Drone, m model.Mission) bool {
	return m.RequiredCapabilities.Len() == 0 || m.RequiredCapabilities.SubsetOf(d.Capabilities)
}

// MatchPilots returns the eligible pilots in input order.
func MatchPilots(pilots []model.Pilot, m model.Mission) []model.Pilot {
	out := make([]model.Pilot, 0, len(pilots))
	for _, p := range pilots {
		if PilotEligible(p, m) {
			out = append(out, p)
		}
	}
	return out
}

// MatchDrones returns the eligible drones in input order.
func MatchDrones(drones []model.Drone, m model.Mission) []model.Drone {
	out := make([]model.Drone, 0, len(drones))
	for _, d := range drones {
		if DroneEligible(d, m) {
			out = append(out, d)
		}
	}
	return out
}

// QualifiedPilots returns the pilots holding m's skills and certifications,
// available or not, in input order.
func QualifiedPilots(pilots []model.Pilot, m model.Mission) []model.Pilot {
	out := make([]model.Pilot, 0, len(pilots))
	for _, p := range pilots {
		if PilotQualified(p, m) {
			out = append(out, p)
		}
	}
	return out
}

// QualifiedDrones returns the drones carrying m's capabilities, whatever
// their status or base, in input order.
func QualifiedDrones(drones []model.Drone, m model.Mission) []model.Drone {
	out := make([]model.Drone, 0, len(drones))
	for _, d := range drones {
		if DroneQualified(d, m) {
			out = append(out, d)
		}
	}
	return out
}
