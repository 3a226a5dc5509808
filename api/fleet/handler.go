// Package fleet exposes read-only listings of the roster, the drone fleet and
// the missions.
package fleet

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/kilianp07/skylark/core/model"
)

// Source is the read side of fleet.Repository.
type Source interface {
	Pilots(ctx context.Context) ([]model.Pilot, error)
	Drones(ctx context.Context) ([]model.Drone, error)
	Missions(ctx context.Context) ([]model.Mission, error)
}

// Pilot is the JSON view of a roster row.
type Pilot struct {
	ID                string   `json:"pilot_id,omitempty"`
	Name              string   `json:"name"`
	Status            string   `json:"status"`
	Location          string   `json:"location"`
	Skills            []string `json:"skills"`
	Certifications    []string `json:"certifications"`
	CurrentAssignment string   `json:"current_assignment,omitempty"`
}

// Drone is the JSON view of a fleet row.
type Drone struct {
	ID                string   `json:"drone_id"`
	Model             string   `json:"model,omitempty"`
	Status            string   `json:"status"`
	Location          string   `json:"location"`
	Capabilities      []string `json:"capabilities"`
	CurrentAssignment string   `json:"current_assignment,omitempty"`
}

// Mission is the JSON view of a mission row.
type Mission struct {
	ProjectID              string   `json:"project_id"`
	Client                 string   `json:"client,omitempty"`
	Location               string   `json:"location"`
	Priority               string   `json:"priority"`
	RequiredSkills         []string `json:"required_skills"`
	RequiredCertifications []string `json:"required_certifications"`
	RequiredCapabilities   []string `json:"required_capabilities"`
	StartDate              string   `json:"start_date,omitempty"`
	EndDate                string   `json:"end_date,omitempty"`
}

// Register mounts GET /api/pilots, /api/drones and /api/missions on r.
// Pilots and drones accept status and location filters (case-insensitive).
func Register(r *mux.Router, src Source) {
	r.Handle("/api/pilots", NewPilotsHandler(src)).Methods(http.MethodGet)
	r.Handle("/api/drones", NewDronesHandler(src)).Methods(http.MethodGet)
	r.Handle("/api/missions", NewMissionsHandler(src)).Methods(http.MethodGet)
}

type filter struct{ status, location string }

func filterFrom(r *http.Request) filter {
	return filter{status: r.URL.Query().Get("status"), location: r.URL.Query().Get("location")}
}

func (f filter) match(status, location string) bool {
	if f.status != "" && !strings.EqualFold(f.status, status) {
		return false
	}
	if f.location != "" && !strings.EqualFold(f.location, location) {
		return false
	}
	return true
}

// NewPilotsHandler lists the roster.
func NewPilotsHandler(src Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pilots, err := src.Pilots(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		f := filterFrom(r)
		out := make([]Pilot, 0, len(pilots))
		for _, p := range pilots {
			if !f.match(string(p.Status), p.Location) {
				continue
			}
			out = append(out, Pilot{
				ID: p.ID, Name: p.Name, Status: string(p.Status), Location: p.Location,
				Skills: p.Skills.Sorted(), Certifications: p.Certifications.Sorted(),
				CurrentAssignment: p.CurrentAssignment,
			})
		}
		writeJSON(w, out)
	})
}

// NewDronesHandler lists the fleet.
func NewDronesHandler(src Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		drones, err := src.Drones(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		f := filterFrom(r)
		out := make([]Drone, 0, len(drones))
		for _, d := range drones {
			if !f.match(d.Status, d.Location) {
				continue
			}
			out = append(out, Drone{
				ID: d.ID, Model: d.Model, Status: d.Status, Location: d.Location,
				Capabilities: d.Capabilities.Sorted(), CurrentAssignment: d.CurrentAssignment,
			})
		}
		writeJSON(w, out)
	})
}

// NewMissionsHandler lists the missions.
func NewMissionsHandler(src Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		missions, err := src.Missions(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		out := make([]Mission, 0, len(missions))
		for _, m := range missions {
			out = append(out, Mission{
				ProjectID: m.ProjectID, Client: m.Client, Location: m.Location, Priority: string(m.Priority),
				RequiredSkills:         m.RequiredSkills.Sorted(),
				RequiredCertifications: m.RequiredCertifications.Sorted(),
				RequiredCapabilities:   m.RequiredCapabilities.Sorted(),
				StartDate:              m.StartDate, EndDate: m.EndDate,
			})
		}
		writeJSON(w, out)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
