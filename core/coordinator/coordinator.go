// Package coordinator implements the three fleet actions: assignment
// recommendation, pilot status update and urgent reassignment. Every call
// reads the data store afresh.
package coordinator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/skylark/core/conflict"
	"github.com/kilianp07/skylark/core/events"
	"github.com/kilianp07/skylark/core/fleet"
	"github.com/kilianp07/skylark/core/logger"
	"github.com/kilianp07/skylark/core/matcher"
	"github.com/kilianp07/skylark/core/model"
	"github.com/kilianp07/skylark/core/resolver"
	"github.com/kilianp07/skylark/core/store"
	"github.com/kilianp07/skylark/internal/eventbus"
)

// Assignment is the recommendation for one mission.
type Assignment struct {
	Mission    model.Mission
	ResolvedBy resolver.Tier
	Pilots     []model.Pilot
	Drones     []model.Drone
	// Conflicts is advisory and never removes a candidate.
	Conflicts conflict.Report
}

// StatusUpdate is a status written to the roster.
type StatusUpdate struct {
	Pilot  string
	Status model.PilotStatus
}

// Message is the confirmation shown to the user.
func (s StatusUpdate) Message() string {
	return fmt.Sprintf("Pilot %s status updated to %s.", s.Pilot, s.Status)
}

// Reassignment is an urgent reassignment recommendation. Nothing is
// written back to the data store.
type Reassignment struct {
	MissionID          string
	Pilot              string
	PreviousAssignment string
	NewLocation        string
}

// Coordinator runs fleet actions against a DataStore.
type Coordinator struct {
	repo   *fleet.Repository
	bus    eventbus.EventBus
	logger logger.Logger
	now    func() time.Time
}

// New creates a Coordinator. bus may be nil.
func New(ds store.DataStore, bus eventbus.EventBus, log logger.Logger) (*Coordinator, error) {
	if ds == nil || log == nil {
		return nil, fmt.Errorf("coordinator: nil parameter provided to New")
	}
	return &Coordinator{
		repo:   fleet.NewRepository(ds),
		bus:    bus,
		logger: log,
		now:    time.Now,
	}, nil
}

func observe(table store.Table) func() {
	timer := prometheus.NewTimer(storeReadLatency.WithLabelValues(string(table)))
	return func() { timer.ObserveDuration() }
}

func (c *Coordinator) pilots(ctx context.Context) ([]model.Pilot, error) {
	defer observe(store.PilotRoster)()
	p, err := c.repo.Pilots(ctx)
	if err != nil {
		storeFailures.WithLabelValues("read").Inc()
		c.logger.Errorf("pilot roster read failed: %v", err)
		return nil, storeError(err)
	}
	return p, nil
}

func (c *Coordinator) drones(ctx context.Context) ([]model.Drone, error) {
	defer observe(store.DroneFleet)()
	d, err := c.repo.Drones(ctx)
	if err != nil {
		storeFailures.WithLabelValues("read").Inc()
		c.logger.Errorf("drone fleet read failed: %v", err)
		return nil, storeError(err)
	}
	return d, nil
}

func (c *Coordinator) missions(ctx context.Context) ([]model.Mission, error) {
	defer observe(store.Missions)()
	m, err := c.repo.Missions(ctx)
	if err != nil {
		storeFailures.WithLabelValues("read").Inc()
		c.logger.Errorf("missions read failed: %v", err)
		return nil, storeError(err)
	}
	return m, nil
}

// RecommendAssignment resolves the mission named in utterance and lists the
// pilots and drones able to fly it.
func (c *Coordinator) RecommendAssignment(ctx context.Context, utterance string) (Assignment, error) {
	pilots, err := c.pilots(ctx)
	if err != nil {
		return Assignment{}, err
	}
	drones, err := c.drones(ctx)
	if err != nil {
		return Assignment{}, err
	}
	missions, err := c.missions(ctx)
	if err != nil {
		return Assignment{}, err
	}

	match, ok := resolver.Resolve(missions, utterance)
	if !ok {
		return Assignment{}, newError(NoMatchingMission, MsgNoMatchingMission)
	}
	a := Assignment{
		Mission:    match.Mission,
		ResolvedBy: match.By,
		Pilots:     matcher.MatchPilots(pilots, match.Mission),
		Drones:     matcher.MatchDrones(drones, match.Mission),
	}
	// Eligible candidates are available and on site by construction, so the
	// report covers every qualified pilot and drone to explain who was left out.
	a.Conflicts = conflict.Annotate(
		matcher.QualifiedPilots(pilots, match.Mission),
		matcher.QualifiedDrones(drones, match.Mission),
	)
	candidatesFound.WithLabelValues("pilot").Add(float64(len(a.Pilots)))
	candidatesFound.WithLabelValues("drone").Add(float64(len(a.Drones)))
	c.logger.Debugw("assignment recommended", map[string]any{
		"mission":     a.Mission.ProjectID,
		"resolved_by": string(a.ResolvedBy),
		"pilots":      len(a.Pilots),
		"drones":      len(a.Drones),
	})
	return a, nil
}

// UpdateStatus writes the canonical form of status for the pilot called
// name. The lookup is case-insensitive.
func (c *Coordinator) UpdateStatus(ctx context.Context, name, status string) (StatusUpdate, error) {
	canonical, ok := model.ParseStatus(status)
	if !ok {
		return StatusUpdate{}, newError(InvalidStatus, MsgInvalidStatus)
	}
	found, err := c.repo.SetPilotStatus(ctx, name, canonical)
	if err != nil {
		storeFailures.WithLabelValues("update").Inc()
		c.logger.Errorf("status update for %s failed: %v", name, err)
		return StatusUpdate{}, storeError(err)
	}
	if !found {
		return StatusUpdate{}, newError(PilotNotFound, fmt.Sprintf(MsgPilotNotFound, name))
	}
	c.logger.Infof("pilot %s status set to %s", name, canonical)
	if c.bus != nil {
		c.bus.Publish(events.StatusChangedEvent{Pilot: name, Status: string(canonical), Time: c.now()})
	}
	return StatusUpdate{Pilot: name, Status: canonical}, nil
}

// UrgentReassignment picks a mission needing cover and the assigned pilot to
// pull onto it. The result is a recommendation only.
func (c *Coordinator) UrgentReassignment(ctx context.Context, utterance string) (Reassignment, error) {
	pilots, err := c.pilots(ctx)
	if err != nil {
		return Reassignment{}, err
	}
	missions, err := c.missions(ctx)
	if err != nil {
		return Reassignment{}, err
	}

	mission, ok := urgentMission(missions, strings.ToLower(utterance))
	if !ok {
		return Reassignment{}, newError(NoMissionAvailable, MsgNoMissionAvailable)
	}
	pilot, ok := reassignablePilot(pilots)
	if !ok {
		return Reassignment{}, newError(NoPilotAvailable, MsgNoPilotAvailable)
	}
	return Reassignment{
		MissionID:          mission.ProjectID,
		Pilot:              pilot.Name,
		PreviousAssignment: pilot.CurrentAssignment,
		NewLocation:        mission.Location,
	}, nil
}

// urgentMission prefers the first mission whose location appears in the
// lower-cased utterance u, then the highest ranked priority. Among missions
// tied for the top rank the last one wins.
func urgentMission(missions []model.Mission, u string) (model.Mission, bool) {
	for _, m := range missions {
		if strings.Contains(u, strings.ToLower(m.Location)) {
			return m, true
		}
	}
	if len(missions) == 0 {
		return model.Mission{}, false
	}
	best := missions[0]
	for _, m := range missions[1:] {
		if m.Priority.Rank() >= best.Priority.Rank() {
			best = m
		}
	}
	return best, true
}

// reassignablePilot returns the first pilot currently assigned.
func reassignablePilot(pilots []model.Pilot) (model.Pilot, bool) {
	for _, p := range pilots {
		if strings.EqualFold(string(p.Status), string(model.StatusAssigned)) {
			return p, true
		}
	}
	return model.Pilot{}, false
}
