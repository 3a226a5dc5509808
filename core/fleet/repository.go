package fleet

import (
	"context"
	"fmt"

	"github.com/kilianp07/skylark/core/model"
	"github.com/kilianp07/skylark/core/store"
)

// Repository gives typed access to the fleet tables. Every call reads the
// store afresh; nothing is cached between calls.
type Repository struct {
	ds store.DataStore
}

// NewRepository wraps ds.
func NewRepository(ds store.DataStore) *Repository { return &Repository{ds: ds} }

// Pilots returns the roster in row order.
func (r *Repository) Pilots(ctx context.Context) ([]model.Pilot, error) {
	rows, err := r.ds.Read(ctx, store.PilotRoster)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", store.PilotRoster, err)
	}
	out := make([]model.Pilot, 0, len(rows))
	for _, row := range rows {
		out = append(out, PilotFromRecord(row))
	}
	return out, nil
}

// Drones returns the fleet in row order.
func (r *Repository) Drones(ctx context.Context) ([]model.Drone, error) {
	rows, err := r.ds.Read(ctx, store.DroneFleet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", store.DroneFleet, err)
	}
	out := make([]model.Drone, 0, len(rows))
	for _, row := range rows {
		out = append(out, DroneFromRecord(row))
	}
	return out, nil
}

// Missions returns the missions in row order.
func (r *Repository) Missions(ctx context.Context) ([]model.Mission, error) {
	rows, err := r.ds.Read(ctx, store.Missions)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", store.Missions, err)
	}
	out := make([]model.Mission, 0, len(rows))
	for _, row := range rows {
		out = append(out, MissionFromRecord(row))
	}
	return out, nil
}

// SetPilotStatus overwrites the status of the pilot named name (matched
// case-insensitively). It reports false when the roster has no such pilot.
func (r *Repository) SetPilotStatus(ctx context.Context, name string, status model.PilotStatus) (bool, error) {
	ok, err := r.ds.UpdateField(ctx, store.PilotRoster, ColName, name, ColStatus, string(status))
	if err != nil {
		return false, fmt.Errorf("update %s: %w", store.PilotRoster, err)
	}
	return ok, nil
}
