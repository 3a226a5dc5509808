package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/skylark/core/model"
)

func TestPilotConflicts(t *testing.T) {
	assert.Empty(t, PilotConflicts(model.Pilot{Name: "Sneha"}))
	assert.Equal(t, []string{PilotAlreadyAssigned}, PilotConflicts(model.Pilot{Name: "Arjun", CurrentAssignment: "PRJ002"}))
}

func TestDroneConflicts(t *testing.T) {
	assert.Empty(t, DroneConflicts(model.Drone{Status: "Available"}))
	assert.Equal(t, []string{DroneInMaintenance}, DroneConflicts(model.Drone{Status: "Maintenance"}))
	// exact match only
	assert.Empty(t, DroneConflicts(model.Drone{Status: "maintenance"}))
}

func TestLocationMismatch(t *testing.T) {
	assert.False(t, LocationMismatch(model.Pilot{Location: "Pune"}, model.Drone{Location: "Pune"}))
	assert.True(t, LocationMismatch(model.Pilot{Location: "Pune"}, model.Drone{Location: "pune"}))
}

func TestOverlap(t *testing.T) {
	assert.True(t, Overlap(1, 5, 3, 8))
	assert.True(t, Overlap(1, 5, 5, 8), "touching bounds overlap")
	assert.False(t, Overlap(1, 4, 5, 8))
	assert.False(t, Overlap(6, 8, 1, 5))
	assert.True(t, Overlap("2024-01-01", "2024-01-10", "2024-01-05", "2024-02-01"))

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	assert.True(t, Overlap(day(1).Unix(), day(3).Unix(), day(3).Unix(), day(4).Unix()))
}

func TestAnnotate(t *testing.T) {
	pilots := []model.Pilot{
		{Name: "Sneha", Location: "Bangalore"},
		{Name: "Arjun", Location: "Bangalore", CurrentAssignment: "PRJ002"},
	}
	drones := []model.Drone{{ID: "D1", Location: "Bangalore", Status: "Available"}}
	r := Annotate(pilots, drones)
	assert.False(t, r.Empty())
	assert.Equal(t, []Annotation{{Subject: "Arjun", Issues: []string{PilotAlreadyAssigned}}}, r.Pilots)
	assert.Empty(t, r.Drones)
	assert.Empty(t, r.LocationMismatches)

	r = Annotate([]model.Pilot{{Name: "Sneha", Location: "Pune"}}, drones)
	assert.Equal(t, []string{"Sneha/D1"}, r.LocationMismatches)

	assert.True(t, Annotate(nil, nil).Empty())
}
