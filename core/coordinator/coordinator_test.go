package coordinator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/skylark/core/conflict"
	"github.com/kilianp07/skylark/core/events"
	"github.com/kilianp07/skylark/core/model"
	"github.com/kilianp07/skylark/core/store"
	"github.com/kilianp07/skylark/infra/logger"
	"github.com/kilianp07/skylark/infra/memstore"
	"github.com/kilianp07/skylark/internal/eventbus"
)

func fixture() map[store.Table][]store.Record {
	return map[store.Table][]store.Record{
		store.PilotRoster: {
			{"name": "Sneha", "status": "Available", "location": "Bangalore", "skills": "thermal", "certifications": "BVLOC"},
			{"name": "Arjun", "status": "Assigned", "location": "Mumbai", "skills": "mapping", "certifications": "", "current_assignment": "PRJ002"},
			{"name": "Kavya", "status": "assigned", "location": "Pune", "current_assignment": "PRJ003"},
		},
		store.DroneFleet: {
			{"drone_id": "D001", "status": "Available", "location": "Bangalore", "capabilities": "thermal"},
			{"drone_id": "D002", "status": "Maintenance", "location": "Bangalore", "capabilities": "thermal"},
		},
		store.Missions: {
			{"project_id": "PRJ001", "location": "Bangalore", "priority": "High", "required_skills": "thermal", "required_certifications": "BVLOC"},
			{"project_id": "PRJ002", "location": "Mumbai", "priority": "Urgent", "required_skills": "mapping"},
		},
	}
}

func newCoordinator(t *testing.T, ds store.DataStore, bus eventbus.EventBus) *Coordinator {
	t.Helper()
	ResetMetrics(nil)
	c, err := New(ds, bus, logger.NopLogger{})
	require.NoError(t, err)
	return c
}

func TestNewRejectsNil(t *testing.T) {
	_, err := New(nil, nil, logger.NopLogger{})
	assert.Error(t, err)
	_, err = New(memstore.New(nil), nil, nil)
	assert.Error(t, err)
}

func TestRecommendAssignmentEndToEnd(t *testing.T) {
	c := newCoordinator(t, memstore.New(fixture()), nil)
	a, err := c.RecommendAssignment(context.Background(), "assign PRJ001")
	require.NoError(t, err)
	assert.Equal(t, "PRJ001", a.Mission.ProjectID)
	require.Len(t, a.Pilots, 1)
	assert.Equal(t, "Sneha", a.Pilots[0].Name)
	require.Len(t, a.Drones, 1)
	assert.Equal(t, "D001", a.Drones[0].ID)
	assert.Equal(t, []conflict.Annotation{{Subject: "D002", Issues: []string{conflict.DroneInMaintenance}}}, a.Conflicts.Drones)
	assert.Empty(t, a.Conflicts.Pilots)
	assert.Empty(t, a.Conflicts.LocationMismatches)
	assert.Equal(t, 1.0, testutil.ToFloat64(candidatesFound.WithLabelValues("pilot")))
}

func TestRecommendAssignmentConflictsCoverQualifiedPools(t *testing.T) {
	c := newCoordinator(t, memstore.New(fixture()), nil)
	a, err := c.RecommendAssignment(context.Background(), "assign PRJ002")
	require.NoError(t, err)
	assert.Empty(t, a.Pilots)
	assert.Empty(t, a.Drones)
	assert.Equal(t, []conflict.Annotation{{Subject: "Arjun", Issues: []string{conflict.PilotAlreadyAssigned}}}, a.Conflicts.Pilots)
	assert.Equal(t, []conflict.Annotation{{Subject: "D002", Issues: []string{conflict.DroneInMaintenance}}}, a.Conflicts.Drones)
	assert.Equal(t, []string{"Arjun/D001", "Arjun/D002"}, a.Conflicts.LocationMismatches)
}

func TestRecommendAssignmentNoMission(t *testing.T) {
	c := newCoordinator(t, memstore.New(fixture()), nil)
	_, err := c.RecommendAssignment(context.Background(), "assign something in Delhi")
	require.Error(t, err)
	assert.ErrorIs(t, err, NoMatchingMission)
	assert.Equal(t, MsgNoMatchingMission, Message(err))
}

func TestUpdateStatus(t *testing.T) {
	ds := memstore.New(fixture())
	bus := eventbus.New()
	sub := bus.Subscribe()
	c := newCoordinator(t, ds, bus)
	c.now = func() time.Time { return time.Unix(100, 0) }

	res, err := c.UpdateStatus(context.Background(), "Sneha", "on leave")
	require.NoError(t, err)
	assert.Equal(t, model.StatusOnLeave, res.Status)
	assert.Equal(t, "Pilot Sneha status updated to On Leave.", res.Message())

	rows, err := ds.Read(context.Background(), store.PilotRoster)
	require.NoError(t, err)
	assert.Equal(t, "On Leave", rows[0].Get("status"))

	ev := <-sub
	assert.Equal(t, events.StatusChangedEvent{Pilot: "Sneha", Status: "On Leave", Time: time.Unix(100, 0)}, ev)
}

func TestUpdateStatusErrors(t *testing.T) {
	c := newCoordinator(t, memstore.New(fixture()), nil)

	_, err := c.UpdateStatus(context.Background(), "Sneha", "sleeping")
	assert.ErrorIs(t, err, InvalidStatus)

	_, err = c.UpdateStatus(context.Background(), "Ghost", "Available")
	assert.ErrorIs(t, err, PilotNotFound)
	assert.Equal(t, "Pilot 'Ghost' not found in Pilot Roster.", Message(err))
	assert.Equal(t, PilotNotFound, KindOf(err))
}

func TestUrgentReassignmentByLocation(t *testing.T) {
	c := newCoordinator(t, memstore.New(fixture()), nil)
	r, err := c.UrgentReassignment(context.Background(), "urgent cover needed in MUMBAI")
	require.NoError(t, err)
	assert.Equal(t, Reassignment{MissionID: "PRJ002", Pilot: "Arjun", PreviousAssignment: "PRJ002", NewLocation: "Mumbai"}, r)
}

func TestUrgentReassignmentTieBreak(t *testing.T) {
	seed := fixture()
	seed[store.Missions] = []store.Record{
		{"project_id": "A", "location": "Chennai", "priority": "high"},
		{"project_id": "B", "location": "Delhi", "priority": "urgent"},
		{"project_id": "C", "location": "Hyderabad", "priority": "URGENT"},
	}
	c := newCoordinator(t, memstore.New(seed), nil)
	r, err := c.UrgentReassignment(context.Background(), "urgent reassign please")
	require.NoError(t, err)
	assert.Equal(t, "C", r.MissionID)
	assert.Equal(t, "Hyderabad", r.NewLocation)
}

func TestUrgentMissionRanks(t *testing.T) {
	ms := []model.Mission{{ProjectID: "A", Location: "x", Priority: "medium"}, {ProjectID: "B", Location: "y", Priority: "low"}}
	m, ok := urgentMission(ms, "urgent")
	require.True(t, ok)
	assert.Equal(t, "A", m.ProjectID)

	_, ok = urgentMission(nil, "urgent")
	assert.False(t, ok)
}

func TestUrgentReassignmentErrors(t *testing.T) {
	seed := fixture()
	seed[store.Missions] = nil
	c := newCoordinator(t, memstore.New(seed), nil)
	_, err := c.UrgentReassignment(context.Background(), "urgent")
	assert.ErrorIs(t, err, NoMissionAvailable)

	seed = fixture()
	seed[store.PilotRoster] = []store.Record{{"name": "Sneha", "status": "Available"}}
	c = newCoordinator(t, memstore.New(seed), nil)
	_, err = c.UrgentReassignment(context.Background(), "urgent")
	assert.ErrorIs(t, err, NoPilotAvailable)
	assert.Equal(t, MsgNoPilotAvailable, err.Error())
}

type brokenStore struct{ err error }

func (b brokenStore) Read(context.Context, store.Table) ([]store.Record, error) { return nil, b.err }
func (b brokenStore) UpdateField(context.Context, store.Table, string, string, string, string) (bool, error) {
	return false, b.err
}

func TestStoreFailuresAreWrapped(t *testing.T) {
	boom := errors.New("403 forbidden")
	c := newCoordinator(t, brokenStore{err: boom}, nil)
	reg := prometheus.NewRegistry()
	MustRegisterMetrics(reg)

	_, err := c.RecommendAssignment(context.Background(), "assign PRJ001")
	assert.ErrorIs(t, err, DataStoreUnavailable)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, MsgStoreUnavailable, Message(err))

	_, err = c.UpdateStatus(context.Background(), "Sneha", "Available")
	assert.ErrorIs(t, err, DataStoreUnavailable)

	_, err = c.UrgentReassignment(context.Background(), "urgent")
	assert.ErrorIs(t, err, DataStoreUnavailable)

	assert.Equal(t, 2.0, testutil.ToFloat64(storeFailures.WithLabelValues("read")))
	assert.Equal(t, 1.0, testutil.ToFloat64(storeFailures.WithLabelValues("update")))
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("x")))
	assert.Equal(t, "x", Message(errors.New("x")))
}
