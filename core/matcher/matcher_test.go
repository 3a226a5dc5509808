package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/skylark/core/model"
)

func mission() model.Mission {
	return model.Mission{
		ProjectID:              "PRJ001",
		Location:               "Bangalore",
		RequiredSkills:         model.NewSet("thermal"),
		RequiredCertifications: model.NewSet("BVLOC"),
	}
}

func TestMatchPilots(t *testing.T) {
	pilots := []model.Pilot{
		{Name: "Sneha", Status: model.StatusAvailable, Location: "Bangalore", Skills: model.NewSet("thermal", "mapping"), Certifications: model.NewSet("BVLOC")},
		{Name: "Arjun", Status: model.StatusAvailable, Location: "Mumbai", Skills: model.NewSet("thermal"), Certifications: model.NewSet("BVLOC")},
		{Name: "Rohit", Status: "available", Location: "Bangalore", Skills: model.NewSet("thermal"), Certifications: model.NewSet("BVLOC")},
		{Name: "Kavya", Status: model.StatusAvailable, Location: "Bangalore", Skills: model.NewSet("mapping"), Certifications: model.NewSet("BVLOC")},
		{Name: "Meera", Status: model.StatusAvailable, Location: "Bangalore", Skills: model.NewSet("thermal"), Certifications: model.NewSet()},
		{Name: "Vikram", Status: model.StatusAvailable, Location: "Bangalore", Skills: model.NewSet("thermal"), Certifications: model.NewSet("BVLOC", "Night")},
	}

	got := MatchPilots(pilots, mission())
	require.Len(t, got, 2)
	assert.Equal(t, "Sneha", got[0].Name)
	assert.Equal(t, "Vikram", got[1].Name)

	for _, p := range got {
		assert.Equal(t, mission().Location, p.Location)
		assert.True(t, mission().RequiredSkills.SubsetOf(p.Skills))
		assert.True(t, mission().RequiredCertifications.SubsetOf(p.Certifications))
	}
}

func TestMatchPilotsEmptyRequirements(t *testing.T) {
	m := model.Mission{Location: "Pune"}
	pilots := []model.Pilot{{Name: "A", Status: model.StatusAvailable, Location: "Pune"}}
	assert.Len(t, MatchPilots(pilots, m), 1)
	assert.Empty(t, MatchPilots(nil, m))
}

func TestMatchDrones(t *testing.T) {
	drones := []model.Drone{
		{ID: "D1", Status: "Available", Location: "Bangalore", Capabilities: model.NewSet("thermal")},
		{ID: "D2", Status: model.DroneMaintenance, Location: "Bangalore", Capabilities: model.NewSet("thermal")},
		{ID: "D3", Status: "Available", Location: "Bangalore"},
		{ID: "D4", Status: "Available", Location: "Delhi", Capabilities: model.NewSet("thermal")},
	}

	m := mission()
	m.RequiredCapabilities = model.NewSet("thermal")
	got := MatchDrones(drones, m)
	require.Len(t, got, 1)
	assert.Equal(t, "D1", got[0].ID)

	m.RequiredCapabilities = model.NewSet()
	got = MatchDrones(drones, m)
	require.Len(t, got, 2)
	assert.Equal(t, "D1", got[0].ID)
	assert.Equal(t, "D3", got[1].ID)
}

func TestQualifiedIgnoresStatusAndBase(t *testing.T) {
	pilots := []model.Pilot{
		{Name: "Sneha", Status: model.StatusOnLeave, Location: "Mumbai", Skills: model.NewSet("thermal"), Certifications: model.NewSet("BVLOC")},
		{Name: "Kavya", Status: model.StatusAvailable, Location: "Bangalore", Skills: model.NewSet("mapping"), Certifications: model.NewSet("BVLOC")},
	}
	got := QualifiedPilots(pilots, mission())
	require.Len(t, got, 1)
	assert.Equal(t, "Sneha", got[0].Name)
	assert.Empty(t, MatchPilots(pilots, mission()))

	m := mission()
	m.RequiredCapabilities = model.NewSet("thermal")
	drones := []model.Drone{
		{ID: "D1", Status: "Maintenance", Location: "Pune", Capabilities: model.NewSet("thermal")},
		{ID: "D2", Status: "Available", Location: "Bangalore", Capabilities: model.NewSet("lidar")},
	}
	gotDrones := QualifiedDrones(drones, m)
	require.Len(t, gotDrones, 1)
	assert.Equal(t, "D1", gotDrones[0].ID)
}
