// Package resolver picks the mission a free-text utterance refers to.
package resolver

import (
	"strings"

	"github.com/kilianp07/skylark/core/model"
)

// Tier says which field resolved the mission.
type Tier string

const (
	ByProjectID Tier = "project_id"
	ByLocation  Tier = "location"
	ByPriority  Tier = "priority"
)

// Match is a resolved mission.
type Match struct {
	Mission model.Mission
	By      Tier
}

type tier struct {
	by    Tier
	field func(model.Mission) string
	// allowEmpty lets an empty field match; an empty string is a substring
	// of every utterance.
	allowEmpty bool
}

var tiers = []tier{
	{by: ByProjectID, field: func(m model.Mission) string { return m.ProjectID }, allowEmpty: true},
	{by: ByLocation, field: func(m model.Mission) string { return m.Location }},
	{by: ByPriority, field: func(m model.Mission) string { return string(m.Priority) }},
}

// Resolve returns the first mission whose project id, then location, then
// priority appears in utterance, case-insensitively. Each tier scans every
// mission before the next tier is tried.
func Resolve(missions []model.Mission, utterance string) (Match, bool) {
	u := strings.ToLower(utterance)
	for _, t := range tiers {
		for _, m := range missions {
			v := strings.ToLower(t.field(m))
			if v == "" && !t.allowEmpty {
				continue
			}
			if strings.Contains(u, v) {
				return Match{Mission: m, By: t.by}, true
			}
		}
	}
	return Match{}, false
}
