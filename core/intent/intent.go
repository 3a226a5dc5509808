// Package intent classifies operator utterances and routes them to the
// coordinator. Classification is an ordered keyword rule list where the
// first matching rule wins.
package intent

import "strings"

// Intent is the classification of one utterance.
type Intent string

const (
	UpdateStatus   Intent = "update_status"
	UrgentReassign Intent = "urgent_reassign"
	Assign         Intent = "assign"
	Unknown        Intent = "unknown"
)

// HelpMessage answers utterances no rule recognises.
const HelpMessage = "I can help with pilot status updates, assignments, conflicts, and urgent reassignments."

// Rule maps keywords to an intent. A rule matches when the lower-cased
// utterance contains any keyword as a substring.
type Rule struct {
	Intent   Intent
	Keywords []string
}

func (r Rule) matches(lower string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Rules is the precedence order used by Classify. "reassign" must be tested
// before "assign" since it contains it.
var Rules = []Rule{
	{Intent: UpdateStatus, Keywords: []string{"mark", "set", "update"}},
	{Intent: UrgentReassign, Keywords: []string{"urgent", "reassign"}},
	{Intent: Assign, Keywords: []string{"assign"}},
}

// Classify returns the intent of the first rule matching utterance, or
// Unknown.
func Classify(utterance string) Intent {
	lower := strings.ToLower(utterance)
	for _, r := range Rules {
		if r.matches(lower) {
			return r.Intent
		}
	}
	return Unknown
}
