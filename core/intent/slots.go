package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kilianp07/skylark/core/model"
)

// StatusSlots are the values extracted from a status update command.
type StatusSlots struct {
	Pilot  string
	Status model.PilotStatus
}

var statusTriggers = []string{"mark", "set", "update"}

// statusPhrases is checked in order and the first phrase found wins, so
// "unavailable" resolves to Available.
var statusPhrases = []struct {
	phrase string
	status model.PilotStatus
}{
	{"on leave", model.StatusOnLeave},
	{"available", model.StatusAvailable},
	{"assigned", model.StatusAssigned},
	{"unavailable", model.StatusUnavailable},
}

// ParseStatusSlots extracts the pilot and status from utterances such as
// "Mark Sneha as Available". The pilot is the single word following the
// first trigger word present (mark, then set, then update). It reports
// false when either slot is missing.
func ParseStatusSlots(utterance string) (StatusSlots, bool) {
	lower := strings.ToLower(utterance)
	words := strings.Fields(strings.ReplaceAll(lower, ",", ""))

	var slots StatusSlots
	for _, trigger := range statusTriggers {
		i := indexOf(words, trigger)
		if i < 0 {
			continue
		}
		if i+1 < len(words) {
			slots.Pilot = capitalize(words[i+1])
		}
		break
	}
	for _, p := range statusPhrases {
		if strings.Contains(lower, p.phrase) {
			slots.Status = p.status
			break
		}
	}
	if slots.Pilot == "" || slots.Status == "" {
		return StatusSlots{}, false
	}
	return slots, true
}

func indexOf(words []string, w string) int {
	for i, x := range words {
		if x == w {
			return i
		}
	}
	return -1
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
