package intent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/skylark/core/audit"
	"github.com/kilianp07/skylark/core/conflict"
	"github.com/kilianp07/skylark/core/coordinator"
	"github.com/kilianp07/skylark/core/logger"
	"github.com/kilianp07/skylark/core/metrics"
)

// Actions is the coordinator surface the router drives.
type Actions interface {
	RecommendAssignment(ctx context.Context, utterance string) (coordinator.Assignment, error)
	UpdateStatus(ctx context.Context, name, status string) (coordinator.StatusUpdate, error)
	UrgentReassignment(ctx context.Context, utterance string) (coordinator.Reassignment, error)
}

// ReplyKind tells success from failure.
type ReplyKind string

const (
	KindSuccess ReplyKind = "success"
	KindError   ReplyKind = "error"
)

// Reply is the answer to one utterance.
type Reply struct {
	ID      string           `json:"id"`
	Intent  Intent           `json:"intent"`
	Kind    ReplyKind        `json:"kind"`
	Message string           `json:"message"`
	Error   coordinator.Kind `json:"error,omitempty"`
	Payload any              `json:"payload,omitempty"`
}

// AssignmentPayload lists candidate names for a mission.
type AssignmentPayload struct {
	Mission    string          `json:"mission"`
	Location   string          `json:"location"`
	ResolvedBy string          `json:"resolved_by"`
	Pilots     []string        `json:"pilots"`
	Drones     []string        `json:"drones"`
	Conflicts  conflict.Report `json:"conflicts"`
}

// StatusPayload is the status written to the roster.
type StatusPayload struct {
	Pilot  string `json:"pilot"`
	Status string `json:"status"`
}

// ReassignmentPayload is an urgent reassignment recommendation.
type ReassignmentPayload struct {
	UrgentMission      string `json:"urgent_mission"`
	Pilot              string `json:"pilot"`
	PreviousAssignment string `json:"previous_assignment"`
	NewLocation        string `json:"new_location"`
}

type handler func(ctx context.Context, utterance string) (string, any, error)

// Router classifies utterances and runs the matching action. Every handled
// command is recorded to the metrics sink and the audit store.
type Router struct {
	actions  Actions
	handlers map[Intent]handler
	sink     metrics.MetricsSink
	audit    audit.LogStore
	logger   logger.Logger
	now      func() time.Time
	newID    func() string
}

// NewRouter creates a Router. sink and store may be nil.
func NewRouter(actions Actions, sink metrics.MetricsSink, store audit.LogStore, log logger.Logger) (*Router, error) {
	if actions == nil || log == nil {
		return nil, fmt.Errorf("intent: nil parameter provided to NewRouter")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if store == nil {
		store = audit.NopStore{}
	}
	r := &Router{
		actions: actions,
		sink:    sink,
		audit:   store,
		logger:  log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	r.handlers = map[Intent]handler{
		UpdateStatus:   r.updateStatus,
		UrgentReassign: r.urgentReassign,
		Assign:         r.assign,
		Unknown: func(context.Context, string) (string, any, error) {
			return HelpMessage, nil, nil
		},
	}
	return r, nil
}

// Handle answers utterance. Failures are reported inside the Reply.
func (r *Router) Handle(ctx context.Context, utterance string) Reply {
	start := r.now()
	in := Classify(utterance)
	reply := Reply{ID: r.newID(), Intent: in, Kind: KindSuccess}

	msg, payload, err := r.handlers[in](ctx, utterance)
	if err != nil {
		reply.Kind = KindError
		reply.Error = coordinator.KindOf(err)
		reply.Message = coordinator.Message(err)
		if reply.Error == coordinator.DataStoreUnavailable {
			r.logger.Errorf("command %s failed: %v", reply.ID, err)
		}
	} else {
		reply.Message = msg
		reply.Payload = payload
	}
	r.record(ctx, utterance, reply, r.now().Sub(start))
	return reply
}

func (r *Router) record(ctx context.Context, utterance string, reply Reply, latency time.Duration) {
	ts := r.now()
	if err := r.sink.RecordCommand(metrics.CommandEvent{
		ID:        reply.ID,
		Intent:    string(reply.Intent),
		Kind:      string(reply.Kind),
		ErrorKind: string(reply.Error),
		Latency:   latency,
		Time:      ts,
	}); err != nil {
		r.logger.Warnf("metrics: %v", err)
	}
	if err := r.audit.Append(ctx, audit.Record{
		ID:        reply.ID,
		Timestamp: ts,
		Utterance: utterance,
		Intent:    string(reply.Intent),
		Kind:      string(reply.Kind),
		ErrorKind: string(reply.Error),
		Message:   reply.Message,
		LatencyMS: latency.Milliseconds(),
	}); err != nil {
		r.logger.Warnf("audit: %v", err)
	}
	r.logger.Debugw("command handled", map[string]any{
		"id":     reply.ID,
		"intent": string(reply.Intent),
		"kind":   string(reply.Kind),
	})
}

func (r *Router) updateStatus(ctx context.Context, utterance string) (string, any, error) {
	slots, ok := ParseStatusSlots(utterance)
	if !ok {
		return "", nil, coordinator.NewAmbiguousSlots()
	}
	res, err := r.actions.UpdateStatus(ctx, slots.Pilot, string(slots.Status))
	if err != nil {
		return "", nil, err
	}
	return res.Message(), StatusPayload{Pilot: res.Pilot, Status: string(res.Status)}, nil
}

func (r *Router) urgentReassign(ctx context.Context, utterance string) (string, any, error) {
	res, err := r.actions.UrgentReassignment(ctx, utterance)
	if err != nil {
		return "", nil, err
	}
	msg := fmt.Sprintf("Urgent reassignment recommended. Pilot %s can be moved from %s to mission %s in %s.",
		res.Pilot, res.PreviousAssignment, res.MissionID, res.NewLocation)
	return msg, ReassignmentPayload{
		UrgentMission:      res.MissionID,
		Pilot:              res.Pilot,
		PreviousAssignment: res.PreviousAssignment,
		NewLocation:        res.NewLocation,
	}, nil
}

func (r *Router) assign(ctx context.Context, utterance string) (string, any, error) {
	res, err := r.actions.RecommendAssignment(ctx, utterance)
	if err != nil {
		return "", nil, err
	}
	p := AssignmentPayload{
		Mission:    res.Mission.ProjectID,
		Location:   res.Mission.Location,
		ResolvedBy: string(res.ResolvedBy),
		Pilots:     make([]string, 0, len(res.Pilots)),
		Drones:     make([]string, 0, len(res.Drones)),
		Conflicts:  res.Conflicts,
	}
	for _, pl := range res.Pilots {
		p.Pilots = append(p.Pilots, pl.Name)
	}
	for _, d := range res.Drones {
		p.Drones = append(p.Drones, d.ID)
	}
	msg := fmt.Sprintf("Mission %s in %s: %d pilots and %d drones available",
		p.Mission, p.Location, len(p.Pilots), len(p.Drones))
	return msg, p, nil
}
