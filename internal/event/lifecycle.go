package event

import (
	"sort"
	"time"
)

// StagePosition describes where an event sits relative to its stage windows
type StagePosition string

const (
	PositionUndefined  StagePosition = "undefined"   // event has no stages configured
	PositionNotStarted StagePosition = "not_started" // before the first stage opens
	PositionActive     StagePosition = "active"      // inside a stage window
	PositionBetween    StagePosition = "between"     // gap between stage windows
	PositionClosed     StagePosition = "closed"      // past the last stage's end
)

// stageTimeFormats is the ordered cascade tried against stored timestamps.
// Legacy rows mix separators and precision; RFC3339 goes last because it is
// the only timezone-aware shape.
var stageTimeFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseStageTime parses a stored stage timestamp. Naive values are taken as
// already being in event-local time; a timezone-aware value is shifted by
// the event's clock offset after normalizing to UTC. Returns ok=false for
// anything unparseable — never an error, a malformed legacy row must not
// break stage computation.
func ParseStageTime(s string, offset time.Duration) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range stageTimeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Add(offset), true
	}

	return time.Time{}, false
}

// EventNow computes the event-local clock: server wall time plus the fixed
// hour delta configured on the event.
func EventNow(e *Event, now time.Time) time.Time {
	return now.UTC().Add(time.Duration(e.ClockOffsetHours) * time.Hour)
}

// stageWindow is a stage with resolved boundaries. Known flags track which
// boundaries parsed; an unknown boundary excludes the stage from decisions.
type stageWindow struct {
	stage      *Stage
	start, end time.Time
	known      bool
}

func resolveWindows(stages []Stage, offset time.Duration) []stageWindow {
	windows := make([]stageWindow, 0, len(stages))
	for i := range stages {
		st := &stages[i]
		start, okStart := ParseStageTime(st.StartDatetime, offset)
		end, okEnd := ParseStageTime(st.EndDatetime, offset)
		windows = append(windows, stageWindow{
			stage: st,
			start: start,
			end:   end,
			known: okStart && okEnd,
		})
	}
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].stage.StageOrder < windows[j].stage.StageOrder
	})
	return windows
}

// CurrentStage finds the stage whose [start, end) window contains eventNow,
// selecting the lowest stage_order on overlap. Stages with an unparseable
// boundary are excluded from the decision entirely.
func CurrentStage(e *Event, eventNow time.Time) (*Stage, StagePosition) {
	if len(e.Stages) == 0 {
		return nil, PositionUndefined
	}

	offset := time.Duration(e.ClockOffsetHours) * time.Hour
	windows := resolveWindows(e.Stages, offset)

	var anyKnown bool
	var firstStart, lastEnd time.Time
	for _, w := range windows {
		if !w.known {
			continue
		}
		if !anyKnown {
			firstStart, lastEnd = w.start, w.end
			anyKnown = true
			continue
		}
		if w.start.Before(firstStart) {
			firstStart = w.start
		}
		if w.end.After(lastEnd) {
			lastEnd = w.end
		}
	}

	// Every boundary unknown: no decision can be made
	if !anyKnown {
		return nil, PositionUndefined
	}

	for _, w := range windows {
		if !w.known {
			continue
		}
		if !eventNow.Before(w.start) && eventNow.Before(w.end) {
			return w.stage, PositionActive
		}
	}

	if eventNow.Before(firstStart) {
		return nil, PositionNotStarted
	}
	if !eventNow.Before(lastEnd) {
		return nil, PositionClosed
	}
	return nil, PositionBetween
}

// CanRegister reports whether registration is open: the registration stage
// is current and the event is not soft-deleted (deleted events never reach
// here through the repository).
func CanRegister(e *Event, eventNow time.Time) bool {
	stage, pos := CurrentStage(e, eventNow)
	return pos == PositionActive && stage.StageType == StageRegistration
}

// CanAssign reports whether the pairing may run: registration (and approval,
// when configured) have verifiably ended and no assignments exist yet. An
// unknown stage boundary blocks assignment rather than allowing it.
func CanAssign(e *Event, eventNow time.Time, hasAssignments bool) bool {
	if hasAssignments {
		return false
	}
	if len(e.Stages) == 0 {
		return false
	}

	offset := time.Duration(e.ClockOffsetHours) * time.Hour
	for i := range e.Stages {
		st := &e.Stages[i]
		if st.StageType != StageRegistration && st.StageType != StageApproval {
			continue
		}
		end, ok := ParseStageTime(st.EndDatetime, offset)
		if !ok {
			return false
		}
		if eventNow.Before(end) {
			return false
		}
	}
	return true
}

// HasStage reports whether the event configures a stage of the given type
func HasStage(e *Event, stageType string) bool {
	for i := range e.Stages {
		if e.Stages[i].StageType == stageType {
			return true
		}
	}
	return false
}
