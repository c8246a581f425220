package event

import (
	"testing"
	"time"
)

func TestParseStageTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		offset   time.Duration
		expected time.Time
		ok       bool
	}{
		{
			name:     "full timestamp with space separator",
			input:    "2025-12-20 18:30:00",
			expected: time.Date(2025, 12, 20, 18, 30, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "full timestamp with T separator",
			input:    "2025-12-20T18:30:00",
			expected: time.Date(2025, 12, 20, 18, 30, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "minute precision with space separator",
			input:    "2025-12-20 18:30",
			expected: time.Date(2025, 12, 20, 18, 30, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "minute precision with T separator",
			input:    "2025-12-20T18:30",
			expected: time.Date(2025, 12, 20, 18, 30, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "bare date",
			input:    "2025-12-20",
			expected: time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "naive value ignores clock offset",
			input:    "2025-12-20 18:30:00",
			offset:   3 * time.Hour,
			expected: time.Date(2025, 12, 20, 18, 30, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "RFC3339 with zone is normalized to UTC then shifted",
			input:    "2025-12-20T18:30:00+02:00",
			offset:   3 * time.Hour,
			expected: time.Date(2025, 12, 20, 19, 30, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "RFC3339 UTC with zero offset",
			input:    "2025-12-20T18:30:00Z",
			expected: time.Date(2025, 12, 20, 18, 30, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:  "empty string",
			input: "",
			ok:    false,
		},
		{
			name:  "garbage",
			input: "next tuesday",
			ok:    false,
		},
		{
			name:  "swapped date components",
			input: "20-12-2025 18:30:00",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseStageTime(tt.input, tt.offset)
			if ok != tt.ok {
				t.Fatalf("ParseStageTime(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.expected) {
				t.Errorf("ParseStageTime(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEventNow(t *testing.T) {
	now := time.Date(2025, 12, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		offset   int
		expected time.Time
	}{
		{"no offset", 0, now},
		{"positive offset", 3, now.Add(3 * time.Hour)},
		{"negative offset", -5, now.Add(-5 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Event{ClockOffsetHours: tt.offset}
			if got := EventNow(e, now); !got.Equal(tt.expected) {
				t.Errorf("EventNow = %v, want %v", got, tt.expected)
			}
		})
	}
}

// threeStageEvent covers registration 10th-15th, approval 15th-17th and
// gift exchange 18th-25th, leaving a gap on the 17th-18th.
func threeStageEvent() *Event {
	return &Event{
		Stages: []Stage{
			{StageType: StageGiftExchange, StageOrder: 3, StartDatetime: "2025-12-18 00:00:00", EndDatetime: "2025-12-25 00:00:00"},
			{StageType: StageRegistration, StageOrder: 1, StartDatetime: "2025-12-10 00:00:00", EndDatetime: "2025-12-15 00:00:00"},
			{StageType: StageApproval, StageOrder: 2, StartDatetime: "2025-12-15 00:00:00", EndDatetime: "2025-12-17 00:00:00"},
		},
	}
}

func TestCurrentStage(t *testing.T) {
	tests := []struct {
		name      string
		event     *Event
		now       time.Time
		wantStage string
		wantPos   StagePosition
	}{
		{
			name:    "no stages configured",
			event:   &Event{},
			now:     time.Date(2025, 12, 12, 0, 0, 0, 0, time.UTC),
			wantPos: PositionUndefined,
		},
		{
			name:    "before first stage",
			event:   threeStageEvent(),
			now:     time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			wantPos: PositionNotStarted,
		},
		{
			name:      "inside registration window",
			event:     threeStageEvent(),
			now:       time.Date(2025, 12, 12, 10, 0, 0, 0, time.UTC),
			wantStage: StageRegistration,
			wantPos:   PositionActive,
		},
		{
			name:      "start boundary is inclusive",
			event:     threeStageEvent(),
			now:       time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC),
			wantStage: StageRegistration,
			wantPos:   PositionActive,
		},
		{
			name:      "end boundary rolls into the next stage",
			event:     threeStageEvent(),
			now:       time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
			wantStage: StageApproval,
			wantPos:   PositionActive,
		},
		{
			name:    "gap between approval and gift exchange",
			event:   threeStageEvent(),
			now:     time.Date(2025, 12, 17, 12, 0, 0, 0, time.UTC),
			wantPos: PositionBetween,
		},
		{
			name:    "past the last stage end",
			event:   threeStageEvent(),
			now:     time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
			wantPos: PositionClosed,
		},
		{
			name: "overlapping windows pick the lowest stage order",
			event: &Event{
				Stages: []Stage{
					{StageType: StageApproval, StageOrder: 2, StartDatetime: "2025-12-10 00:00:00", EndDatetime: "2025-12-20 00:00:00"},
					{StageType: StageRegistration, StageOrder: 1, StartDatetime: "2025-12-10 00:00:00", EndDatetime: "2025-12-20 00:00:00"},
				},
			},
			now:       time.Date(2025, 12, 12, 0, 0, 0, 0, time.UTC),
			wantStage: StageRegistration,
			wantPos:   PositionActive,
		},
		{
			name: "stage with unparseable boundary is skipped",
			event: &Event{
				Stages: []Stage{
					{StageType: StageRegistration, StageOrder: 1, StartDatetime: "soonish", EndDatetime: "2025-12-15 00:00:00"},
					{StageType: StageApproval, StageOrder: 2, StartDatetime: "2025-12-15 00:00:00", EndDatetime: "2025-12-17 00:00:00"},
				},
			},
			now:     time.Date(2025, 12, 12, 0, 0, 0, 0, time.UTC),
			wantPos: PositionNotStarted,
		},
		{
			name: "all boundaries unparseable",
			event: &Event{
				Stages: []Stage{
					{StageType: StageRegistration, StageOrder: 1, StartDatetime: "", EndDatetime: ""},
					{StageType: StageApproval, StageOrder: 2, StartDatetime: "later", EndDatetime: "even later"},
				},
			},
			now:     time.Date(2025, 12, 12, 0, 0, 0, 0, time.UTC),
			wantPos: PositionUndefined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, pos := CurrentStage(tt.event, tt.now)
			if pos != tt.wantPos {
				t.Fatalf("CurrentStage position = %q, want %q", pos, tt.wantPos)
			}
			if tt.wantStage == "" {
				if stage != nil {
					t.Errorf("CurrentStage returned stage %q, want none", stage.StageType)
				}
				return
			}
			if stage == nil {
				t.Fatalf("CurrentStage returned no stage, want %q", tt.wantStage)
			}
			if stage.StageType != tt.wantStage {
				t.Errorf("CurrentStage stage = %q, want %q", stage.StageType, tt.wantStage)
			}
		})
	}
}

func TestCanRegister(t *testing.T) {
	tests := []struct {
		name     string
		event    *Event
		now      time.Time
		expected bool
	}{
		{
			name:     "open during registration stage",
			event:    threeStageEvent(),
			now:      time.Date(2025, 12, 12, 0, 0, 0, 0, time.UTC),
			expected: true,
		},
		{
			name:     "closed during approval stage",
			event:    threeStageEvent(),
			now:      time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC),
			expected: false,
		},
		{
			name:     "closed before any stage",
			event:    threeStageEvent(),
			now:      time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			expected: false,
		},
		{
			name:     "closed with no stages",
			event:    &Event{},
			now:      time.Date(2025, 12, 12, 0, 0, 0, 0, time.UTC),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanRegister(tt.event, tt.now); got != tt.expected {
				t.Errorf("CanRegister = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCanAssign(t *testing.T) {
	afterApproval := time.Date(2025, 12, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		event          *Event
		now            time.Time
		hasAssignments bool
		expected       bool
	}{
		{
			name:     "allowed once registration and approval ended",
			event:    threeStageEvent(),
			now:      afterApproval,
			expected: true,
		},
		{
			name:     "blocked while registration is still open",
			event:    threeStageEvent(),
			now:      time.Date(2025, 12, 12, 0, 0, 0, 0, time.UTC),
			expected: false,
		},
		{
			name:     "blocked while approval is still open",
			event:    threeStageEvent(),
			now:      time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC),
			expected: false,
		},
		{
			name:           "blocked when assignments already exist",
			event:          threeStageEvent(),
			now:            afterApproval,
			hasAssignments: true,
			expected:       false,
		},
		{
			name:     "blocked with no stages",
			event:    &Event{},
			now:      afterApproval,
			expected: false,
		},
		{
			name: "blocked by an unparseable registration end",
			event: &Event{
				Stages: []Stage{
					{StageType: StageRegistration, StageOrder: 1, StartDatetime: "2025-12-10 00:00:00", EndDatetime: "whenever"},
				},
			},
			now:      afterApproval,
			expected: false,
		},
		{
			name: "approval end boundary itself counts as ended",
			event: &Event{
				Stages: []Stage{
					{StageType: StageRegistration, StageOrder: 1, StartDatetime: "2025-12-10 00:00:00", EndDatetime: "2025-12-15 00:00:00"},
					{StageType: StageApproval, StageOrder: 2, StartDatetime: "2025-12-15 00:00:00", EndDatetime: "2025-12-17 00:00:00"},
				},
			},
			now:      time.Date(2025, 12, 17, 0, 0, 0, 0, time.UTC),
			expected: true,
		},
		{
			name: "gift exchange stage does not block",
			event: &Event{
				Stages: []Stage{
					{StageType: StageRegistration, StageOrder: 1, StartDatetime: "2025-12-10 00:00:00", EndDatetime: "2025-12-15 00:00:00"},
					{StageType: StageGiftExchange, StageOrder: 3, StartDatetime: "2025-12-18 00:00:00", EndDatetime: "bad"},
				},
			},
			now:      time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAssign(tt.event, tt.now, tt.hasAssignments); got != tt.expected {
				t.Errorf("CanAssign = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHasStage(t *testing.T) {
	e := threeStageEvent()
	if !HasStage(e, StageApproval) {
		t.Errorf("HasStage(approval) = false, want true")
	}
	if HasStage(e, StageClosing) {
		t.Errorf("HasStage(closing) = true, want false")
	}
}
