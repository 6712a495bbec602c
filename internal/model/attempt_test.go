package model

import (
	"testing"
	"time"
)

func TestAttemptRemainingSeconds(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	attempt := PracticeAttempt{StartedAt: start, DurationSeconds: 1800}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "at start", now: start, want: 1800},
		{name: "halfway", now: start.Add(15 * time.Minute), want: 900},
		{name: "at deadline", now: start.Add(30 * time.Minute), want: 0},
		{name: "past deadline clamps", now: start.Add(2 * time.Hour), want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := attempt.RemainingSeconds(tc.now); got != tc.want {
				t.Errorf("RemainingSeconds(%v) = %d, want %d", tc.now, got, tc.want)
			}
		})
	}

	if !attempt.ExpiresAt().Equal(start.Add(30 * time.Minute)) {
		t.Errorf("ExpiresAt = %v", attempt.ExpiresAt())
	}
}

func TestAttemptDeadlinePassed(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	attempt := PracticeAttempt{StartedAt: start, DurationSeconds: 1800}
	deadline := start.Add(30 * time.Minute)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "well before", now: start.Add(10 * time.Minute), want: false},
		{name: "inside final second", now: deadline.Add(-500 * time.Millisecond), want: false},
		{name: "exactly at deadline", now: deadline, want: false},
		{name: "just past deadline", now: deadline.Add(time.Nanosecond), want: true},
		{name: "long past deadline", now: deadline.Add(time.Hour), want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := attempt.DeadlinePassed(tc.now); got != tc.want {
				t.Errorf("DeadlinePassed(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestAttemptIsTerminal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{status: AttemptStatusOngoing, want: false},
		{status: AttemptStatusCompleted, want: true},
		{status: AttemptStatusExpired, want: true},
	}
	for _, tc := range tests {
		attempt := PracticeAttempt{Status: tc.status}
		if got := attempt.IsTerminal(); got != tc.want {
			t.Errorf("IsTerminal() with status %q = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestAssignmentPhase(t *testing.T) {
	startTime := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	endTime := startTime.Add(2 * time.Hour)
	assignment := ExamAssignment{StartTime: startTime, EndTime: endTime}

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{name: "before window", now: startTime.Add(-time.Minute), want: AssignmentPhaseUpcoming},
		{name: "at start", now: startTime, want: AssignmentPhaseOngoing},
		{name: "inside window", now: startTime.Add(time.Hour), want: AssignmentPhaseOngoing},
		{name: "at end", now: endTime, want: AssignmentPhaseOngoing},
		{name: "after window", now: endTime.Add(time.Second), want: AssignmentPhaseEnded},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := assignment.Phase(tc.now); got != tc.want {
				t.Errorf("Phase(%v) = %q, want %q", tc.now, got, tc.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{input: "student", want: RoleStudent, ok: true},
		{input: "teacher", want: RoleTeacher, ok: true},
		{input: "admin", want: RoleAdmin, ok: true},
		{input: "superuser", ok: false},
		{input: "", ok: false},
	}
	for _, tc := range tests {
		got, ok := ParseRole(tc.input)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}
