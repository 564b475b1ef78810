// internal/playback/state_test.go
package playback

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StateStopping, "Stopping"},
		{StateLoading, "Loading"},
		{StatePlaying, "Playing"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_IsActive(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateIdle, false},
		{StateStopping, false},
		{StateLoading, false},
		{StatePlaying, true},
	}
	for _, tt := range tests {
		if got := tt.state.IsActive(); got != tt.want {
			t.Errorf("%v.IsActive() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestState_IsTransient(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateIdle, false},
		{StateStopping, true},
		{StateLoading, true},
		{StatePlaying, false},
	}
	for _, tt := range tests {
		if got := tt.state.IsTransient(); got != tt.want {
			t.Errorf("%v.IsTransient() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomePlaying, "playing"},
		{OutcomeNotTrack, "not_track"},
		{OutcomeInvalidID, "invalid_id"},
		{OutcomeLoadFailed, "load_failed"},
		{Outcome(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
