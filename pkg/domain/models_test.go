package domain

import "testing"

func TestPeriodicity_IsValid(t *testing.T) {
	for _, p := range []Periodicity{PeriodicityDaily, PeriodicityWeekly, PeriodicityNarrative} {
		if !p.IsValid() {
			t.Errorf("IsValid(%s) = false, want true", p)
		}
	}
	for _, p := range []Periodicity{"", "hourly", "Daily"} {
		if p.IsValid() {
			t.Errorf("IsValid(%q) = true, want false", p)
		}
	}
}

func TestMission_InQuestChain(t *testing.T) {
	tests := []struct {
		name    string
		mission Mission
		want    bool
	}{
		{name: "standalone", mission: Mission{ID: "m1"}, want: false},
		{name: "chained", mission: Mission{ID: "m1", QuestID: "q1", QuestStep: 1}, want: true},
		{name: "quest id without step", mission: Mission{ID: "m1", QuestID: "q1"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mission.InQuestChain(); got != tt.want {
				t.Errorf("InQuestChain() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMissionProgress_Percent(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		target   int
		want     float64
	}{
		{name: "zero", progress: 0, target: 10, want: 0},
		{name: "halfway", progress: 5, target: 10, want: 50},
		{name: "complete", progress: 10, target: 10, want: 100},
		{name: "overshoot capped", progress: 15, target: 10, want: 100},
		{name: "zero target", progress: 5, target: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := UserMissionProgress{Progress: tt.progress}
			if got := p.Percent(tt.target); got != tt.want {
				t.Errorf("Percent(%d) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestUserMissionProgress_Remaining(t *testing.T) {
	p := UserMissionProgress{Progress: 3}
	if got := p.Remaining(10); got != 7 {
		t.Errorf("Remaining(10) = %d, want 7", got)
	}
	p.Progress = 12
	if got := p.Remaining(10); got != 0 {
		t.Errorf("Remaining(10) = %d, want 0 when past target", got)
	}
}
