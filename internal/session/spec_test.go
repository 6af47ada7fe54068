package session

import "testing"

func TestNewSpecDefaults(t *testing.T) {
	tests := []struct {
		mode      Mode
		wantCount int
		wantTimer bool
	}{
		{ModeExam, MaxDrillCount, true},
		{ModeFull, MinFullCount, false},
		{ModePractice, MaxDrillCount, false},
		{ModeMistakes, MaxDrillCount, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			s := NewSpec(tt.mode)
			if s.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", s.Count, tt.wantCount)
			}
			if s.TimerEnabled != tt.wantTimer {
				t.Errorf("TimerEnabled = %v, want %v", s.TimerEnabled, tt.wantTimer)
			}
		})
	}
}

func TestSetModeAdjustsImplicitCount(t *testing.T) {
	s := NewSpec(ModePractice)
	if s.Count != MaxDrillCount {
		t.Fatalf("Count = %d, want %d", s.Count, MaxDrillCount)
	}

	// Switching to full raises the implicit count to the full minimum.
	s.SetMode(ModeFull)
	if s.Count != MinFullCount {
		t.Errorf("Count after full = %d, want %d", s.Count, MinFullCount)
	}

	// And back to practice caps it again.
	s.SetMode(ModePractice)
	if s.Count != MaxDrillCount {
		t.Errorf("Count after practice = %d, want %d", s.Count, MaxDrillCount)
	}
}

func TestSetCountSticksAcrossModeChanges(t *testing.T) {
	s := NewSpec(ModePractice)
	s.SetCount(10)

	s.SetMode(ModeFull)
	if s.Count != 10 {
		t.Errorf("Count after full = %d, want explicit 10", s.Count)
	}
	s.SetMode(ModeExam)
	if s.Count != 10 {
		t.Errorf("Count after exam = %d, want explicit 10", s.Count)
	}
}

func TestFullModeClearsBlock(t *testing.T) {
	block := 3
	s := NewSpec(ModePractice)
	s.SetBlock(&block)
	if s.Block == nil {
		t.Fatal("block not set in practice mode")
	}

	s.SetMode(ModeFull)
	if s.Block != nil {
		t.Errorf("Block after full = %v, want nil", *s.Block)
	}
	if s.EffectiveBlock() != nil {
		t.Error("EffectiveBlock in full mode must be nil")
	}

	// Block selection is a no-op while in full mode.
	s.SetBlock(&block)
	if s.Block != nil {
		t.Error("SetBlock must be ignored in full mode")
	}
}

func TestEffectiveBlockPassesThroughOtherwise(t *testing.T) {
	block := 5
	s := NewSpec(ModeExam)
	s.SetBlock(&block)
	got := s.EffectiveBlock()
	if got == nil || *got != 5 {
		t.Errorf("EffectiveBlock = %v, want 5", got)
	}
}
