package disclosure

import "testing"

func TestState_DefaultCollapsed(t *testing.T) {
	s := New(KeyByPosition)
	s.Reset([]string{"a", "b"})

	for i := 0; i < 2; i++ {
		if s.IsOpen(i) {
			t.Errorf("section %d should start collapsed", i)
		}
	}
	if s.IsOpen(5) || s.IsOpen(-1) {
		t.Error("out-of-range sections should be collapsed")
	}
}

func TestState_ToggleIndependently(t *testing.T) {
	s := New(KeyByPosition)
	s.Reset([]string{"a", "b", "c"})

	if !s.Toggle(1) {
		t.Fatal("Toggle(1) should expand")
	}
	if s.IsOpen(0) || !s.IsOpen(1) || s.IsOpen(2) {
		t.Errorf("only section 1 should be open")
	}
	if s.Toggle(1) {
		t.Error("second Toggle(1) should collapse")
	}
	if s.Toggle(9) {
		t.Error("Toggle out of range should be a no-op")
	}
}

func TestState_Reset(t *testing.T) {
	tests := []struct {
		name     string
		keying   Keying
		next     []string
		wantOpen []bool
	}{
		{
			name:     "position keying clears on replace",
			keying:   KeyByPosition,
			next:     []string{"b", "a"},
			wantOpen: []bool{false, false},
		},
		{
			name:     "path keying follows the file",
			keying:   KeyByPath,
			next:     []string{"b", "a"},
			wantOpen: []bool{false, true},
		},
		{
			name:     "path keying drops removed files",
			keying:   KeyByPath,
			next:     []string{"c"},
			wantOpen: []bool{false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.keying)
			s.Reset([]string{"a", "b"})
			s.Toggle(0)

			s.Reset(tt.next)

			if s.Len() != len(tt.next) {
				t.Fatalf("Len() = %d, want %d", s.Len(), len(tt.next))
			}
			for i, want := range tt.wantOpen {
				if got := s.IsOpen(i); got != want {
					t.Errorf("IsOpen(%d) = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestState_SetAll(t *testing.T) {
	s := New(KeyByPath)
	s.Reset([]string{"a", "b"})

	s.SetAll(true)
	if !s.IsOpen(0) || !s.IsOpen(1) {
		t.Error("SetAll(true) should expand all")
	}
	s.SetAll(false)
	if s.IsOpen(0) || s.IsOpen(1) {
		t.Error("SetAll(false) should collapse all")
	}
}

func TestState_NilIsCollapsed(t *testing.T) {
	var s *State
	if s.IsOpen(0) {
		t.Error("nil state should report collapsed")
	}
}

func TestParseKeying(t *testing.T) {
	for in, want := range map[string]Keying{"": KeyByPosition, "position": KeyByPosition, "path": KeyByPath} {
		got, err := ParseKeying(in)
		if err != nil || got != want {
			t.Errorf("ParseKeying(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseKeying("identity"); err == nil {
		t.Error("ParseKeying(identity) should fail")
	}
}
