package studytimer

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{61, "00:01:01"},
		{3600, "01:00:00"},
		{86399, "23:59:59"},
		{86400, "24:00:00"},
		{360000, "100:00:00"},
		{-5, "00:00:00"},
	}
	for _, tt := range tests {
		if got := Format(tt.seconds); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTick(t *testing.T) {
	var timer Timer
	if timer.Seconds() != 0 {
		t.Fatalf("new timer = %d, want 0", timer.Seconds())
	}
	for i := 0; i < 3661; i++ {
		timer.Tick()
	}
	if timer.Seconds() != 3661 {
		t.Errorf("seconds = %d, want 3661", timer.Seconds())
	}
	if timer.String() != "01:01:01" {
		t.Errorf("String() = %q", timer.String())
	}
}
