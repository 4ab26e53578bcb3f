package theme

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		err  bool
	}{
		{"light", Light, false},
		{"DARK", Dark, false},
		{" system ", System, false},
		{"sepia", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.err {
			if !errors.Is(err, ErrUnknownMode) {
				t.Errorf("%q: expected ErrUnknownMode, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%q: expected %s, got %s (%v)", tt.in, tt.want, got, err)
		}
	}
}

func TestModeNext(t *testing.T) {
	if Light.Next() != Dark || Dark.Next() != System || System.Next() != Light {
		t.Error("unexpected cycle order")
	}
}

func TestResolverStatic(t *testing.T) {
	if NewResolver(Light, Fixed(true)).IsDark() {
		t.Error("light mode must not be dark")
	}
	if !NewResolver(Dark, Fixed(false)).IsDark() {
		t.Error("dark mode must be dark")
	}
	if !NewResolver(System, Fixed(true)).IsDark() {
		t.Error("system mode should follow the platform")
	}
	if NewResolver(System, nil).IsDark() {
		t.Error("nil platform should resolve light")
	}
}

func TestResolverNotifiesOnFlip(t *testing.T) {
	platform := NewSwitchable(false)
	r := NewResolver(System, platform)

	var got []bool
	cancel, err := r.Subscribe(func(dark bool) { got = append(got, dark) })
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	platform.Set(true)
	platform.Set(true)
	r.SetMode(Light)
	r.SetMode(Light)

	if len(got) != 2 || !got[0] || got[1] {
		t.Errorf("expected [true false], got %v", got)
	}

	cancel()
	platform.Set(false)
	r.SetMode(Dark)
	if len(got) != 2 {
		t.Errorf("expected no notifications after cancel, got %v", got)
	}
}

func TestResolverIgnoresPlatformOutsideSystem(t *testing.T) {
	platform := NewSwitchable(false)
	r := NewResolver(Light, platform)

	calls := 0
	cancel, _ := r.Subscribe(func(bool) { calls++ })
	defer cancel()

	platform.Set(true)
	if calls != 0 || r.IsDark() {
		t.Error("platform change must not affect light mode")
	}
}

func TestResolverDetachesPlatform(t *testing.T) {
	platform := NewSwitchable(false)
	r := NewResolver(System, platform)

	c1, _ := r.Subscribe(func(bool) {})
	c2, _ := r.Subscribe(func(bool) {})
	if platform.Watchers() != 1 {
		t.Fatalf("expected one platform watcher, got %d", platform.Watchers())
	}

	c1()
	c1()
	if platform.Watchers() != 1 || r.Subscribers() != 1 {
		t.Error("double cancel must only release once")
	}

	c2()
	if platform.Watchers() != 0 || r.Subscribers() != 0 {
		t.Error("expected platform watcher released with last subscriber")
	}
}

func TestDetectTerminal(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	if !DetectTerminal(env(map[string]string{"BACKDROP_SYSTEM_THEME": "dark"})) {
		t.Error("explicit dark should win")
	}
	if DetectTerminal(env(map[string]string{"BACKDROP_SYSTEM_THEME": "light", "COLORFGBG": "15;0"})) {
		t.Error("explicit light should win over COLORFGBG")
	}
	if DetectTerminal(env(map[string]string{"COLORFGBG": "0;15"})) {
		t.Error("white background should be light")
	}
	if !DetectTerminal(env(map[string]string{"COLORFGBG": "15;0"})) {
		t.Error("black background should be dark")
	}
	if !DetectTerminal(env(nil)) {
		t.Error("unknown terminal should default to dark")
	}
}
