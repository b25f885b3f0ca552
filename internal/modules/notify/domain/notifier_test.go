package domain

import "testing"

func TestManifestValidate(t *testing.T) {
	t.Parallel()

	valid := Manifest{Name: "beeper", Version: "1.0.0", Binary: "/usr/local/bin/beeper", Enabled: true, Events: []string{"level_up"}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}

	cases := []struct {
		name     string
		manifest Manifest
	}{
		{"missing name", Manifest{Version: "1.0.0", Binary: "/bin/x"}},
		{"missing version", Manifest{Name: "x", Binary: "/bin/x"}},
		{"missing binary", Manifest{Name: "x", Version: "1.0.0"}},
		{"unknown event", Manifest{Name: "x", Version: "1.0.0", Binary: "/bin/x", Events: []string{"bogus"}}},
		{"duplicate event", Manifest{Name: "x", Version: "1.0.0", Binary: "/bin/x", Events: []string{"level_up", "level_up"}}},
	}
	for _, tc := range cases {
		if err := tc.manifest.Validate(); err == nil {
			t.Errorf("%s: manifest accepted", tc.name)
		}
	}
}

func TestSubscribed(t *testing.T) {
	t.Parallel()

	all := Manifest{Name: "x", Version: "1", Binary: "/bin/x"}
	if !all.Subscribed("level_up") {
		t.Error("empty events list should subscribe to everything")
	}

	scoped := Manifest{Name: "x", Version: "1", Binary: "/bin/x", Events: []string{"streak_changed"}}
	if scoped.Subscribed("level_up") {
		t.Error("scoped manifest subscribed to unlisted event")
	}
	if !scoped.Subscribed("streak_changed") {
		t.Error("scoped manifest missed its own event")
	}
}
