package utils

import "testing"

func TestFoldKey(t *testing.T) {
	if FoldKey("  Wuse Market ") != FoldKey("wuse market") {
		t.Fatalf("expected keys to match")
	}
}

func TestSafeFilenamePart(t *testing.T) {
	tests := map[string]string{
		"CMS Bus Stop":        "cms-bus-stop",
		"  Ikeja City Mall! ": "ikeja-city-mall",
		"***":                 "",
		"Port Harcourt/Rumu":  "port-harcourt-rumu",
	}
	for in, want := range tests {
		if got := SafeFilenamePart(in); got != want {
			t.Errorf("SafeFilenamePart(%q) = %q, want %q", in, got, want)
		}
	}
}
