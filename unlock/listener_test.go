package unlock

import (
	"strings"
	"testing"
)

func TestHandleReturnGrants(t *testing.T) {
	flags := NewFlags(NewMemoryKV())
	out := HandleReturn("https://scopedlabs.example/tools/?unlocked=1&category=video-storage&session_id=cs_123", flags)

	if !out.Granted || out.Category != "video-storage" {
		t.Fatalf("outcome = %+v", out)
	}
	if !flags.HasCategory("video-storage") {
		t.Error("flag not written")
	}
	if out.Notice == "" {
		t.Error("expected a confirmation notice")
	}
	if strings.Contains(out.CleanURL, "unlocked=") || strings.Contains(out.CleanURL, "category=") {
		t.Errorf("markers not stripped: %q", out.CleanURL)
	}
}

func TestHandleReturnInvalidSlugs(t *testing.T) {
	for _, cat := range []string{"", "a", "Power", "video storage", strings.Repeat("x", 41)} {
		flags := NewFlags(NewMemoryKV())
		out := HandleReturn("https://scopedlabs.example/tools/?unlocked=1&category="+cat, flags)
		if out.Granted {
			t.Errorf("category %q: granted, want ignored", cat)
		}
		if flags.HasCategory(cat) {
			t.Errorf("category %q: flag written", cat)
		}
	}
}

func TestHandleReturnAcceptsValidSlugBoundaries(t *testing.T) {
	for _, cat := range []string{"ab", strings.Repeat("x", 40), "video-storage"} {
		flags := NewFlags(NewMemoryKV())
		out := HandleReturn("https://scopedlabs.example/tools/?unlocked=1&category="+cat, flags)
		if !out.Granted {
			t.Errorf("category %q: not granted", cat)
		}
	}
}

func TestHandleReturnNoMarker(t *testing.T) {
	flags := NewFlags(NewMemoryKV())
	out := HandleReturn("https://scopedlabs.example/tools/?category=power", flags)
	if out.Granted || out.CleanURL != "" {
		t.Errorf("outcome = %+v, want no-op", out)
	}
}

func TestHandleReturnDevUnlockLoopbackOnly(t *testing.T) {
	flags := NewFlags(NewMemoryKV())
	out := HandleReturn("http://localhost:1313/tools/?devunlock=1&category=power", flags)
	if !out.Granted {
		t.Error("dev unlock ignored on loopback host")
	}

	flags = NewFlags(NewMemoryKV())
	out = HandleReturn("https://scopedlabs.example/tools/?devunlock=1&category=power", flags)
	if out.Granted || flags.HasCategory("power") {
		t.Error("dev unlock honored on a public host")
	}
}

func TestFlagsGlobalOverride(t *testing.T) {
	flags := NewFlags(NewMemoryKV())
	if flags.HasAccess("power") {
		t.Error("access without any flag")
	}
	flags.GrantAll()
	if !flags.HasAccess("power") || !flags.HasAccess("network") {
		t.Error("global flag should unlock every category")
	}
	if !flags.HasAccess("") {
		t.Error("global flag should grant even without a detected category")
	}
}
