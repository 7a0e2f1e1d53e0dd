package assets

import (
	"testing"

	"github.com/phanxgames/showcase"
)

func TestEmbeddedManifestLoads(t *testing.T) {
	a, err := showcase.LoadAssets(FS, ManifestPath)
	if err != nil {
		t.Fatalf("LoadAssets: %v", err)
	}
	want := []string{"cat1", "cat2", "cat3", "cat4", "fire1", "fire2", "fire3", "fire4", "fire5", "fire6"}
	got := a.Aliases()
	if len(got) != len(want) {
		t.Fatalf("Aliases = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Aliases[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
