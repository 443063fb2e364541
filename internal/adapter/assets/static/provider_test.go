package staticassets

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const index = `# category file [r g b a]
default images/none.bmp
miner images/miner1.bmp 255 255 255 0
miner images/miner2.bmp
grass images/grass.bmp
`

func TestProvider_FramesAndFallback(t *testing.T) {
	p, err := NewProviderFromIndex(t.TempDir(), strings.NewReader(index))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := p.Frames("miner"); !reflect.DeepEqual(got, []string{"images/miner1.bmp", "images/miner2.bmp"}) {
		t.Fatalf("unexpected miner frames: %v", got)
	}
	if got := p.Frames("quake"); !reflect.DeepEqual(got, []string{"images/none.bmp"}) {
		t.Fatalf("expected default fallback, got %v", got)
	}
	key, ok := p.ColorKey("images/miner1.bmp")
	if !ok || key != (color.RGBA{R: 255, G: 255, B: 255}) {
		t.Fatalf("unexpected colour key %v %v", key, ok)
	}
	if _, ok := p.ColorKey("images/grass.bmp"); ok {
		t.Fatalf("grass should have no colour key")
	}
}

func TestProvider_FramesReturnsCopy(t *testing.T) {
	p, err := NewProviderFromIndex(t.TempDir(), strings.NewReader(index))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	frames := p.Frames("grass")
	frames[0] = "mutated"
	if p.Frames("grass")[0] != "images/grass.bmp" {
		t.Fatalf("provider frames were mutated through the returned slice")
	}
}

func TestProvider_RejectsMalformedIndex(t *testing.T) {
	for _, in := range []string{"miner\n", "miner a.bmp 1 2\n", "miner a.bmp 1 2 3 999\n"} {
		if _, err := NewProviderFromIndex(t.TempDir(), strings.NewReader(in)); !errors.Is(err, ErrMalformedIndex) {
			t.Fatalf("expected malformed index for %q, got %v", in, err)
		}
	}
}

func TestProvider_LoadsIndexAndFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, IndexFile), []byte("ore ore.bmp\n"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "ore.bmp"), []byte("BM"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	p, err := NewProvider(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	b, err := p.File(context.Background(), p.Frames("ore")[0])
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if string(b) != "BM" {
		t.Fatalf("unexpected file content: %q", string(b))
	}
}

func TestProvider_FileRejectsPathTraversal(t *testing.T) {
	root := t.TempDir()
	parent := filepath.Dir(root)
	outsidePath := filepath.Join(parent, "outside.txt")
	if err := os.WriteFile(outsidePath, []byte("secret"), 0o644); err != nil {
		t.Fatalf("write outside: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(outsidePath) })

	p := &Provider{Root: root}
	if _, err := p.File(context.Background(), "../outside.txt"); !errors.Is(err, ErrInvalidAssetPath) {
		t.Fatalf("expected path traversal to be rejected, got %v", err)
	}
}
