package showcase

import (
	"fmt"
	_ "image/jpeg" // registers the JPEG decoder for manifest images
	_ "image/png"  // registers the PNG decoder for manifest images
	"io/fs"
	"path"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"gopkg.in/yaml.v3"
)

// Manifest lists the images to preload, keyed by alias.
//
// Example:
//
//	images:
//	  - alias: cat1
//	    path: images/cat1.png
type Manifest struct {
	Images []ImageAsset `yaml:"images"`
}

// ImageAsset maps an alias to a file path relative to the manifest.
type ImageAsset struct {
	Alias string `yaml:"alias"`
	Path  string `yaml:"path"`
}

// ParseManifest decodes and validates manifest YAML. Aliases must be
// non-empty and unique, and every entry needs a path.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("showcase: parse manifest: %w", err)
	}
	seen := make(map[string]bool, len(m.Images))
	for i, img := range m.Images {
		if img.Alias == "" {
			return nil, fmt.Errorf("showcase: manifest image %d: empty alias", i)
		}
		if img.Path == "" {
			return nil, fmt.Errorf("showcase: manifest image %q: empty path", img.Alias)
		}
		if seen[img.Alias] {
			return nil, fmt.Errorf("showcase: manifest image %q: duplicate alias", img.Alias)
		}
		seen[img.Alias] = true
	}
	return &m, nil
}

// Assets holds decoded images by alias.
type Assets struct {
	images map[string]*ebiten.Image
}

// NewAssets returns an empty asset set.
func NewAssets() *Assets {
	return &Assets{images: make(map[string]*ebiten.Image)}
}

// LoadAssets reads the manifest at manifestPath from fsys and decodes every
// image it lists. Image paths are resolved relative to the manifest. The
// first failure aborts loading.
func LoadAssets(fsys fs.FS, manifestPath string) (*Assets, error) {
	data, err := fs.ReadFile(fsys, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("showcase: read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}

	a := NewAssets()
	base := path.Dir(manifestPath)
	for _, entry := range m.Images {
		img, err := loadImage(fsys, path.Join(base, entry.Path))
		if err != nil {
			return nil, fmt.Errorf("showcase: load image %q: %w", entry.Alias, err)
		}
		a.Add(entry.Alias, img)
	}
	return a, nil
}

func loadImage(fsys fs.FS, name string) (*ebiten.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := ebitenutil.NewImageFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// Add registers img under alias, replacing any previous image.
func (a *Assets) Add(alias string, img *ebiten.Image) {
	a.images[alias] = img
}

// Image returns the image registered under alias.
func (a *Assets) Image(alias string) (*ebiten.Image, bool) {
	img, ok := a.images[alias]
	return img, ok
}

// Images resolves several aliases at once, failing on the first unknown one.
func (a *Assets) Images(aliases ...string) ([]*ebiten.Image, error) {
	out := make([]*ebiten.Image, len(aliases))
	for i, alias := range aliases {
		img, ok := a.images[alias]
		if !ok {
			return nil, fmt.Errorf("showcase: unknown image alias %q", alias)
		}
		out[i] = img
	}
	return out, nil
}

// Aliases returns every registered alias in sorted order.
func (a *Assets) Aliases() []string {
	out := make([]string, 0, len(a.images))
	for alias := range a.images {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}
