// Package catalog holds the static resource path table. It maps logical
// asset kinds and named folders to string locations and is consumed
// read-only by the loader.
package catalog

import (
	"fmt"
	"os"
	"path"

	"github.com/pelletier/go-toml/v2"

	"github.com/exhibitkit/showroom/internal/model"
)

// Catalog is the resolved path table
type Catalog struct {
	// Paths maps asset kinds to prefab-like asset locations
	Paths map[model.AssetKind]string `toml:"paths"`

	// Folder locations for free-form named lookups
	SpriteDir string `toml:"sprite_dir"`
	BundleDir string `toml:"bundle_dir"`
	VideoDir  string `toml:"video_dir"`

	// UserDataPath locates the persisted credential document
	UserDataPath string `toml:"user_data_path"`
}

// Default returns the built-in path table used when no catalog document
// is configured
func Default() *Catalog {
	return &Catalog{
		Paths: map[model.AssetKind]string{
			model.AssetVideoThumbnail: "prefabs/video_thumbnail.json",
			model.AssetShowcaseModel:  "prefabs/showcase_model.json",
			model.AssetRoom:           "prefabs/room.json",
			model.AssetPlayer:         "prefabs/player.json",
			model.AssetTourUI:         "prefabs/tour_ui.json",
		},
		SpriteDir:    "sprites",
		BundleDir:    "bundles",
		VideoDir:     "videos",
		UserDataPath: "data/users.json",
	}
}

// Load reads a catalog document from a TOML file. Entries absent from
// the document fall back to the defaults.
func Load(filePath string) (*Catalog, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return c, nil
}

// Resolve maps an asset kind to its configured location. Kinds without
// a catalog entry fail with ErrUnresolvedHandle.
func (c *Catalog) Resolve(kind model.AssetKind) (string, error) {
	loc, ok := c.Paths[kind]
	if !ok || loc == "" {
		return "", fmt.Errorf("%w: %s", model.ErrUnresolvedHandle, kind)
	}
	return loc, nil
}

// SpritePath returns the location of a named sprite
func (c *Catalog) SpritePath(name string) string {
	return path.Join(c.SpriteDir, name+".png")
}

// BundlePath returns the location of a named bundle
func (c *Catalog) BundlePath(name string) string {
	return path.Join(c.BundleDir, name+".bundle.json")
}
