package model

// RequestID identifies an in-flight asynchronous bundle load
type RequestID string

// AssetKind identifies a loadable asset through the resource catalog
type AssetKind string

const (
	AssetVideoThumbnail AssetKind = "video_thumbnail"
	AssetShowcaseModel  AssetKind = "showcase_model"
	AssetRoom           AssetKind = "room"
	AssetPlayer         AssetKind = "player"
	AssetTourUI         AssetKind = "tour_ui"
)

// Bundle asset types extracted by consumers
const (
	BundleAssetVideo  = "video"
	BundleAssetSprite = "sprite"
)

// Asset is a locally loaded resource. Callers own the returned object;
// the loader keeps no reference to it.
type Asset struct {
	Name string
	Kind AssetKind
	Data []byte
}

// BundleAsset is a single typed entry inside a fetched bundle
type BundleAsset struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	FrameCount int64   `json:"frameCount,omitempty"`
	FrameRate  float64 `json:"frameRate,omitempty"`
	Data       []byte  `json:"data,omitempty"`
}

// Bundle is a packaged collection of assets fetched as one unit
type Bundle struct {
	Name   string        `json:"name"`
	Assets []BundleAsset `json:"assets"`
}

// AssetsOfType returns all bundle entries of the given type, in bundle order
func (b *Bundle) AssetsOfType(assetType string) []BundleAsset {
	var out []BundleAsset
	for _, a := range b.Assets {
		if a.Type == assetType {
			out = append(out, a)
		}
	}
	return out
}

// MediaItem is one selectable entry in the video library catalog
type MediaItem struct {
	// Label is the 1-indexed display label ("Video : 1", "Video : 2", ...)
	Label      string
	Name       string
	FrameCount int64
	FrameRate  float64
}

// Duration returns the playback length in seconds, derived from the
// frame count and frame rate. Zero frame rate yields zero duration.
func (m *MediaItem) Duration() float64 {
	if m.FrameRate <= 0 {
		return 0
	}
	return float64(m.FrameCount) / m.FrameRate
}
