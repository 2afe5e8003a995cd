// Package loader resolves and loads named resources: synchronous lookups
// against a local asset root, and asynchronous bundle fetches over a
// Transport whose single terminal event is published on the bus.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/exhibitkit/showroom/internal/bus"
	"github.com/exhibitkit/showroom/internal/catalog"
	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/runloop"
)

// Service is the application's resource loader. It is constructed once
// by the factory and passed down to every consumer; there is no global
// instance.
type Service struct {
	catalog   *catalog.Catalog
	transport Transport
	loop      *runloop.Loop
	bus       *bus.Bus
	assetRoot string
	logger    *slog.Logger
}

// New creates the loader
func New(
	cat *catalog.Catalog,
	transport Transport,
	loop *runloop.Loop,
	b *bus.Bus,
	assetRoot string,
	logger *slog.Logger,
) *Service {
	return &Service{
		catalog:   cat,
		transport: transport,
		loop:      loop,
		bus:       b,
		assetRoot: assetRoot,
		logger:    logger.With(slog.String("component", "loader")),
	}
}

// Resolve maps an asset kind through the catalog to a concrete location
func (s *Service) Resolve(kind model.AssetKind) (string, error) {
	return s.catalog.Resolve(kind)
}

// LoadAsset synchronously loads a prefab-like asset from the local root.
// A missing file fails with ErrResourceNotFound; the caller owns the
// returned asset.
func (s *Service) LoadAsset(kind model.AssetKind) (*model.Asset, error) {
	loc, err := s.Resolve(kind)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.assetRoot, filepath.FromSlash(loc)))
	if err != nil {
		s.logger.Error("asset load failed",
			slog.String("kind", string(kind)),
			slog.String("location", loc),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %s", model.ErrResourceNotFound, loc)
	}

	name := strings.TrimSuffix(filepath.Base(loc), filepath.Ext(loc))
	return &model.Asset{Name: name, Kind: kind, Data: data}, nil
}

// LoadBundle starts an asynchronous bundle fetch and returns the request
// identifier its terminal event will carry. Exactly one of bundle_loaded
// or bundle_load_failed is published per request, on the run loop. A
// failure is terminal; retries are the caller's decision. There is no
// cancellation: once started, the transfer always delivers its event,
// so handlers must tolerate requests they no longer care about.
func (s *Service) LoadBundle(name string) model.RequestID {
	id := model.RequestID(uuid.NewString())
	location := s.catalog.BundlePath(name)

	s.logger.Info("bundle load started",
		slog.String("bundle", name),
		slog.String("request_id", string(id)))

	go func() {
		bundle, err := s.transport.Fetch(context.Background(), location)
		s.loop.Do(func() {
			if err != nil {
				s.logger.Error("bundle load failed",
					slog.String("bundle", name),
					slog.Any("error", err))
				s.bus.Publish(model.EventBundleLoadFailed, model.BundleLoadFailedPayload{
					RequestID: id,
					Name:      name,
					Reason:    err.Error(),
				})
				return
			}
			s.logger.Info("bundle loaded",
				slog.String("bundle", name),
				slog.Int("assets", len(bundle.Assets)))
			s.bus.Publish(model.EventBundleLoaded, model.BundleLoadedPayload{
				RequestID: id,
				Bundle:    bundle,
			})
		})
	}()

	return id
}

// LoadSprite synchronously looks up a named sprite. Absence is a valid
// branch, reported through the bool rather than an error.
func (s *Service) LoadSprite(name string) ([]byte, bool) {
	p := filepath.Join(s.assetRoot, filepath.FromSlash(s.catalog.SpritePath(name)))
	data, err := os.ReadFile(p)
	if err != nil {
		s.logger.Warn("sprite not found", slog.String("sprite", name))
		return nil, false
	}
	return data, true
}

// LoadTextFile synchronously loads the first text file in the asset root
// whose name ends with the given suffix. Absence is a valid branch.
func (s *Service) LoadTextFile(suffix string) (string, bool) {
	var found string
	_ = filepath.WalkDir(s.assetRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || found != "" {
			return nil
		}
		if strings.HasSuffix(d.Name(), suffix) {
			found = path
		}
		return nil
	})
	if found == "" {
		return "", false
	}

	data, err := os.ReadFile(found)
	if err != nil {
		return "", false
	}
	return string(data), true
}
