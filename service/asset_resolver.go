package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"deckforge/logger"
	"deckforge/metrics"
	"deckforge/models"
)

// AssetResolverConfig tunes asset resolution
type AssetResolverConfig struct {
	// Concurrency bounds the number of assets resolved at once
	Concurrency int
	// WhiteThreshold is the average channel value above which crop pixels become transparent
	WhiteThreshold uint8
	MaxDimension   int
	JPEGQuality    int
	// BackgroundBase is the URL or drive folder holding stock/ and themes/.
	// Empty means the names are looked up in the fetcher's asset directory.
	BackgroundBase string
}

// AssetResolver materializes the images a plan needs. Failures are recorded
// per asset and never abort the deck; only cancellation does.
type AssetResolver struct {
	fetcher       Fetcher
	illustrations *IllustrationService
	cache         *ImageCache
	cfg           AssetResolverConfig
	log           *logger.Logger
}

// NewAssetResolver creates a new AssetResolver instance
func NewAssetResolver(fetcher Fetcher, illustrations *IllustrationService, cache *ImageCache, cfg AssetResolverConfig, log *logger.Logger) *AssetResolver {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.JPEGQuality <= 0 {
		cfg.JPEGQuality = 85
	}
	return &AssetResolver{fetcher: fetcher, illustrations: illustrations, cache: cache, cfg: cfg, log: log}
}

// Resolve resolves every request of deck concurrently
func (r *AssetResolver) Resolve(ctx context.Context, deck *models.Deck, reqs []models.AssetRequest) (models.Assets, []models.AssetStatus, error) {
	payloads := make([]*models.ImagePayload, len(reqs))
	statuses := make([]models.AssetStatus, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			payload, err := r.resolveOne(gctx, deck, req)
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			statuses[i] = r.status(req, err)
			if err == nil {
				payload.Key = req.Key
				payloads[i] = payload
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("asset resolution aborted: %w", err)
	}

	assets := make(models.Assets, len(reqs))
	for _, p := range payloads {
		if p != nil {
			assets[p.Key] = p
		}
	}
	return assets, statuses, nil
}

func (r *AssetResolver) status(req models.AssetRequest, err error) models.AssetStatus {
	st := models.AssetStatus{Key: req.Key, Kind: req.Kind, SlideID: req.SlideID, State: models.AssetOK}
	if err != nil {
		st.Error = err.Error()
		if errors.Is(err, models.ErrMissingSourceImage) {
			st.State = models.AssetMissingSourceImage
		} else {
			st.State = models.AssetImageUnavailable
		}
		// a theme without stock art is normal, everything else is worth a warning
		if req.Kind == models.AssetBackground {
			r.log.With("asset", req.Key).Debugf("background unavailable: %v", err)
		} else {
			r.log.WithFields(map[string]any{"asset": req.Key, "slide": req.SlideID}).Warnf("⚠️  asset skipped: %v", err)
		}
	}
	metrics.ObserveAsset(string(req.Kind), string(st.State))
	return st
}

func (r *AssetResolver) resolveOne(ctx context.Context, deck *models.Deck, req models.AssetRequest) (*models.ImagePayload, error) {
	var (
		payload *models.ImagePayload
		err     error
	)
	switch req.Kind {
	case models.AssetCrop:
		payload, err = r.crop(deck, req)
	case models.AssetGenerated:
		payload, err = r.generated(ctx, req)
	case models.AssetSlideImage:
		if !IsDeckReference(req.Reference) {
			err = fmt.Errorf("%w: slide images must be data URIs or http(s)/drive references", models.ErrImageUnavailable)
			break
		}
		payload, err = r.load(ctx, req.Reference)
	case models.AssetBackground:
		payload, err = r.background(ctx, req)
	default:
		err = fmt.Errorf("unknown asset kind %q", req.Kind)
	}
	if err == nil {
		return payload, nil
	}

	if !errors.Is(err, models.ErrMissingSourceImage) && !errors.Is(err, models.ErrImageUnavailable) {
		err = fmt.Errorf("%w: %w", models.ErrImageUnavailable, err)
	}
	return nil, &models.AssetError{Key: req.Key, SlideID: req.SlideID, Source: req.Kind, Err: err}
}

func (r *AssetResolver) crop(deck *models.Deck, req models.AssetRequest) (*models.ImagePayload, error) {
	if deck.OriginalImage == "" {
		return nil, models.ErrMissingSourceImage
	}
	if req.Element == nil {
		return nil, fmt.Errorf("crop request %s has no element", req.Key)
	}
	source, _, err := DecodeDataURI(deck.OriginalImage)
	if err != nil {
		return nil, err
	}
	return CropRegion(source, *req.Element, r.cfg.WhiteThreshold)
}

func (r *AssetResolver) generated(ctx context.Context, req models.AssetRequest) (*models.ImagePayload, error) {
	if r.illustrations == nil {
		return nil, fmt.Errorf("no illustration provider configured")
	}
	return r.load(ctx, r.illustrations.Reference(r.illustrations.ElementRequest(req.Reference)))
}

func (r *AssetResolver) background(ctx context.Context, req models.AssetRequest) (*models.ImagePayload, error) {
	var errs []error
	for _, name := range req.Candidates {
		payload, err := r.load(ctx, JoinRef(r.cfg.BackgroundBase, name))
		if err == nil {
			return payload, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("no background candidates")
	}
	return nil, errors.Join(errs...)
}

// load fetches a reference and optimizes it, going through the disk cache
// for remote references.
func (r *AssetResolver) load(ctx context.Context, ref string) (*models.ImagePayload, error) {
	remote := IsRemote(ref)
	if remote {
		if data, ok := r.cache.Read(ref); ok {
			if payload, err := OptimizeImage(data, 0, r.cfg.JPEGQuality); err == nil {
				metrics.AssetCacheHitsTotal.Inc()
				payload.Reference = ref
				return payload, nil
			}
		}
	}

	data, err := r.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	payload, err := OptimizeImage(data, r.cfg.MaxDimension, r.cfg.JPEGQuality)
	if err != nil {
		return nil, err
	}
	payload.Reference = ref

	if remote {
		if err := r.cache.Save(ref, payload.Data); err != nil {
			r.log.Warnf("failed to cache %s: %v", ref, err)
		}
	}
	return payload, nil
}
