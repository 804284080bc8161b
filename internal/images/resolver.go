// Package images resolves breed names to locally cached photos.
//
// A breed image is looked up on Wikipedia once, downloaded into the cache
// directory and served from disk afterwards:
//
//	<cacheDir>/<key>_1.jpg        original image
//	<cacheDir>/<key>_1_thumb.jpg  thumbnail, created on demand
//
// where key is the lowercased breed name with every character other than an
// ASCII letter or digit replaced by an underscore.
package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/mrlokans/dogspotter/internal/metrics"
)

const (
	imageSuffix    = "_1.jpg"
	fallbackSuffix = " dog"
	downloadLimit  = 20 << 20

	// Upper bound for one shared resolution, lookups and downloads included
	resolveTimeout = 2 * time.Minute
)

// Lookup finds the remote image URL for an article title.
type Lookup interface {
	LookupImage(ctx context.Context, title string) (string, error)
}

// Recorder receives one outcome per resolution.
type Recorder interface {
	RecordResolution(outcome string)
}

// Options configures the resolver's download side.
type Options struct {
	HTTPClient *http.Client
	UserAgent  string
	Recorder   Recorder
}

// Resolver maps breed names to cached image files.
type Resolver struct {
	cacheDir   string
	lookup     Lookup
	httpClient *http.Client
	userAgent  string
	recorder   Recorder
	group      singleflight.Group
	log        *logrus.Entry
}

// NewResolver creates a resolver caching into cacheDir. The directory is
// created on first download.
func NewResolver(cacheDir string, lookup Lookup, opts Options) *Resolver {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Resolver{
		cacheDir:   cacheDir,
		lookup:     lookup,
		httpClient: httpClient,
		userAgent:  opts.UserAgent,
		recorder:   opts.Recorder,
		log:        logrus.WithField("component", "images"),
	}
}

// SanitizeKey turns a breed name into its cache key.
func SanitizeKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// CachePath returns where the image for the breed name is stored.
func (r *Resolver) CachePath(name string) string {
	return filepath.Join(r.cacheDir, SanitizeKey(name)+imageSuffix)
}

// CacheDir returns the cache directory path.
func (r *Resolver) CacheDir() string {
	return r.cacheDir
}

// Cached reports whether an image for the breed name is already on disk.
func (r *Resolver) Cached(name string) bool {
	_, err := os.Stat(r.CachePath(name))
	return err == nil
}

// Resolve returns the local path of the breed's image, or an empty list when
// no image could be found. A cached file is returned without any network
// access. Otherwise the exact name is looked up, then "<name> dog" once when
// the name does not already mention a dog. Lookup and download failures are
// logged and reported as an empty result.
//
// Concurrent calls for the same key share a single resolution. The shared
// work is detached from the cancellation of whichever caller started it; a
// caller whose context ends stops waiting and gets an empty result.
func (r *Resolver) Resolve(ctx context.Context, name string) []string {
	if strings.TrimSpace(name) == "" {
		return []string{}
	}

	key := SanitizeKey(name)
	ch := r.group.DoChan(key, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), resolveTimeout)
		defer cancel()
		return r.resolve(shared, name), nil
	})

	select {
	case res := <-ch:
		return append([]string{}, res.Val.([]string)...)
	case <-ctx.Done():
		return []string{}
	}
}

func (r *Resolver) resolve(ctx context.Context, name string) []string {
	path := r.CachePath(name)

	if _, err := os.Stat(path); err == nil {
		r.record(metrics.ResolutionCacheHit)
		return []string{path}
	}

	if r.fetch(ctx, name, path) {
		r.record(metrics.ResolutionDownloaded)
		return []string{path}
	}

	if !strings.Contains(strings.ToLower(name), "dog") {
		if r.fetch(ctx, name+fallbackSuffix, path) {
			r.record(metrics.ResolutionFallbackDownloaded)
			return []string{path}
		}
	}

	r.record(metrics.ResolutionNotFound)
	r.log.WithField("breed", name).Debug("No image found")
	return []string{}
}

// fetch looks up title and downloads the image to path. It reports whether a
// file now exists at path.
func (r *Resolver) fetch(ctx context.Context, title, path string) bool {
	source, err := r.lookup.LookupImage(ctx, title)
	if err != nil {
		r.log.WithError(err).WithField("title", title).Debug("Image lookup returned nothing")
		return false
	}
	if source == "" {
		return false
	}

	if err := r.download(ctx, source, path); err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{
			"title":  title,
			"source": source,
		}).Warn("Image download failed")
		return false
	}
	return true
}

// download writes the body of url to path through a temp file and rename.
func (r *Resolver) download(ctx context.Context, url, path string) error {
	if err := os.MkdirAll(r.cacheDir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp(r.cacheDir, filepath.Base(path)+".tmp_")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	n, err := io.Copy(tmpFile, io.LimitReader(resp.Body, downloadLimit+1))
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("empty image body")
	}
	if n > downloadLimit {
		return fmt.Errorf("image exceeds %d bytes", downloadLimit)
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

func (r *Resolver) record(outcome string) {
	if r.recorder != nil {
		r.recorder.RecordResolution(outcome)
	}
}
