package webjars

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/caasmo/webjarcors/cache"
	"github.com/caasmo/webjarcors/container"
	"github.com/caasmo/webjarcors/resource"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/singleflight"
)

const (
	// Name is the registry name of the serving handler.
	Name = "webjars"

	// Priority puts serving after handlers that only decorate the response
	// with headers, since headers are flushed with the first body write.
	Priority = 2000
)

var ErrAssetNotFound = errors.New("webjars asset not found")

// Asset is a loaded library file.
type Asset struct {
	Data        []byte
	ContentType string
	ETag        string
}

// Option configures a Handler.
type Option func(*Handler)

// WithCache keeps loaded assets in c, keyed by asset path.
func WithCache(c cache.Cache[string, *Asset]) Option {
	return func(h *Handler) {
		h.cache = c
	}
}

// WithLogger sets the handler logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

// WithDevHeaders replaces the immutable cache headers with no-store.
func WithDevHeaders() Option {
	return func(h *Handler) {
		h.headers = headersStaticDev
	}
}

// Handler serves library files from an fs.FS laid out as
// <namespace>/<version>/<path>.
type Handler struct {
	resource.Prioritized
	container container.Container
	assets    fs.FS
	cache     cache.Cache[string, *Asset]
	headers   map[string]string
	loads     singleflight.Group
	logger    *slog.Logger
}

var (
	_ resource.Handler       = (*Handler)(nil)
	_ resource.Initializable = (*Handler)(nil)
)

// NewHandler creates the serving handler.
func NewHandler(c container.Container, assets fs.FS, opts ...Option) *Handler {
	if c == nil {
		panic("webjars: container cannot be nil")
	}
	if assets == nil {
		panic("webjars: assets cannot be nil")
	}
	h := &Handler{
		container: c,
		assets:    assets,
		headers:   headersStatic,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Name() string { return Name }

func (h *Handler) SupportedTypes() []resource.Type {
	return []resource.Type{Type}
}

func (h *Handler) Initialize() error {
	h.SetPriority(Priority)
	return nil
}

// Handle writes the asset to the current response and continues the chain.
func (h *Handler) Handle(ctx context.Context, r resource.Reference, chain resource.Chain) error {
	ref, ok := r.(Reference)
	if !ok {
		return fmt.Errorf("%w: unexpected reference %T", ErrInvalidReference, r)
	}

	asset, err := h.Load(ref)
	if err != nil {
		return err
	}

	switch resp := h.container.Response(ctx).(type) {
	case *container.HTTPResponse:
		h.serveHTTP(resp.Writer(), h.container.Request(ctx), ref, asset)
	case io.Writer:
		if _, err := resp.Write(asset.Data); err != nil {
			return fmt.Errorf("webjars: writing %s: %w", ref.AssetPath(), err)
		}
	}

	return chain.Next(ctx, ref)
}

func (h *Handler) serveHTTP(w http.ResponseWriter, req *http.Request, ref Reference, asset *Asset) {
	setHeaders(w, h.headers)
	w.Header().Set("Content-Type", asset.ContentType)
	w.Header().Set("ETag", asset.ETag)

	if req == nil {
		_, _ = w.Write(asset.Data)
		return
	}
	// ServeContent answers HEAD, ranges and If-None-Match against the ETag.
	http.ServeContent(w, req, path.Base(ref.Path), time.Time{}, bytes.NewReader(asset.Data))
}

// Load returns the asset for ref, from the cache when possible. Concurrent
// misses for the same asset read the file once.
func (h *Handler) Load(ref Reference) (*Asset, error) {
	key := ref.AssetPath()
	if !fs.ValidPath(key) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReference, key)
	}

	if h.cache != nil {
		if a, ok := h.cache.Get(key); ok {
			return a, nil
		}
	}

	v, err, _ := h.loads.Do(key, func() (any, error) {
		a, err := h.read(key)
		if err != nil {
			return nil, err
		}
		if h.cache != nil {
			h.cache.Set(key, a, int64(len(a.Data)))
		}
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Asset), nil
}

func (h *Handler) read(key string) (*Asset, error) {
	fi, err := fs.Stat(h.assets, key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, key)
		}
		return nil, fmt.Errorf("webjars: stat %s: %w", key, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrAssetNotFound, key)
	}

	data, err := fs.ReadFile(h.assets, key)
	if err != nil {
		return nil, fmt.Errorf("webjars: read %s: %w", key, err)
	}

	sum := sha256.Sum256(data)
	h.logger.Debug("webjars asset loaded", "path", key, "size", len(data))

	return &Asset{
		Data:        data,
		ContentType: contentType(key, data),
		ETag:        `"` + hex.EncodeToString(sum[:16]) + `"`,
	}, nil
}

// contentType prefers the extension and falls back to sniffing.
func contentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return mimetype.Detect(data).String()
}
