package imaging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultMaxBytes bounds how much of a source is read before decoding.
const DefaultMaxBytes = 64 << 20

var (
	// ErrUnsupportedFormat is returned when source bytes are not a
	// decodable image.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrUnsupportedSource is returned for source strings the loader
	// cannot resolve.
	ErrUnsupportedSource = errors.New("unsupported image source")
)

// CrossOrigin selects how credentials are handled for remote sources.
type CrossOrigin string

const (
	// Anonymous never sends cookies or credentials with remote requests.
	Anonymous CrossOrigin = "anonymous"

	// UseCredentials sends requests through the configured client as is,
	// including its cookie jar.
	UseCredentials CrossOrigin = "use-credentials"
)

// ParseCrossOrigin validates a cross-origin mode name. The empty string
// selects Anonymous.
func ParseCrossOrigin(s string) (CrossOrigin, error) {
	switch CrossOrigin(s) {
	case "", Anonymous:
		return Anonymous, nil
	case UseCredentials:
		return UseCredentials, nil
	}
	return "", fmt.Errorf("unknown cross-origin mode %q", s)
}

// ImageCache provides thread-safe caching of decoded images keyed by the
// source string they were loaded from.
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear().
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*Decoded
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*Decoded),
	}
}

// Get returns the cached image for source, if any.
func (c *ImageCache) Get(source string) (*Decoded, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.images[source]
	return d, ok
}

// Put stores d under source.
func (c *ImageCache) Put(source string, d *Decoded) {
	c.mu.Lock()
	c.images[source] = d
	c.mu.Unlock()
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Decoded)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its source.
// If the source is not in the cache, this method does nothing.
func (c *ImageCache) Evict(source string) {
	c.mu.Lock()
	delete(c.images, source)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Decoded is a decoded image together with the format it was stored in.
type Decoded struct {
	Image image.Image

	// Format is the decoder name reported by image.Decode ("png", "jpeg", ...).
	Format string

	// MimeType is the sniffed media type of the source bytes.
	MimeType string
}

// Loader resolves source strings to decoded images.
//
// Supported sources:
//   - data URIs ("data:image/png;base64,...")
//   - http and https URLs
//   - file URLs and plain filesystem paths
//
// Remote and file sources are cached; data URIs are decoded every time
// since the source string already holds the bytes.
//
// A Loader is safe for concurrent use.
type Loader struct {
	// Client performs remote requests. Nil means http.DefaultClient.
	Client *http.Client

	// CrossOrigin controls credentials on remote requests. The zero
	// value behaves as Anonymous.
	CrossOrigin CrossOrigin

	// MaxBytes bounds the size of a source. Zero means DefaultMaxBytes.
	MaxBytes int64

	// Cache holds decoded images. Nil disables caching.
	Cache *ImageCache
}

// NewLoader returns a loader with an empty cache and anonymous
// cross-origin mode.
func NewLoader() *Loader {
	return &Loader{
		CrossOrigin: Anonymous,
		Cache:       NewImageCache(),
	}
}

// Load resolves and decodes source. It honours ctx for remote sources.
func (l *Loader) Load(ctx context.Context, source string) (*Decoded, error) {
	if source == "" {
		return nil, fmt.Errorf("empty source: %w", ErrUnsupportedSource)
	}
	if strings.HasPrefix(source, "data:") {
		return l.loadDataURI(source)
	}
	if l.Cache != nil {
		if d, ok := l.Cache.Get(source); ok {
			return d, nil
		}
	}

	var (
		d   *Decoded
		err error
	)
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		d, err = l.loadRemote(ctx, source)
	case strings.HasPrefix(source, "file://"):
		u, perr := url.Parse(source)
		if perr != nil {
			return nil, fmt.Errorf("failed to parse file URL: %w", perr)
		}
		d, err = l.loadFile(u.Path)
	case strings.Contains(source, "://"):
		return nil, fmt.Errorf("%q: %w", source, ErrUnsupportedSource)
	default:
		d, err = l.loadFile(source)
	}
	if err != nil {
		return nil, err
	}

	if l.Cache != nil {
		l.Cache.Put(source, d)
	}
	return d, nil
}

func (l *Loader) maxBytes() int64 {
	if l.MaxBytes > 0 {
		return l.MaxBytes
	}
	return DefaultMaxBytes
}

func (l *Loader) loadFile(path string) (*Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	return l.decode(f)
}

func (l *Loader) loadRemote(ctx context.Context, source string) (*Decoded, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	if l.CrossOrigin != UseCredentials {
		anon := *client
		anon.Jar = nil
		client = &anon
		req.Header.Del("Authorization")
		req.Header.Del("Cookie")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch image: %s", resp.Status)
	}
	return l.decode(resp.Body)
}

func (l *Loader) loadDataURI(source string) (*Decoded, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(source, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI: %w", ErrUnsupportedSource)
	}

	var raw []byte
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode data URI: %w", err)
		}
		raw = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode data URI: %w", err)
		}
		raw = []byte(s)
	}
	if int64(len(raw)) > l.maxBytes() {
		return nil, fmt.Errorf("image exceeds %d bytes", l.maxBytes())
	}
	return l.decode(bytes.NewReader(raw))
}

// decode sniffs the leading bytes before handing the stream to the
// registered decoders, so non-image payloads fail with ErrUnsupportedFormat.
func (l *Loader) decode(r io.Reader) (*Decoded, error) {
	limit := l.maxBytes()
	br := bufio.NewReader(io.LimitReader(r, limit+1))

	head, err := br.Peek(262)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	kind, _ := filetype.Match(head)
	if !filetype.IsImage(head) {
		return nil, fmt.Errorf("sniffed %q: %w", kind.MIME.Value, ErrUnsupportedFormat)
	}

	counter := &countingReader{r: br}
	img, format, err := image.Decode(counter)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if counter.n > limit {
		return nil, fmt.Errorf("image exceeds %d bytes", limit)
	}

	return &Decoded{
		Image:    img,
		Format:   format,
		MimeType: kind.MIME.Value,
	}, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// ImageInfo contains metadata about a decoded image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that read the image: "png", "jpeg", "gif",
	// "webp", "bmp" or "tiff".
	Format string `json:"format"`

	// MimeType is the sniffed media type of the source bytes.
	MimeType string `json:"mime_type"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`
}

// Describe returns metadata about d.
//
// Color depth is determined by the Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func Describe(d *Decoded) ImageInfo {
	bounds := d.Image.Bounds()

	hasAlpha := false
	colorDepth := "8-bit"
	switch d.Image.(type) {
	case *image.RGBA, *image.NRGBA, *image.Paletted:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	return ImageInfo{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Format:     d.Format,
		MimeType:   d.MimeType,
		ColorDepth: colorDepth,
		HasAlpha:   hasAlpha,
	}
}
