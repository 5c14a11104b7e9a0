// Package imaging loads, encodes and flattens images for the editor.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Loading
//
// Loader resolves a source string to a decoded image. Sources may be data
// URIs, http(s) URLs, file URLs or plain paths. The leading bytes are sniffed
// before decoding so that non-image payloads fail with ErrUnsupportedFormat
// rather than a decoder-specific message. PNG, JPEG, GIF, WebP, BMP and TIFF
// are decodable.
//
// Remote requests default to Anonymous cross-origin mode: the loader uses a
// copy of its client without a cookie jar and strips credential headers.
//
// # Thread Safety
//
// Loader and ImageCache are safe for concurrent use. Encode and Flatten are
// stateless and can be called concurrently on different images.
//
// # Output
//
// Encode produces PNG, JPEG or BMP bytes together with their base64 form;
// Encoded.DataURI is suitable for saving or embedding. Flatten applies an
// edit state at source resolution, independent of any drawing surface.
//
// # Error Handling
//
// Functions return errors for:
//   - Sources that cannot be opened, fetched or decoded
//   - Sources larger than the loader's byte limit
//   - Unknown output formats
package imaging
