package webjars

import (
	"net/http"
)

// headersStatic are the cache headers for library assets. A webjars URL
// carries the library version, so the content behind it never changes.
var headersStatic = map[string]string{
	// - public: Allows caching by intermediate proxies and browsers.
	// - max-age=31536000: Cache for 1 year.
	// - immutable: Browsers will not even attempt to revalidate.
	"Cache-Control": "public, max-age=31536000, immutable",

	// Ensure the browser respects the declared content type strictly.
	"X-Content-Type-Options": "nosniff",
}

// headersStaticDev disables caching when serving from a working directory.
var headersStaticDev = map[string]string{
	"Cache-Control": "no-store",

	"X-Content-Type-Options": "nosniff",
}

// setHeaders applies one or more sets of headers to the response writer.
// Headers from later maps overwrite headers from earlier maps.
func setHeaders(w http.ResponseWriter, headers ...map[string]string) {
	for _, headerMap := range headers {
		for key, value := range headerMap {
			w.Header().Set(key, value)
		}
	}
}
