package prerouter

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/caasmo/webjarcors/core"
	"github.com/caasmo/webjarcors/cors"
)

const logMessage = "http_request"

// RemoteIP returns the normalized IP address from the request
func RemoteIP(r *http.Request) string {
	ip, _, _ := net.SplitHostPort(r.RemoteAddr)
	parsed, err := netip.ParseAddr(ip)
	if err != nil {
		return ip // fallback to original if parsing fails
	}
	return parsed.String()
}

// cutStr limits string length by adding ellipsis if needed
func cutStr(str string, max int) string {
	if len(str) > max {
		return str[:max] + "..."
	}
	return str
}

var logType = slog.String("type", "request")

// RequestLog is middleware that logs one line per HTTP request.
type RequestLog struct {
	app *core.App
}

func NewRequestLog(app *core.App) *RequestLog {
	return &RequestLog{app: app}
}

// Execute wraps the next handler with request logging
func (r *RequestLog) Execute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		cfg := r.app.Config().Log.Request
		if !cfg.Activated {
			next.ServeHTTP(w, req)
			return
		}

		rec := core.NewResponseRecorder(w)
		next.ServeHTTP(rec, req)

		limits := cfg.Limits
		attrs := make([]any, 0, 13)
		attrs = append(attrs, logType)
		attrs = append(attrs, slog.String("method", strings.ToUpper(req.Method)))
		attrs = append(attrs, slog.String("uri", cutStr(req.URL.RequestURI(), limits.URILength)))
		attrs = append(attrs, slog.Int("status", rec.Status))
		attrs = append(attrs, slog.String("duration", rec.Duration().String()))
		attrs = append(attrs, slog.Int64("bytes", rec.BytesWritten))
		attrs = append(attrs, slog.String("remote_ip", cutStr(RemoteIP(req), limits.RemoteIPLength)))
		attrs = append(attrs, slog.String("user_agent", cutStr(req.UserAgent(), limits.UserAgentLength)))
		attrs = append(attrs, slog.String("referer", cutStr(req.Referer(), limits.RefererLength)))
		attrs = append(attrs, slog.String("origin", cutStr(req.Header.Get("Origin"), limits.RefererLength)))
		attrs = append(attrs, slog.String("cors", rec.Header().Get(cors.HeaderAllowOrigin)))
		attrs = append(attrs, slog.String("proto", req.Proto))

		r.app.Logger().Info(logMessage, attrs...)
	})
}
