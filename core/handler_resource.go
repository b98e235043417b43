package core

import (
	"context"
	"errors"
	"net/http"

	"github.com/caasmo/webjarcors/container"
	"github.com/caasmo/webjarcors/resource"
	"github.com/caasmo/webjarcors/webjars"
)

// ResourceHandler resolves the request path into a webjars reference and
// dispatches it through the handler chain.
// Endpoint: GET, HEAD <prefix>/*filepath
func (a *App) ResourceHandler(w http.ResponseWriter, r *http.Request) {
	ref, err := a.resolver.Resolve(r.URL.Path)
	if err != nil {
		WriteJsonError(w, errorInvalidReference)
		return
	}

	if a.tracker != nil {
		a.tracker.Record(ref.Namespace)
	}

	rec := NewResponseRecorder(w)
	ctx := container.WithHTTP(r.Context(), rec, r)
	err = a.dispatcher.Dispatch(ctx, ref)
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		a.logger.Debug("resource request aborted", "reference", ref.String(), "error", err)
		return
	case errors.Is(err, resource.ErrNoHandler), errors.Is(err, webjars.ErrAssetNotFound):
		if !rec.WroteHeader {
			WriteJsonError(rec, errorNotFound)
		}
	default:
		a.logger.Error("resource chain failed", "reference", ref.String(), "error", err)
		if !rec.WroteHeader {
			WriteJsonError(rec, errorInternal)
		}
	}
}
