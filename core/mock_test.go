package core

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/caasmo/webjarcors/config"
	"github.com/caasmo/webjarcors/container"
	"github.com/caasmo/webjarcors/cors"
	"github.com/caasmo/webjarcors/resource"
	"github.com/caasmo/webjarcors/topk"
	"github.com/caasmo/webjarcors/webjars"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"
)

const momentBody = "//! moment.js\n"

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"momentjs/2.0.0/moment.js": {Data: []byte(momentBody)},
	}
}

// newTestInjector provides the dependencies the built-in handler factories
// need.
func newTestInjector() do.Injector {
	i := do.New()
	do.ProvideValue[container.Container](i, container.New())
	do.ProvideValue[fs.FS](i, testAssets())
	return i
}

func corsFactory(i do.Injector) (resource.Handler, error) {
	return cors.New(do.MustInvoke[container.Container](i)), nil
}

func webjarsFactory(i do.Injector) (resource.Handler, error) {
	c, err := do.Invoke[container.Container](i)
	if err != nil {
		return nil, err
	}
	assets, err := do.Invoke[fs.FS](i)
	if err != nil {
		return nil, err
	}
	return webjars.NewHandler(c, assets), nil
}

type testAppOpts struct {
	withCors bool
	tracker  *topk.Tracker
}

func newTestApp(t *testing.T, o testAppOpts) *App {
	t.Helper()

	d, err := resource.NewDispatcher(resource.WithMetricsRegisterer(prometheus.NewRegistry()))
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	reg := NewRegistry(newTestInjector())
	if o.withCors {
		if err := reg.Register(cors.Name, corsFactory); err != nil {
			t.Fatal(err)
		}
	}
	if err := reg.Register(webjars.Name, webjarsFactory); err != nil {
		t.Fatal(err)
	}
	if err := reg.Build(d); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	opts := []Option{
		WithConfigProvider(config.NewProvider(config.NewDefaultConfig())),
		WithDispatcher(d),
	}
	if o.tracker != nil {
		opts = append(opts, WithTracker(o.tracker))
	}
	app, err := NewApp(opts...)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	return app
}
