package webjars

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		prefix  string
		path    string
		want    Reference
		wantErr bool
	}{
		{
			name: "simple file",
			path: "/webjars/momentjs/2.0.0/moment.js",
			want: Reference{Namespace: "momentjs", Version: "2.0.0", Path: "moment.js"},
		},
		{
			name: "nested file",
			path: "/webjars/font-awesome/4.7.0/fonts/fontawesome-webfont.woff2",
			want: Reference{Namespace: "font-awesome", Version: "4.7.0", Path: "fonts/fontawesome-webfont.woff2"},
		},
		{
			name:   "custom prefix",
			prefix: "assets/lib/",
			path:   "/assets/lib/jquery/3.7.1/jquery.min.js",
			want:   Reference{Namespace: "jquery", Version: "3.7.1", Path: "jquery.min.js"},
		},
		{name: "outside prefix", path: "/static/app.js", wantErr: true},
		{name: "prefix only", path: "/webjars/", wantErr: true},
		{name: "missing file", path: "/webjars/momentjs/2.0.0", wantErr: true},
		{name: "missing file trailing slash", path: "/webjars/momentjs/2.0.0/", wantErr: true},
		{name: "empty segment", path: "/webjars/momentjs//moment.js", wantErr: true},
		{name: "dot dot", path: "/webjars/momentjs/2.0.0/../../../etc/passwd", wantErr: true},
		{name: "single dot", path: "/webjars/momentjs/./moment.js", wantErr: true},
		{name: "prefix lookalike", path: "/webjarsx/momentjs/2.0.0/moment.js", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewResolver(tc.prefix).Resolve(tc.path)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidReference) {
					t.Fatalf("Resolve(%q) error = %v, want ErrInvalidReference", tc.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tc.path, err)
			}
			if got != tc.want {
				t.Errorf("Resolve(%q) = %+v, want %+v", tc.path, got, tc.want)
			}
			if got.Type() != Type {
				t.Errorf("Type() = %q, want %q", got.Type(), Type)
			}
		})
	}
}

func TestReferenceString(t *testing.T) {
	t.Parallel()
	ref := Reference{Namespace: "momentjs", Version: "2.0.0", Path: "min/moment.min.js"}
	if got, want := ref.String(), "/webjars/momentjs/2.0.0/min/moment.min.js"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := ref.AssetPath(), "momentjs/2.0.0/min/moment.min.js"; got != want {
		t.Errorf("AssetPath() = %q, want %q", got, want)
	}
}
