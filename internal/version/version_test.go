// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"go.astrophena.name/devserve/internal/testutil"
)

func TestLoadInfo(t *testing.T) {
	t.Parallel()

	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeef"},
			{Key: "vcs.time", Value: "2024-06-01T12:00:00Z"},
		},
	}

	got := loadInfo(func() (*debug.BuildInfo, bool) { return bi, true })
	testutil.AssertEqual(t, got, Info{
		Version: "devel",
		Commit:  "deadbeef",
		BuiltAt: "2024-06-01T12:00:00Z",
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	})
}

func TestLoadInfoNoBuildInfo(t *testing.T) {
	t.Parallel()

	got := loadInfo(func() (*debug.BuildInfo, bool) { return nil, false })
	testutil.AssertEqual(t, got, Info{
		Go:   runtime.Version(),
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	})
}

func TestInfoString(t *testing.T) {
	t.Parallel()

	i := Info{
		Version: "devel",
		Commit:  "deadbeef",
		BuiltAt: "2024-06-01T12:00:00Z",
		Go:      "go1.22.0",
		OS:      "linux",
		Arch:    "amd64",
	}
	s := i.String()
	for _, want := range []string{"devel", "go1.22.0", "linux/amd64", "commit deadbeef", "built at 2024-06-01T12:00:00Z"} {
		if !strings.Contains(s, want) {
			t.Errorf("Info.String() = %q, must contain %q", s, want)
		}
	}
}
