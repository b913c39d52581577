package envflag

import (
	"flag"
	"testing"
)

func TestValue(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		env  map[string]string
		args []string
		want string
	}{
		"default": {
			want: "localhost:3000",
		},
		"env override": {
			env:  map[string]string{"TEST_ADDR": ":8000"},
			want: ":8000",
		},
		"flag wins over env": {
			env:  map[string]string{"TEST_ADDR": ":8000"},
			args: []string{"-addr", ":9000"},
			want: ":9000",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			getenv := func(name string) string { return tc.env[name] }

			addr := Value("addr", "TEST_ADDR", "localhost:3000", "Listen on `host:port`.", fs, getenv)

			if err := fs.Parse(tc.args); err != nil {
				t.Fatal(err)
			}
			if *addr != tc.want {
				t.Errorf("addr = %q, want %q", *addr, tc.want)
			}
		})
	}
}

func TestValueParseError(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	getenv := func(string) string { return "not-a-bool" }

	// Invalid environment value falls back to the default.
	debug := Value("debug", "TEST_DEBUG", false, "Enable debug endpoints.", fs, getenv)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if *debug {
		t.Error("invalid env value must not override the default")
	}
}
