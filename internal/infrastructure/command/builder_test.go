package command

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/blackline/internal/domain"
)

func baseConfig() domain.Config {
	cfg := domain.Config{}
	cfg.Black.Command = "black"
	return cfg
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.Config)
		fileName string
		extra    []string
		want     []string
	}{
		{
			name:     "defaults produce bare command",
			fileName: "/tmp/module.py",
			want:     []string{"black"},
		},
		{
			name: "all options in stable order",
			mutate: func(cfg *domain.Config) {
				cfg.Black.LineLength = 100
				cfg.Black.Fast = true
				cfg.Black.SkipStringNormalization = true
				cfg.Black.Py36 = true
				cfg.Black.TargetVersions = []string{"py36", "py37"}
			},
			fileName: "/tmp/module.py",
			want: []string{
				"black", "-l", "100", "--fast", "--skip-string-normalization",
				"--py36", "--target-version", "py36", "--target-version", "py37",
			},
		},
		{
			name:     "stub file adds pyi flag",
			fileName: "/tmp/module.pyi",
			mutate: func(cfg *domain.Config) {
				cfg.Black.LineLength = 88
			},
			want: []string{"black", "-l", "88", "--pyi"},
		},
		{
			name:     "extra flags come right after the executable",
			fileName: "/tmp/module.py",
			mutate: func(cfg *domain.Config) {
				cfg.Black.LineLength = 88
			},
			extra: []string{"--diff"},
			want:  []string{"black", "--diff", "-l", "88"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			inv, err := NewBuilder(cfg, tt.fileName).Build(tt.extra...)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if diff := cmp.Diff(tt.want, inv.Args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildHeaders(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.Config)
		fileName string
		extra    []string
		want     map[string]string
	}{
		{
			name:     "fast or safe header always present",
			fileName: "/tmp/module.py",
			want:     map[string]string{domain.HeaderFastOrSafe: "safe"},
		},
		{
			name: "flags translate one to one",
			mutate: func(cfg *domain.Config) {
				cfg.Black.LineLength = 100
				cfg.Black.Fast = true
				cfg.Black.SkipStringNormalization = true
			},
			fileName: "/tmp/module.py",
			want: map[string]string{
				domain.HeaderFastOrSafe:     "fast",
				domain.HeaderLineLength:     "100",
				domain.HeaderSkipStringNorm: "1",
			},
		},
		{
			name: "target versions become dotted variant tags",
			mutate: func(cfg *domain.Config) {
				cfg.Black.TargetVersions = []string{"py36", "py310"}
			},
			fileName: "/tmp/module.py",
			want: map[string]string{
				domain.HeaderFastOrSafe:    "safe",
				domain.HeaderPythonVariant: "py3.6,py3.10",
			},
		},
		{
			name: "stub file overrides variant tags",
			mutate: func(cfg *domain.Config) {
				cfg.Black.TargetVersions = []string{"py36"}
			},
			fileName: "/tmp/module.pyi",
			want: map[string]string{
				domain.HeaderFastOrSafe:    "safe",
				domain.HeaderPythonVariant: "pyi",
			},
		},
		{
			name:     "diff flag sets the diff header",
			fileName: "/tmp/module.py",
			extra:    []string{"--diff"},
			want: map[string]string{
				domain.HeaderFastOrSafe: "safe",
				domain.HeaderDiff:       "true",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			inv, err := NewBuilder(cfg, tt.fileName).Build(tt.extra...)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if diff := cmp.Diff(tt.want, inv.Headers); diff != "" {
				t.Errorf("headers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildInvocationFields(t *testing.T) {
	cfg := baseConfig()
	cfg.Blackd.Host = "127.0.0.1"
	cfg.Blackd.Port = 9090
	cfg.Black.DefaultEncoding = "latin-1"

	inv, err := NewBuilder(cfg, "/srv/project/module.py").Build("--diff")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if inv.URL != "http://127.0.0.1:9090/" {
		t.Errorf("URL = %q", inv.URL)
	}
	if inv.Encoding != "latin-1" {
		t.Errorf("Encoding = %q", inv.Encoding)
	}
	if inv.WorkDir != "/srv/project" {
		t.Errorf("WorkDir = %q", inv.WorkDir)
	}
	if !inv.Diff {
		t.Error("Diff = false, want true")
	}
}

func TestBuildUnresolvedCommand(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	cfg := domain.Config{}
	_, err := NewBuilder(cfg, "/tmp/module.py").Build()
	if err == nil {
		t.Fatal("expected error for unresolved command")
	}
	if !domain.IsConfiguration(err) {
		t.Errorf("error %v is not a configuration error", err)
	}
	if !errors.Is(err, domain.ErrCommandUnresolved) {
		t.Errorf("error %v does not wrap ErrCommandUnresolved", err)
	}
}
