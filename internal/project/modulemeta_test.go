package project

import "testing"

func TestResolveImportPath(t *testing.T) {
	tests := []struct {
		name       string
		modulePath string
		basePath   string
		segments   []string
		want       string
		wantErr    bool
	}{
		{
			name:       "simple",
			modulePath: "core/main",
			segments:   []string{"std", "io"},
			want:       "core/std/io",
		},
		{
			name:       "relative same dir",
			modulePath: "core/main",
			segments:   []string{".", "util"},
			want:       "core/util",
		},
		{
			name:       "relative parent",
			modulePath: "included/d",
			segments:   []string{"..", "a"},
			want:       "a",
		},
		{
			name:       "escapes root",
			modulePath: "a",
			segments:   []string{"..", ".."},
			wantErr:    true,
		},
		{
			name:       "stdlib prefix bypasses relative resolution",
			modulePath: "core/main",
			segments:   []string{"stdlib", "collections"},
			want:       "stdlib/collections",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveImportPath(tc.modulePath, tc.basePath, tc.segments)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeModulePath(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "a/b.yu", want: "a/b"},
		{in: "/a/b", want: "a/b"},
		{in: "a//b", wantErr: true},
		{in: "a/./b", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, c := range cases {
		got, err := NormalizeModulePath(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("NormalizeModulePath(%q) = %q, want error", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeModulePath(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("NormalizeModulePath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsValidModuleIdent(t *testing.T) {
	valid := []string{"a", "_foo", "foo_bar2"}
	invalid := []string{"", "2foo", "foo-bar", "foö"}
	for _, s := range valid {
		if !IsValidModuleIdent(s) {
			t.Errorf("IsValidModuleIdent(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidModuleIdent(s) {
			t.Errorf("IsValidModuleIdent(%q) = true, want false", s)
		}
	}
}
