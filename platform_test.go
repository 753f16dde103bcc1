package main

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolvePlatform(t *testing.T) {
	tests := []struct {
		testName string // description of this test case
		// Named input parameters for target function.
		goos    string
		goarch  string
		want    Platform
		wantErr bool
	}{
		{
			testName: "linux amd64",
			goos:     "linux",
			goarch:   "amd64",
			want:     Platform{OS: "linux", Arch: "amd64"},
		},
		{
			testName: "darwin arm64",
			goos:     "darwin",
			goarch:   "arm64",
			want:     Platform{OS: "darwin", Arch: "arm64"},
		},
		{
			testName: "windows 386",
			goos:     "windows",
			goarch:   "386",
			want:     Platform{OS: "windows", Arch: "386"},
		},
		{
			testName: "freebsd arm",
			goos:     "freebsd",
			goarch:   "arm",
			want:     Platform{OS: "freebsd", Arch: "arm"},
		},
		{
			testName: "unsupported os",
			goos:     "plan9",
			goarch:   "amd64",
			wantErr:  true,
		},
		{
			testName: "unsupported arch",
			goos:     "linux",
			goarch:   "mips64",
			wantErr:  true,
		},
		{
			testName: "empty identifiers",
			goos:     "",
			goarch:   "",
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.testName, func(t *testing.T) {
			got, gotErr := ResolvePlatform(tt.goos, tt.goarch)
			if gotErr != nil {
				if !tt.wantErr {
					t.Errorf("ResolvePlatform() failed: %v", gotErr)
				}
				if !errors.Is(gotErr, ErrUnsupportedPlatform) {
					t.Errorf("ResolvePlatform() error = %v, want ErrUnsupportedPlatform", gotErr)
				}
				return
			}
			if tt.wantErr {
				t.Fatal("ResolvePlatform() succeeded unexpectedly")
			}
			if d := cmp.Diff(tt.want, got); d != "" {
				t.Errorf("ResolvePlatform() mismatch (-want/+got): %v", d)
			}
		})
	}
}
