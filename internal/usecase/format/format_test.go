package format

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"FileData/internal/domain/model"
)

func TestSize(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{"ゼロ", 0, "0 bytes"},
		{"負の値", -5, "0 bytes"},
		{"1000未満", 999, "999 bytes"},
		{"kB境界", 1000, "1.00 kB"},
		{"kB", 1500, "1.50 kB"},
		{"MB境界", 1000000, "1.00 MB"},
		{"MB", 2500000, "2.50 MB"},
		{"GB境界", 1000000000, "1.00 GB"},
		{"GB", 3250000000, "3.25 GB"},
		{"大きなGB", 1234000000000, "1,234.00 GB"},
	}

	en := New("en")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := en.Size(tt.n); got != tt.want {
				t.Errorf("Size(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestSize_Thresholds(t *testing.T) {
	en := New("en")
	for n := int64(1); n < 1e12; n *= 7 {
		got := en.Size(n)
		var wantUnit string
		switch {
		case n < 1000:
			wantUnit = " bytes"
		case n < 1e6:
			wantUnit = " kB"
		case n < 1e9:
			wantUnit = " MB"
		default:
			wantUnit = " GB"
		}
		if !strings.HasSuffix(got, wantUnit) {
			t.Errorf("Size(%d) = %q, want unit %q", n, got, wantUnit)
		}
	}
}

func TestFormatter_Locale(t *testing.T) {
	de := New("de")
	if got := de.Size(1500); got != "1,50 kB" {
		t.Errorf("de Size(1500) = %q, want %q", got, "1,50 kB")
	}

	fallback := New("not a locale!!")
	if got := fallback.Size(1500); got != "1.50 kB" {
		t.Errorf("fallback Size(1500) = %q, want %q", got, "1.50 kB")
	}
	if got := fallback.Count(12345); got != "12,345" {
		t.Errorf("Count(12345) = %q, want %q", got, "12,345")
	}
}

func TestPermissions(t *testing.T) {
	tests := []struct {
		mode fs.FileMode
		want string
	}{
		{0, "---------"},
		{0777, "rwxrwxrwx"},
		{0644, "rw-r--r--"},
		{0755, "rwxr-xr-x"},
		{0600, "rw-------"},
		{0421, "r---w---x"},
		{fs.ModeDir | 0750, "rwxr-x---"},
		{fs.ModeSetuid | 0755, "rwxr-xr-x"},
	}

	for _, tt := range tests {
		if got := Permissions(tt.mode); got != tt.want {
			t.Errorf("Permissions(%o) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestPermissions_AlwaysNineChars(t *testing.T) {
	for m := fs.FileMode(0); m <= 0777; m++ {
		got := Permissions(m)
		if len(got) != 9 {
			t.Fatalf("Permissions(%o) length = %d", m, len(got))
		}
		if strings.Trim(got, "rwx-") != "" {
			t.Fatalf("Permissions(%o) = %q contains unexpected characters", m, got)
		}
	}
}

func TestDateTime(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		long bool
		want string
	}{
		{"ゼロ値", time.Time{}, false, ""},
		{"今日", time.Date(2024, 3, 15, 9, 5, 7, 0, time.UTC), false, "09:05:07"},
		{"今日(長い形式)", time.Date(2024, 3, 15, 9, 5, 7, 0, time.UTC), true, "09:05:07"},
		{"過去(短い形式)", time.Date(2023, 12, 1, 14, 30, 0, 0, time.UTC), false, "01.12.23, 14:30"},
		{"過去(長い形式)", time.Date(2023, 12, 1, 14, 30, 5, 0, time.UTC), true, "01 Dec 2023, 14:30:05 UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateTime(tt.t, now, tt.long); got != tt.want {
				t.Errorf("DateTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuffixIcon(t *testing.T) {
	tests := map[string]string{
		"txt":  "file-txt",
		"rpm":  "file-rpm",
		"apk":  "file-apk",
		"jpg":  "file-image",
		"gif":  "file-image",
		"opus": "file-audio",
		"mkv":  "file-video",
		"pdf":  "file-pdf",
		"xz":   "file-compressed",
		"":     IconFile,
		"docx": IconFile,
		"JPG":  IconFile,
	}

	for suffix, want := range tests {
		if got := SuffixIcon(suffix); got != want {
			t.Errorf("SuffixIcon(%q) = %q, want %q", suffix, got, want)
		}
	}
}

func TestEntryIcon(t *testing.T) {
	tests := []struct {
		name  string
		entry model.FileEntry
		want  string
	}{
		{"ディレクトリへのリンク", model.FileEntry{Kind: model.KindSymlink, IsSymlink: true, IsDir: true, Mode: fs.ModeDir}, IconFolderLink},
		{"ディレクトリ", model.FileEntry{Kind: model.KindDir, IsDir: true, Mode: fs.ModeDir}, IconFolder},
		{"ファイルへのリンク", model.FileEntry{Kind: model.KindSymlink, IsSymlink: true, Suffix: "png"}, IconLink},
		{"画像ファイル", model.FileEntry{Kind: model.KindFile, Suffix: "png"}, "file-image"},
		{"パイプ", model.FileEntry{Kind: model.KindNamedPipe, Mode: fs.ModeNamedPipe}, IconFile},
		{"存在しない", model.FileEntry{}, IconFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EntryIcon(tt.entry); got != tt.want {
				t.Errorf("EntryIcon() = %q, want %q", got, tt.want)
			}
		})
	}
}
