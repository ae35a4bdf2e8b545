package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Locale != DefaultLocale {
		t.Errorf("Locale = %v, want %v", cfg.Locale, DefaultLocale)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.Exif.Command != DefaultExifCommand {
		t.Errorf("Exif.Command = %v, want %v", cfg.Exif.Command, DefaultExifCommand)
	}
	if len(cfg.Exif.Args) != len(DefaultExifArgs) {
		t.Errorf("Exif.Args = %v, want %v", cfg.Exif.Args, DefaultExifArgs)
	}
	if !cfg.ExifEnabled() {
		t.Error("EXIF はデフォルトで有効であるべき")
	}
	if cfg.Watch {
		t.Error("Watch はデフォルトで無効であるべき")
	}
}

func TestLoadFromPath(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name        string
		content     string
		wantErr     bool
		wantLocale  string
		wantCommand string
		wantExif    bool
		wantWatch   bool
	}{
		{
			name:        "一部のみ指定",
			content:     "locale: de\nwatch: true\n",
			wantLocale:  "de",
			wantCommand: DefaultExifCommand,
			wantExif:    true,
			wantWatch:   true,
		},
		{
			name:        "EXIFの無効化とコマンド指定",
			content:     "exif:\n  enabled: false\n  command: /opt/bin/exiftool\n",
			wantLocale:  DefaultLocale,
			wantCommand: "/opt/bin/exiftool",
			wantExif:    false,
		},
		{
			name:    "不正なYAML",
			content: "locale: [de\n",
			wantErr: true,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tempDir, "config"+string(rune('a'+i))+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("設定ファイルの作成に失敗: %v", err)
			}

			cfg, gotPath, err := LoadFromPath(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadFromPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if gotPath != path {
				t.Errorf("path = %v, want %v", gotPath, path)
			}
			if tt.wantErr {
				return
			}
			if cfg.Locale != tt.wantLocale {
				t.Errorf("Locale = %v, want %v", cfg.Locale, tt.wantLocale)
			}
			if cfg.Exif.Command != tt.wantCommand {
				t.Errorf("Exif.Command = %v, want %v", cfg.Exif.Command, tt.wantCommand)
			}
			if cfg.ExifEnabled() != tt.wantExif {
				t.Errorf("ExifEnabled() = %v, want %v", cfg.ExifEnabled(), tt.wantExif)
			}
			if cfg.Watch != tt.wantWatch {
				t.Errorf("Watch = %v, want %v", cfg.Watch, tt.wantWatch)
			}
		})
	}
}

func TestLoadFromPath_Missing(t *testing.T) {
	if _, _, err := LoadFromPath(filepath.Join(t.TempDir(), "notexist.yaml")); err == nil {
		t.Error("存在しない設定ファイルでエラーにならない")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0644); err != nil {
		t.Fatalf("設定ファイルの作成に失敗: %v", err)
	}
	t.Setenv(EnvConfigPath, path)

	cfg, gotPath, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if gotPath != path {
		t.Errorf("path = %v, want %v", gotPath, path)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Locale = "ja"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Locale != "ja" {
		t.Errorf("Locale = %v, want ja", loaded.Locale)
	}
}
