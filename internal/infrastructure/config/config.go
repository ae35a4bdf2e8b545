// Package config は設定ファイルの読み込み機能を提供します
//
// 設定ファイルの探索順:
//  1. $FILEDATA_CONFIG
//  2. ./filedata.yaml
//  3. <UserConfigDir>/filedata/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath は設定ファイルのパスを指定する環境変数名です
	EnvConfigPath = "FILEDATA_CONFIG"
	// LocalConfigName はカレントディレクトリで探索するファイル名です
	LocalConfigName = "filedata.yaml"

	DefaultLocale        = "en"
	DefaultLogLevel      = "info"
	DefaultExifCommand   = "exiftool"
	DefaultSharedMimeDir = "/usr/share/mime"
)

// DefaultExifArgs は exiftool を "タグ名: 値" 形式で出力させる引数です
var DefaultExifArgs = []string{"-s", "-s", "-EXIF:all"}

// Config はアプリケーション全体の設定を表します
type Config struct {
	// Locale は数値の桁区切りに使うBCP 47言語タグです
	Locale   string     `yaml:"locale"`
	LogLevel string     `yaml:"log_level"`
	Exif     ExifConfig `yaml:"exif"`
	Mime     MimeConfig `yaml:"mime"`
	// Watch が true の場合、表示中のファイルの変更を監視して再読み込みします
	Watch bool `yaml:"watch"`
}

// ExifConfig はEXIF抽出ユーティリティの設定です
type ExifConfig struct {
	// Enabled が false の場合、画像のメタデータを読み込みません
	Enabled *bool    `yaml:"enabled,omitempty"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// MimeConfig はMIMEデータベースの設定です
type MimeConfig struct {
	SharedMimeDir string `yaml:"shared_mime_dir"`
}

// DefaultConfig はデフォルト値のみで構成された設定を返します
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// ExifEnabled はEXIF読み込みが有効かどうかを返します
func (c *Config) ExifEnabled() bool {
	return c.Exif.Enabled == nil || *c.Exif.Enabled
}

func (c *Config) applyDefaults() {
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Exif.Command == "" {
		c.Exif.Command = DefaultExifCommand
	}
	if len(c.Exif.Args) == 0 {
		c.Exif.Args = append([]string(nil), DefaultExifArgs...)
	}
	if c.Mime.SharedMimeDir == "" {
		c.Mime.SharedMimeDir = DefaultSharedMimeDir
	}
}

// Load は設定ファイルを探索して読み込みます。見つからない場合はデフォルト値を返します
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath は指定されたパスの設定ファイルを読み込みます
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("設定ファイルの解析に失敗しました: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, path, nil
}

// Save は設定を指定パスへ書き出します
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("設定ディレクトリの作成に失敗しました: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("設定のエンコードに失敗しました: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("設定ファイルの書き込みに失敗しました: %w", err)
	}
	return nil
}

// FindConfigPath は探索順に従って最初に見つかった設定ファイルのパスを返します
func FindConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}

	candidates := []string{LocalConfigName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "filedata", "config.yaml"))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
