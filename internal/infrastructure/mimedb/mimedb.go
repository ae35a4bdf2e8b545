// Package mimedb はMIMEタイプの判定と説明文の取得を提供します
package mimedb

import (
	"encoding/xml"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ファイル以外の要素に割り当てるMIMEタイプ
const (
	TypeDirectory   = "inode/directory"
	TypeSymlink     = "inode/symlink"
	TypeCharDevice  = "inode/chardevice"
	TypeBlockDevice = "inode/blockdevice"
	TypeFifo        = "inode/fifo"
	TypeSocket      = "inode/socket"
	TypeOctetStream = "application/octet-stream"
	TypeTextPlain   = "text/plain"
)

// fallbackDescriptions は shared-mime-info が無い環境で使う説明文です
var fallbackDescriptions = map[string]string{
	TypeDirectory:                             "folder",
	TypeSymlink:                               "symbolic link",
	TypeCharDevice:                            "character special file",
	TypeBlockDevice:                           "block special file",
	TypeFifo:                                  "pipe",
	TypeSocket:                                "socket",
	TypeOctetStream:                           "unknown",
	TypeTextPlain:                             "plain text document",
	"text/html":                               "HTML document",
	"text/markdown":                           "Markdown document",
	"text/csv":                                "CSV document",
	"application/json":                        "JSON document",
	"application/xml":                         "XML document",
	"application/pdf":                         "PDF document",
	"application/zip":                         "Zip archive",
	"application/gzip":                        "Gzip archive",
	"application/x-tar":                       "Tar archive",
	"application/x-bzip2":                     "Bzip archive",
	"application/x-xz":                        "XZ archive",
	"application/x-rpm":                       "RPM package",
	"application/vnd.android.package-archive": "Android package",
	"image/jpeg":                              "JPEG image",
	"image/png":                               "PNG image",
	"image/gif":                               "GIF image",
	"image/webp":                              "WebP image",
	"image/bmp":                               "Windows BMP image",
	"image/tiff":                              "TIFF image",
	"image/svg+xml":                           "SVG image",
	"audio/mpeg":                              "MP3 audio",
	"audio/flac":                              "FLAC audio",
	"audio/ogg":                               "Ogg audio",
	"audio/wav":                               "WAV audio",
	"video/mp4":                               "MPEG-4 video",
	"video/x-matroska":                        "Matroska video",
	"video/webm":                              "WebM video",
}

// Database はMIMEタイプの判定を行います
type Database struct {
	sharedMimeDir string
	lang          string
}

// New は新しい Database インスタンスを作成します。
// sharedMimeDir は freedesktop shared-mime-info のディレクトリ（例: /usr/share/mime）です
func New(sharedMimeDir, locale string) *Database {
	lang, _, _ := strings.Cut(locale, "-")
	lang, _, _ = strings.Cut(lang, "_")
	return &Database{sharedMimeDir: sharedMimeDir, lang: strings.ToLower(lang)}
}

// Lookup はパスとリンク先のファイル情報からMIMEタイプを判定します。
// info が nil の場合はリンク切れとして扱います
func (d *Database) Lookup(path string, info fs.FileInfo) string {
	if info == nil {
		return TypeSymlink
	}

	mode := info.Mode()
	switch {
	case mode.IsDir():
		return TypeDirectory
	case mode&fs.ModeCharDevice != 0:
		return TypeCharDevice
	case mode&fs.ModeDevice != 0:
		return TypeBlockDevice
	case mode&fs.ModeNamedPipe != 0:
		return TypeFifo
	case mode&fs.ModeSocket != 0:
		return TypeSocket
	case !mode.IsRegular():
		return TypeOctetStream
	}

	// 通常ファイルのみ内容を読み取って判定する
	if m, err := mimetype.DetectFile(path); err == nil {
		return stripParams(m.String())
	}
	return ByExtension(path)
}

// ByExtension は拡張子のみからMIMEタイプを推定します
func ByExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return TypeOctetStream
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return stripParams(t)
	}
	return TypeOctetStream
}

// Description はMIMEタイプの説明文を返します
func (d *Database) Description(mimeType string) string {
	if mimeType == "" {
		return ""
	}
	if c := d.sharedMimeComment(mimeType); c != "" {
		return c
	}
	if c, ok := fallbackDescriptions[mimeType]; ok {
		return c
	}
	return mimeType + " file"
}

// Inherits は child が parent と同じか、その派生タイプであるかを返します。
// parent に "image/*" のようなワイルドカードも指定できます
func (d *Database) Inherits(child, parent string) bool {
	child, parent = stripParams(child), stripParams(parent)
	if child == "" || parent == "" {
		return false
	}
	if child == parent {
		return true
	}
	if class, ok := strings.CutSuffix(parent, "/*"); ok {
		return strings.HasPrefix(child, class+"/")
	}
	if parent == TypeTextPlain && strings.HasPrefix(child, "text/") {
		return true
	}
	if parent == TypeOctetStream && !strings.HasPrefix(child, "inode/") {
		return true
	}

	for m := mimetype.Lookup(child); m != nil; m = m.Parent() {
		if m.Is(parent) {
			return true
		}
	}
	return false
}

type sharedMimeType struct {
	Comments []struct {
		Lang string `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
		Text string `xml:",chardata"`
	} `xml:"comment"`
}

// sharedMimeComment は shared-mime-info のXMLから説明文を読み取ります
func (d *Database) sharedMimeComment(mimeType string) string {
	if d.sharedMimeDir == "" || strings.Contains(mimeType, "..") {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(d.sharedMimeDir, filepath.FromSlash(mimeType)+".xml"))
	if err != nil {
		return ""
	}

	var t sharedMimeType
	if err := xml.Unmarshal(data, &t); err != nil {
		return ""
	}

	var fallback string
	for _, c := range t.Comments {
		text := strings.TrimSpace(c.Text)
		if c.Lang == "" && fallback == "" {
			fallback = text
		}
		if d.lang != "" && c.Lang == d.lang {
			return text
		}
	}
	return fallback
}

func stripParams(t string) string {
	t, _, _ = strings.Cut(t, ";")
	return strings.TrimSpace(t)
}
