// Package format は表示用の文字列整形機能を提供します
package format

import (
	"io/fs"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"FileData/internal/domain/model"
)

// 日時の表示レイアウト
const (
	TimeOfDayLayout = "15:04:05"
	ShortLayout     = "02.01.06, 15:04"
	LongLayout      = "02 Jan 2006, 15:04:05 MST"
)

// サイズ単位の閾値（10進、1000単位）
const (
	kilo = 1000
	mega = 1000 * kilo
	giga = 1000 * mega
)

// Formatter はロケールに応じて数値を整形します
type Formatter struct {
	printer *message.Printer
}

// New は指定ロケールの Formatter を作成します。解釈できないロケールは英語として扱います
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Size はバイト数を "bytes/kB/MB/GB" 表記に変換します
func (f *Formatter) Size(n int64) string {
	if n < 0 {
		n = 0
	}
	switch {
	case n < kilo:
		return f.printer.Sprintf("%d bytes", n)
	case n < mega:
		return f.printer.Sprintf("%.2f kB", float64(n)/kilo)
	case n < giga:
		return f.printer.Sprintf("%.2f MB", float64(n)/mega)
	}
	return f.printer.Sprintf("%.2f GB", float64(n)/giga)
}

// Count は件数を桁区切り付きで整形します
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}

// Permissions はパーミッションビットを9文字の rwx 表記に変換します
func Permissions(mode fs.FileMode) string {
	const rwx = "rwxrwxrwx"
	perm := mode.Perm()
	buf := []byte("---------")
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			buf[i] = rwx[i]
		}
	}
	return string(buf)
}

// DateTime は日時を表示用文字列に変換します。
// now と同じ日付なら時刻のみ、それ以外は long に応じて短い形式か長い形式を返します
func DateTime(t, now time.Time, long bool) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(now.Location())

	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty == ny && tm == nm && td == nd {
		return t.Format(TimeOfDayLayout)
	}
	if long {
		return t.Format(LongLayout)
	}
	return t.Format(ShortLayout)
}

// suffixIcons はアイコン名ごとの拡張子一覧です
var suffixIcons = map[string][]string{
	"file-txt":        {"txt"},
	"file-rpm":        {"rpm"},
	"file-apk":        {"apk"},
	"file-image":      {"png", "jpeg", "jpg", "gif"},
	"file-audio":      {"wav", "mp3", "flac", "aac", "ogg", "opus", "m4a"},
	"file-video":      {"mp4", "mkv", "ogv", "avi", "m4v"},
	"file-pdf":        {"pdf"},
	"file-compressed": {"zip", "tar", "gz", "bz2", "xz"},
}

var iconBySuffix = func() map[string]string {
	m := make(map[string]string)
	for icon, suffixes := range suffixIcons {
		for _, s := range suffixes {
			m[s] = icon
		}
	}
	return m
}()

// アイコン名
const (
	IconFile       = "file"
	IconFolder     = "folder"
	IconFolderLink = "folder-link"
	IconLink       = "link"
)

// SuffixIcon は拡張子に対応するアイコン名を返します。未知の拡張子は IconFile です
func SuffixIcon(suffix string) string {
	if icon, ok := iconBySuffix[suffix]; ok {
		return icon
	}
	return IconFile
}

// EntryIcon はエントリの種別に応じたアイコン名を返します
func EntryIcon(e model.FileEntry) string {
	switch {
	case e.IsSymlink && e.IsDir:
		return IconFolderLink
	case e.IsDir:
		return IconFolder
	case e.IsSymlink:
		return IconLink
	case e.IsFileAtEnd():
		return SuffixIcon(e.Suffix)
	}
	return IconFile
}
