// package model はドメインモデルを定義します
package model

import (
	"io/fs"
	"time"
)

// ファイル種別を表す1文字の記号（ls -l 形式）
const (
	KindFile      = "-"
	KindDir       = "d"
	KindSymlink   = "l"
	KindCharDev   = "c"
	KindBlockDev  = "b"
	KindNamedPipe = "p"
	KindSocket    = "s"
	KindUnknown   = "?"
)

// MetaField は画像の寸法やEXIFタグなどのキーと値の組を表します
type MetaField struct {
	Key   string
	Value string
}

// String は "キー: 値" 形式の文字列を返します
func (f MetaField) String() string {
	return f.Key + ": " + f.Value
}

// FileEntry はファイルシステム上の1つのパスとその派生情報を表します
type FileEntry struct {
	// Path は呼び出し側が指定したパスを表します
	Path string
	// AbsolutePath は要素を含むディレクトリの絶対パスを表します
	AbsolutePath string
	// Name はファイル名を表します
	Name string
	// Suffix は小文字化した拡張子（ドットなし）を表します
	Suffix string
	// IsDir はシンボリックリンクを辿った先がディレクトリであるかを示します
	IsDir bool
	// IsSymlink は要素自体がシンボリックリンクであるかを示します
	IsSymlink bool
	// SymlinkTarget はリンク先のパスを表します
	SymlinkTarget string
	// IsSymlinkBroken はリンク先を解決できなかったことを示します
	IsSymlinkBroken bool
	// Kind は要素の種別（KindFile など）を表します
	Kind string
	// Mode はリンク先のファイルモードを表します
	Mode fs.FileMode
	// Owner と Group は所有者名とグループ名を表します
	Owner string
	Group string
	// SizeBytes はリンク先のサイズを表します
	SizeBytes int64
	// ModifiedTime は最終更新時刻を表します
	ModifiedTime time.Time
	// CreatedTime は作成時刻を表します（取得できない環境ではctime）
	CreatedTime time.Time
	// MimeType と MimeTypeDescription はMIMEタイプ名とその説明を表します
	MimeType            string
	MimeTypeDescription string
	// MetaData は画像サイズやEXIF由来の属性を表します
	MetaData []MetaField
	// LastError は最後の読み込みで発生したエラーの説明を保持します
	LastError string
}

// Exists は最後の読み込みで要素が見つかったかどうかを返します
func (e FileEntry) Exists() bool {
	return e.Kind != ""
}

// IsFileAtEnd はリンクを辿った先が通常ファイルであるかを返します
func (e FileEntry) IsFileAtEnd() bool {
	return e.Exists() && !e.IsSymlinkBroken && e.Mode.Type() == 0 && !e.IsDir
}

// IsSystemAtEnd はリンクを辿った先がデバイス、パイプ、ソケットのいずれかであるかを返します
func (e FileEntry) IsSystemAtEnd() bool {
	if !e.Exists() || e.IsSymlinkBroken {
		return false
	}
	return e.Mode&(fs.ModeDevice|fs.ModeCharDevice|fs.ModeNamedPipe|fs.ModeSocket|fs.ModeIrregular) != 0
}

// IsSafeToRead は開いても読み込みがブロックしない種別であるかを返します
func (e FileEntry) IsSafeToRead() bool {
	if !e.Exists() || e.IsSymlinkBroken || e.IsSystemAtEnd() {
		return false
	}
	return e.IsDir || e.IsFileAtEnd()
}

// KindOf はファイルモードから種別記号を求めます
func KindOf(mode fs.FileMode) string {
	switch {
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDir
	case mode&fs.ModeCharDevice != 0:
		return KindCharDev
	case mode&fs.ModeDevice != 0:
		return KindBlockDev
	case mode&fs.ModeNamedPipe != 0:
		return KindNamedPipe
	case mode&fs.ModeSocket != 0:
		return KindSocket
	case mode.IsRegular():
		return KindFile
	}
	return KindUnknown
}
