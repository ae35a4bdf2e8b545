package filedata

import (
	"context"

	"FileData/internal/domain/model"
	"FileData/internal/usecase/format"
)

// 種別カテゴリ
const (
	CategoryFolder     = "folder"
	CategoryImage      = "image"
	CategoryAudio      = "audio"
	CategoryVideo      = "video"
	CategoryPDF        = "pdf"
	CategoryAPK        = "apk"
	CategoryRPM        = "rpm"
	CategoryCompressed = "compressed"
	CategoryText       = "text"
	CategoryOther      = "other"
)

// compressedTypes は圧縮ファイルとして扱うMIMEタイプです
var compressedTypes = []string{
	"application/zip",
	"application/gzip",
	"application/x-tar",
	"application/x-bzip2",
	"application/x-xz",
	"application/x-7z-compressed",
	"application/x-rar-compressed",
	"application/zstd",
}

// Entry は最後に読み込んだエントリのコピーを返します
func (d *FileData) Entry() model.FileEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := d.entry
	e.MetaData = append([]model.MetaField(nil), d.entry.MetaData...)
	return e
}

func (d *FileData) File() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.file
}

func (d *FileData) IsDir() bool           { return d.Entry().IsDir }
func (d *FileData) IsSymlink() bool       { return d.Entry().IsSymlink }
func (d *FileData) IsSymlinkBroken() bool { return d.Entry().IsSymlinkBroken }
func (d *FileData) Kind() string          { return d.Entry().Kind }
func (d *FileData) Icon() string          { return format.EntryIcon(d.Entry()) }
func (d *FileData) Permissions() string   { return d.permissions(d.Entry()) }
func (d *FileData) Owner() string         { return d.Entry().Owner }
func (d *FileData) Group() string         { return d.Entry().Group }
func (d *FileData) Size() string          { return d.size(d.Entry()) }
func (d *FileData) AbsolutePath() string  { return d.Entry().AbsolutePath }
func (d *FileData) Name() string          { return d.Entry().Name }
func (d *FileData) Suffix() string        { return d.Entry().Suffix }
func (d *FileData) SymlinkTarget() string { return d.Entry().SymlinkTarget }
func (d *FileData) MimeType() string      { return d.Entry().MimeType }
func (d *FileData) MimeTypeComment() string {
	return d.Entry().MimeTypeDescription
}

// ErrorMessage は最後の操作で発生したエラーの説明を返します。成功時は空文字列です
func (d *FileData) ErrorMessage() string { return d.Entry().LastError }

// Modified は更新日時を短い形式で返します
func (d *FileData) Modified() string {
	return format.DateTime(d.Entry().ModifiedTime, d.deps.Now(), false)
}

// ModifiedLong は更新日時を長い形式で返します
func (d *FileData) ModifiedLong() string {
	return format.DateTime(d.Entry().ModifiedTime, d.deps.Now(), true)
}

// Created は作成日時を短い形式で返します
func (d *FileData) Created() string {
	return format.DateTime(d.Entry().CreatedTime, d.deps.Now(), false)
}

// CreatedLong は作成日時を長い形式で返します
func (d *FileData) CreatedLong() string {
	return format.DateTime(d.Entry().CreatedTime, d.deps.Now(), true)
}

// MetaData は "キー: 値" 形式のメタデータ一覧を返します
func (d *FileData) MetaData() []string {
	return metaStrings(d.Entry().MetaData)
}

// DirsCount は配下のディレクトリ数を再帰的に数えて返します。
// 重い処理のため初回の呼び出しまで計算しません
func (d *FileData) DirsCount(ctx context.Context) int {
	dirs, _ := d.ensureCounts(ctx)
	return dirs
}

// FilesCount は配下のファイル数を再帰的に数えて返します
func (d *FileData) FilesCount(ctx context.Context) int {
	_, files := d.ensureCounts(ctx)
	return files
}

// Counts は配下のディレクトリ数とファイル数を1回の走査で返します
func (d *FileData) Counts(ctx context.Context) (dirs, files int) {
	return d.ensureCounts(ctx)
}

// MimeTypeInherits はMIMEタイプが parent と同じか、その派生であるかを返します
func (d *FileData) MimeTypeInherits(parent string) bool {
	mimeType := d.MimeType()
	if d.deps.Mime == nil {
		return mimeType != "" && mimeType == parent
	}
	return d.deps.Mime.Inherits(mimeType, parent)
}

// IsSafeToOpen は開いても読み込みがブロックしない種別のファイルであるかを返します
func (d *FileData) IsSafeToOpen() bool {
	return d.Entry().IsSafeToRead()
}

// TypeCategory はMIMEタイプから表示用の大まかな分類を返します
func (d *FileData) TypeCategory() string {
	e := d.Entry()
	switch {
	case !e.Exists():
		return ""
	case e.IsDir:
		return CategoryFolder
	case d.MimeTypeInherits("image/*"):
		return CategoryImage
	case d.MimeTypeInherits("audio/*"):
		return CategoryAudio
	case d.MimeTypeInherits("video/*"):
		return CategoryVideo
	case d.MimeTypeInherits("application/pdf"):
		return CategoryPDF
	case d.MimeTypeInherits("application/vnd.android.package-archive"):
		return CategoryAPK
	case d.MimeTypeInherits("application/x-rpm"):
		return CategoryRPM
	}
	for _, t := range compressedTypes {
		if d.MimeTypeInherits(t) {
			return CategoryCompressed
		}
	}
	if d.MimeTypeInherits("text/plain") {
		return CategoryText
	}
	return CategoryOther
}
