// Package filesystem はファイルシステム操作を提供します
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"FileData/internal/domain/model"
	"FileData/internal/infrastructure/exif"
	"FileData/internal/infrastructure/logging"
)

// imageMimeClass はメタデータを読み込む対象のMIMEタイプです
const imageMimeClass = "image/*"

// PathValidator はパスの検証機能を提供するインターフェースです
type PathValidator interface {
	ValidatePath(path string) error
}

// MimeDatabase はMIMEタイプの判定機能を提供するインターフェースです
type MimeDatabase interface {
	Lookup(path string, info fs.FileInfo) string
	Description(mimeType string) string
	Inherits(child, parent string) bool
}

// EntryReader はパスからエントリ情報を読み込むインターフェースです
type EntryReader interface {
	PathValidator
	Read(ctx context.Context, path string) model.FileEntry
}

// Reader はstat相当の情報、MIMEタイプ、画像メタデータを読み込む構造体です
type Reader struct {
	logger    logging.Logger
	mime      MimeDatabase
	extractor exif.MetadataExtractor
}

// NewReader は新しい Reader インスタンスを作成します。
// extractor が nil の場合は画像メタデータを読み込みません
func NewReader(logger logging.Logger, mime MimeDatabase, extractor exif.MetadataExtractor) *Reader {
	return &Reader{
		logger:    logger,
		mime:      mime,
		extractor: extractor,
	}
}

// ValidatePath はパスが安全で存在する要素を指していることを確認します
func (r *Reader) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("パスが指定されていません")
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("絶対パスで指定してください")
	}

	if strings.ContainsAny(path, "<>|?*") {
		return fmt.Errorf("パスに不正な文字が含まれています")
	}

	if _, err := os.Lstat(path); err != nil {
		return fmt.Errorf("ファイルが存在しません: %w", err)
	}

	return nil
}

// Read はパスの情報を読み込みます。
// 失敗した場合はエラーを返さず、LastError に説明を設定したエントリを返します
func (r *Reader) Read(ctx context.Context, path string) model.FileEntry {
	entry := model.FileEntry{Path: path}
	if path == "" {
		entry.LastError = "パスが指定されていません"
		return entry
	}

	entry.Name = filepath.Base(path)
	if abs, err := filepath.Abs(path); err == nil {
		entry.AbsolutePath = filepath.Dir(abs)
	}

	linfo, err := os.Lstat(path)
	if err != nil {
		entry.LastError = describeError(path, err)
		logging.LogPath(r.logger, "WARN", "ファイル情報の取得に失敗", path, err)
		return entry
	}

	entry.Kind = model.KindOf(linfo.Mode())
	info := linfo
	if linfo.Mode()&fs.ModeSymlink != 0 {
		entry.IsSymlink = true
		if target, err := os.Readlink(path); err == nil {
			entry.SymlinkTarget = target
		}
		// リンク先を辿れない場合（存在しない、循環）はリンク切れとする
		if st, err := os.Stat(path); err == nil {
			info = st
		} else {
			entry.IsSymlinkBroken = true
			logging.LogPath(r.logger, "DEBUG", "リンク切れのシンボリックリンク", path, err)
		}
	}

	entry.IsDir = info.IsDir() && !entry.IsSymlinkBroken
	if !entry.IsDir {
		entry.Suffix = suffixOf(entry.Name)
	}
	entry.Mode = info.Mode()
	entry.SizeBytes = info.Size()
	entry.ModifiedTime = info.ModTime()
	entry.CreatedTime = createdTime(path, info)
	entry.Owner, entry.Group = ownerOf(info)

	if entry.IsSymlinkBroken {
		entry.MimeType = r.mime.Lookup(path, nil)
	} else {
		entry.MimeType = r.mime.Lookup(path, info)
	}
	entry.MimeTypeDescription = r.mime.Description(entry.MimeType)

	if r.extractor != nil && entry.IsFileAtEnd() && r.mime.Inherits(entry.MimeType, imageMimeClass) {
		fields, err := r.extractor.Extract(ctx, path)
		entry.MetaData = fields
		if err != nil {
			entry.LastError = err.Error()
			logging.LogPath(r.logger, "ERROR", "画像メタデータの読み込みに失敗", path, err)
		}
	}

	return entry
}

// suffixOf は最後のドット以降を小文字で返します。".bashrc" のような先頭のドットは拡張子とみなしません
func suffixOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// describeError はOSのエラーを表示用の説明に変換します
func describeError(path string, err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("ファイルが存在しません: %s", path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Sprintf("アクセスが拒否されました: %s", path)
	}
	return fmt.Sprintf("ファイル情報を取得できません: %v", err)
}
