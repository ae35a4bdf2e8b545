// Package exif は画像ファイルのメタデータ抽出機能を提供します
package exif

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"FileData/internal/domain/model"
	"FileData/internal/infrastructure/logging"
)

// メタデータのキー
const (
	KeyImageSize   = "Image Size"
	KeyAspectRatio = "Aspect Ratio"
)

// MetadataExtractor は画像のメタデータを抽出するインターフェースです
type MetadataExtractor interface {
	Extract(ctx context.Context, path string) ([]model.MetaField, error)
}

// Extractor は画像サイズの読み取りと外部ユーティリティによるEXIF抽出を行います
type Extractor struct {
	logger  logging.Logger
	command string
	args    []string
}

// NewExtractor は新しい Extractor インスタンスを作成します。
// command が見つからない場合はプロセス内でEXIFを読み取ります
func NewExtractor(logger logging.Logger, command string, args []string) *Extractor {
	return &Extractor{
		logger:  logger,
		command: command,
		args:    args,
	}
}

// Extract は画像サイズ、縦横比、EXIFタグを収集します。
// ユーティリティの実行に失敗した場合も、それまでに集めたフィールドは返します
func (e *Extractor) Extract(ctx context.Context, path string) ([]model.MetaField, error) {
	var fields []model.MetaField

	if w, h, err := Dimensions(path); err == nil {
		fields = append(fields,
			model.MetaField{Key: KeyImageSize, Value: fmt.Sprintf("%d x %d", w, h)},
		)
		if ratio := AspectRatio(w, h); ratio != "" {
			fields = append(fields, model.MetaField{Key: KeyAspectRatio, Value: ratio})
		}
	} else {
		e.logger.Log("DEBUG", fmt.Sprintf("画像サイズを取得できません: %s", path), err)
	}

	tags, err := e.readTags(ctx, path)
	fields = append(fields, tags...)
	return fields, err
}

func (e *Extractor) readTags(ctx context.Context, path string) ([]model.MetaField, error) {
	if e.command != "" {
		if bin, err := exec.LookPath(e.command); err == nil {
			return e.runCommand(ctx, bin, path)
		}
		e.logger.Log("DEBUG", fmt.Sprintf("EXIFユーティリティが見つからないため内部実装を使用: %s", e.command), nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("画像ファイルを開けません: %w", err)
	}
	defer f.Close()
	return DecodeTags(f), nil
}

// runCommand は外部ユーティリティを実行し、標準出力の "タグ: 値" 行を収集します
func (e *Extractor) runCommand(ctx context.Context, bin, path string) ([]model.MetaField, error) {
	args := append(append([]string(nil), e.args...), path)
	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && msg != "" {
			return nil, fmt.Errorf("EXIF情報の読み取りに失敗しました: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("EXIF情報の読み取りに失敗しました: %w", err)
	}

	return ParseTagLines(stdout.Bytes()), nil
}

// ParseTagLines は "タグ: 値" 形式の出力を解析します。区切りの無い行と空の値は無視します
func ParseTagLines(out []byte) []model.MetaField {
	var fields []model.MetaField
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		fields = append(fields, model.MetaField{Key: key, Value: value})
	}
	return fields
}
