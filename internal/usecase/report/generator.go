// Package report はファイル情報のレポート生成機能を提供します
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"FileData/internal/usecase/format"
)

const (
	OutputFilePrefix = "info_"
	OutputFileSuffix = ".txt"
	TimestampLayout  = "20060102_150405"
)

// Source はレポートに出力するファイル情報です
type Source interface {
	File() string
	Name() string
	Kind() string
	Icon() string
	IsDir() bool
	IsSymlink() bool
	IsSymlinkBroken() bool
	SymlinkTarget() string
	AbsolutePath() string
	Suffix() string
	Permissions() string
	Owner() string
	Group() string
	Size() string
	ModifiedLong() string
	CreatedLong() string
	MimeType() string
	MimeTypeComment() string
	TypeCategory() string
	IsSafeToOpen() bool
	MetaData() []string
	Counts(ctx context.Context) (dirs, files int)
	ErrorMessage() string
}

// Options はレポートの出力内容を制御します
type Options struct {
	// Counts が true の場合、ディレクトリ配下の要素数を数えて出力します
	Counts bool
}

// Generator はレポート生成機能を提供します
type Generator struct {
	formatter *format.Formatter
}

// NewGenerator は新しい Generator インスタンスを作成します。
// formatter が nil の場合、件数は英語ロケールで整形します
func NewGenerator(formatter *format.Formatter) *Generator {
	if formatter == nil {
		formatter = format.New("en")
	}
	return &Generator{formatter: formatter}
}

// CreateOutputFile は出力ファイルを作成します
func (g *Generator) CreateOutputFile(outputDir string) (*os.File, string, error) {
	timestamp := time.Now().Format(TimestampLayout)
	outputPath := filepath.Join(outputDir, fmt.Sprintf("%s%s%s", OutputFilePrefix, timestamp, OutputFileSuffix))

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return nil, "", fmt.Errorf("出力ファイルの作成に失敗しました: %w", err)
	}

	return outputFile, outputPath, nil
}

// WriteFileInfo はファイルの基本情報を "項目: 値" 形式で出力します。
// 値が空の項目は出力しません
func (g *Generator) WriteFileInfo(ctx context.Context, writer io.Writer, src Source, opts Options) {
	fmt.Fprintln(writer, "===== ファイル情報 =====")

	if msg := src.ErrorMessage(); msg != "" {
		fmt.Fprintf(writer, "[エラー] %s\n", msg)
	}

	rows := [][2]string{
		{"パス", src.File()},
		{"名前", src.Name()},
		{"場所", src.AbsolutePath()},
		{"種別", src.Kind()},
		{"アイコン", src.Icon()},
		{"分類", src.TypeCategory()},
		{"MIMEタイプ", src.MimeType()},
		{"説明", src.MimeTypeComment()},
		{"サイズ", src.Size()},
		{"パーミッション", src.Permissions()},
		{"所有者", src.Owner()},
		{"グループ", src.Group()},
		{"更新日時", src.ModifiedLong()},
		{"作成日時", src.CreatedLong()},
	}
	if src.IsSymlink() {
		target := src.SymlinkTarget()
		if src.IsSymlinkBroken() {
			target += " (リンク切れ)"
		}
		rows = append(rows, [2]string{"リンク先", target})
	}
	if opts.Counts && src.IsDir() {
		dirs, files := src.Counts(ctx)
		rows = append(rows,
			[2]string{"ディレクトリ数", g.formatter.Count(dirs)},
			[2]string{"ファイル数", g.formatter.Count(files)},
		)
	}
	if src.File() != "" && src.ErrorMessage() == "" {
		safe := "いいえ"
		if src.IsSafeToOpen() {
			safe = "はい"
		}
		rows = append(rows, [2]string{"安全に開けるか", safe})
	}

	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(writer, "%s: %s\n", row[0], row[1])
	}
}

// WriteMetaData は画像サイズやEXIFなどのメタデータを出力します
func (g *Generator) WriteMetaData(writer io.Writer, src Source) {
	meta := src.MetaData()
	if len(meta) == 0 {
		return
	}

	fmt.Fprintln(writer, "\n===== メタデータ =====")
	for _, line := range meta {
		fmt.Fprintln(writer, "  "+strings.TrimSpace(line))
	}
}

// Renderer はレポート全体を生成し、前回と同じ内容の出力を省きます
type Renderer struct {
	generator *Generator
	opts      Options

	mu   sync.Mutex
	last []byte
}

// NewRenderer は新しい Renderer インスタンスを作成します
func NewRenderer(generator *Generator, opts Options) *Renderer {
	return &Renderer{generator: generator, opts: opts}
}

// Render はレポートを生成します。前回の Render と内容が同じ場合は changed が false になります
func (r *Renderer) Render(ctx context.Context, src Source) (out []byte, changed bool) {
	var buf bytes.Buffer
	r.generator.WriteFileInfo(ctx, &buf, src, r.opts)
	r.generator.WriteMetaData(&buf, src)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last != nil && bytes.Equal(r.last, buf.Bytes()) {
		return buf.Bytes(), false
	}
	r.last = buf.Bytes()
	return buf.Bytes(), true
}
