package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeSource はテスト用のファイル情報です
type fakeSource struct {
	file, name, kind, icon, absPath, suffix string
	perms, owner, group, size               string
	modified, created, mime, comment, cat   string
	target, errMsg                          string
	isDir, isLink, broken, safe             bool
	meta                                    []string
	dirs, files                             int
	countCalls                              int
}

func (f *fakeSource) File() string            { return f.file }
func (f *fakeSource) Name() string            { return f.name }
func (f *fakeSource) Kind() string            { return f.kind }
func (f *fakeSource) Icon() string            { return f.icon }
func (f *fakeSource) IsDir() bool             { return f.isDir }
func (f *fakeSource) IsSymlink() bool         { return f.isLink }
func (f *fakeSource) IsSymlinkBroken() bool   { return f.broken }
func (f *fakeSource) SymlinkTarget() string   { return f.target }
func (f *fakeSource) AbsolutePath() string    { return f.absPath }
func (f *fakeSource) Suffix() string          { return f.suffix }
func (f *fakeSource) Permissions() string     { return f.perms }
func (f *fakeSource) Owner() string           { return f.owner }
func (f *fakeSource) Group() string           { return f.group }
func (f *fakeSource) Size() string            { return f.size }
func (f *fakeSource) ModifiedLong() string    { return f.modified }
func (f *fakeSource) CreatedLong() string     { return f.created }
func (f *fakeSource) MimeType() string        { return f.mime }
func (f *fakeSource) MimeTypeComment() string { return f.comment }
func (f *fakeSource) TypeCategory() string    { return f.cat }
func (f *fakeSource) IsSafeToOpen() bool      { return f.safe }
func (f *fakeSource) MetaData() []string      { return f.meta }
func (f *fakeSource) ErrorMessage() string    { return f.errMsg }

func (f *fakeSource) Counts(ctx context.Context) (int, int) {
	f.countCalls++
	return f.dirs, f.files
}

func TestGenerator_CreateOutputFile(t *testing.T) {
	generator := NewGenerator(nil)

	// テスト用の一時ディレクトリを作成
	tempDir, err := os.MkdirTemp("", "generator_test")
	if err != nil {
		t.Fatalf("一時ディレクトリの作成に失敗: %v", err)
	}
	defer os.RemoveAll(tempDir)

	file, path, err := generator.CreateOutputFile(tempDir)
	if err != nil {
		t.Fatalf("CreateOutputFile() error = %v", err)
	}
	defer file.Close()

	if !strings.HasPrefix(filepath.Base(path), "info_") {
		t.Errorf("出力ファイル名が不正: got %v", filepath.Base(path))
	}

	if !strings.HasSuffix(path, ".txt") {
		t.Errorf("出力ファイルの拡張子が不正: got %v", filepath.Base(path))
	}
}

func TestGenerator_CreateOutputFile_InvalidDir(t *testing.T) {
	generator := NewGenerator(nil)
	if _, _, err := generator.CreateOutputFile(filepath.Join(t.TempDir(), "notexist")); err == nil {
		t.Error("存在しないディレクトリでエラーにならない")
	}
}

func TestGenerator_WriteFileInfo(t *testing.T) {
	generator := NewGenerator(nil)

	tests := []struct {
		name       string
		src        *fakeSource
		opts       Options
		want       []string
		notWant    []string
		wantCounts int
	}{
		{
			name: "通常ファイル",
			src: &fakeSource{
				file: "/data/a.txt", name: "a.txt", kind: "-", size: "12 bytes",
				perms: "rw-r--r--", mime: "text/plain", comment: "plain text document",
				cat: "text", safe: true,
			},
			want: []string{
				"===== ファイル情報 =====",
				"パス: /data/a.txt",
				"サイズ: 12 bytes",
				"パーミッション: rw-r--r--",
				"説明: plain text document",
				"安全に開けるか: はい",
			},
			notWant: []string{"[エラー]", "リンク先", "ディレクトリ数", "所有者"},
		},
		{
			name: "リンク切れ",
			src: &fakeSource{
				file: "/data/l", name: "l", kind: "l", isLink: true, broken: true, target: "/data/gone",
			},
			want: []string{"リンク先: /data/gone (リンク切れ)", "安全に開けるか: いいえ"},
		},
		{
			name: "ディレクトリと要素数",
			src: &fakeSource{
				file: "/data", name: "data", kind: "d", isDir: true, dirs: 3, files: 7,
			},
			opts:       Options{Counts: true},
			want:       []string{"ディレクトリ数: 3", "ファイル数: 7"},
			wantCounts: 1,
		},
		{
			name: "件数はロケールに従って整形する",
			src: &fakeSource{
				file: "/data", name: "data", kind: "d", isDir: true, dirs: 1234, files: 56789,
			},
			opts:       Options{Counts: true},
			want:       []string{"ディレクトリ数: 1,234", "ファイル数: 56,789"},
			wantCounts: 1,
		},
		{
			name: "要素数を要求しない場合は数えない",
			src: &fakeSource{
				file: "/data", name: "data", kind: "d", isDir: true, dirs: 3, files: 7,
			},
			notWant: []string{"ディレクトリ数"},
		},
		{
			name: "読み込みエラー",
			src: &fakeSource{
				file: "/data/missing", name: "missing", errMsg: "ファイルが存在しません: /data/missing",
			},
			want:    []string{"[エラー] ファイルが存在しません: /data/missing"},
			notWant: []string{"安全に開けるか"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			generator.WriteFileInfo(context.Background(), &buf, tt.src, tt.opts)

			output := buf.String()
			for _, line := range tt.want {
				if !strings.Contains(output, line) {
					t.Errorf("出力に期待される行が含まれていない: %q\nOutput:\n%s", line, output)
				}
			}
			for _, line := range tt.notWant {
				if strings.Contains(output, line) {
					t.Errorf("出力に不要な行が含まれている: %q\nOutput:\n%s", line, output)
				}
			}
			if tt.src.countCalls != tt.wantCounts {
				t.Errorf("要素数の取得回数 = %d, want %d", tt.src.countCalls, tt.wantCounts)
			}
		})
	}
}

func TestGenerator_WriteMetaData(t *testing.T) {
	generator := NewGenerator(nil)

	var empty strings.Builder
	generator.WriteMetaData(&empty, &fakeSource{})
	if empty.Len() != 0 {
		t.Errorf("メタデータが無いのに出力された: %q", empty.String())
	}

	var buf strings.Builder
	generator.WriteMetaData(&buf, &fakeSource{meta: []string{"Image Size: 4 x 3", "Aspect Ratio: 4:3"}})
	output := buf.String()
	for _, line := range []string{"===== メタデータ =====", "  Image Size: 4 x 3", "  Aspect Ratio: 4:3"} {
		if !strings.Contains(output, line) {
			t.Errorf("出力に期待される行が含まれていない: %q\nOutput:\n%s", line, output)
		}
	}
}

func TestRenderer_Render(t *testing.T) {
	src := &fakeSource{file: "/data", name: "data", kind: "d", isDir: true, dirs: 2, files: 5}
	renderer := NewRenderer(NewGenerator(nil), Options{Counts: true})

	out, changed := renderer.Render(context.Background(), src)
	if !changed {
		t.Error("初回の出力が変更なしと判定された")
	}
	if !strings.Contains(string(out), "ファイル数: 5") {
		t.Errorf("出力に件数が含まれていない:\n%s", out)
	}

	// 件数の計算に伴う通知などで同じ内容を再生成しても出力しない
	if _, changed := renderer.Render(context.Background(), src); changed {
		t.Error("同じ内容が変更ありと判定された")
	}
	if src.countCalls != 2 {
		t.Errorf("要素数の取得回数 = %d, want 2", src.countCalls)
	}

	src.files = 6
	if out, changed := renderer.Render(context.Background(), src); !changed || !strings.Contains(string(out), "ファイル数: 6") {
		t.Errorf("変更が検出されない: changed=%v\n%s", changed, out)
	}
}
