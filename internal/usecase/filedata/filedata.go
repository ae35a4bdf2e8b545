// Package filedata は1つのファイルの情報を変更通知付きのプロパティとして提供します
package filedata

import (
	"context"
	"io"
	"sync"
	"time"

	"fyne.io/fyne/v2/data/binding"

	"FileData/internal/domain/model"
	"FileData/internal/infrastructure/filesystem"
	"FileData/internal/infrastructure/logging"
	"FileData/internal/usecase/format"
)

// Deps は FileData が利用する依存関係です
type Deps struct {
	Reader    filesystem.EntryReader
	Counter   filesystem.ChildCounter
	Mime      filesystem.MimeDatabase
	Formatter *format.Formatter
	Logger    logging.Logger
	// Now は日時表示の基準となる現在時刻を返します。nil の場合は time.Now です
	Now func() time.Time
}

// Bindings はUIに公開する変更通知付きの値の集合です
type Bindings struct {
	File            binding.String
	IsDir           binding.Bool
	IsSymlink       binding.Bool
	Kind            binding.String
	Icon            binding.String
	Permissions     binding.String
	Owner           binding.String
	Group           binding.String
	Size            binding.String
	Modified        binding.String
	ModifiedLong    binding.String
	Created         binding.String
	CreatedLong     binding.String
	AbsolutePath    binding.String
	Name            binding.String
	Suffix          binding.String
	SymlinkTarget   binding.String
	IsSymlinkBroken binding.Bool
	MimeType        binding.String
	MimeTypeComment binding.String
	MetaData        binding.StringList
	DirsCount       binding.Int
	FilesCount      binding.Int
	ErrorMessage    binding.String
	// Revision はいずれかの値が変化するたびに増加します
	Revision binding.Int
}

func newBindings() *Bindings {
	return &Bindings{
		File:            binding.NewString(),
		IsDir:           binding.NewBool(),
		IsSymlink:       binding.NewBool(),
		Kind:            binding.NewString(),
		Icon:            binding.NewString(),
		Permissions:     binding.NewString(),
		Owner:           binding.NewString(),
		Group:           binding.NewString(),
		Size:            binding.NewString(),
		Modified:        binding.NewString(),
		ModifiedLong:    binding.NewString(),
		Created:         binding.NewString(),
		CreatedLong:     binding.NewString(),
		AbsolutePath:    binding.NewString(),
		Name:            binding.NewString(),
		Suffix:          binding.NewString(),
		SymlinkTarget:   binding.NewString(),
		IsSymlinkBroken: binding.NewBool(),
		MimeType:        binding.NewString(),
		MimeTypeComment: binding.NewString(),
		MetaData:        binding.NewStringList(),
		DirsCount:       binding.NewInt(),
		FilesCount:      binding.NewInt(),
		ErrorMessage:    binding.NewString(),
		Revision:        binding.NewInt(),
	}
}

// FileData は1つのパスの情報を読み込み、変更された値だけを Bindings に反映します
type FileData struct {
	deps     Deps
	bindings *Bindings
	// publishMu は読み込み結果と要素数の通知が交互に混ざらないよう直列化します
	publishMu sync.Mutex

	// generation は読み込みのたびに増加し、古い読み込みに基づく要素数を捨てるために使います
	mu          sync.Mutex
	file        string
	loaded      bool
	generation  uint64
	entry       model.FileEntry
	countsValid bool
	dirs        int
	files       int
}

// New は新しい FileData を作成します。path が空でなければ直ちに読み込みます
func New(ctx context.Context, deps Deps, path string) *FileData {
	if deps.Formatter == nil {
		deps.Formatter = format.New("en")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewJSONLogger(io.Discard)
	}

	d := &FileData{
		deps:     deps,
		bindings: newBindings(),
	}
	if path != "" {
		d.SetPath(ctx, path)
	}
	return d
}

// Bindings はUIに接続する値の集合を返します
func (d *FileData) Bindings() *Bindings {
	return d.bindings
}

// SetPath は対象のパスを変更して全ての情報を読み直します。同じパスの場合は何もしません
func (d *FileData) SetPath(ctx context.Context, path string) {
	d.mu.Lock()
	if path == d.file && d.loaded {
		d.mu.Unlock()
		return
	}
	d.file = path
	d.mu.Unlock()

	setString(d.bindings.File, path)
	d.read(ctx)
}

// Refresh は同じパスの情報を読み直します
func (d *FileData) Refresh(ctx context.Context) {
	d.read(ctx)
}

// Subscribe はいずれかの値が変化したときに呼ばれる関数を登録し、解除用の関数を返します。
// 登録直後にも一度呼ばれます
func (d *FileData) Subscribe(fn func()) func() {
	l := binding.NewDataListener(fn)
	d.bindings.Revision.AddListener(l)
	return func() {
		d.bindings.Revision.RemoveListener(l)
	}
}

func (d *FileData) read(ctx context.Context) {
	d.mu.Lock()
	path := d.file
	d.mu.Unlock()

	var entry model.FileEntry
	if path == "" {
		entry = model.FileEntry{LastError: "パスが指定されていません"}
	} else {
		entry = d.deps.Reader.Read(ctx, path)
	}

	d.publishMu.Lock()
	defer d.publishMu.Unlock()

	d.mu.Lock()
	samePath := d.loaded && d.entry.Path == entry.Path
	d.entry = entry
	d.loaded = true
	d.generation++
	d.countsValid = false
	d.mu.Unlock()

	d.publish(entry, samePath)
}

// publish はエントリから表示用の値を求め、変化したものだけを通知します。
// 同じパスの再読み込みでは、要素数は次に要求されるまで前回の値を残します
func (d *FileData) publish(e model.FileEntry, samePath bool) {
	b := d.bindings
	now := d.deps.Now()

	changed := false
	changed = setBool(b.IsDir, e.IsDir) || changed
	changed = setBool(b.IsSymlink, e.IsSymlink) || changed
	changed = setString(b.Kind, e.Kind) || changed
	changed = setString(b.Icon, format.EntryIcon(e)) || changed
	changed = setString(b.Permissions, d.permissions(e)) || changed
	changed = setString(b.Owner, e.Owner) || changed
	changed = setString(b.Group, e.Group) || changed
	changed = setString(b.Size, d.size(e)) || changed
	changed = setString(b.Modified, format.DateTime(e.ModifiedTime, now, false)) || changed
	changed = setString(b.ModifiedLong, format.DateTime(e.ModifiedTime, now, true)) || changed
	changed = setString(b.Created, format.DateTime(e.CreatedTime, now, false)) || changed
	changed = setString(b.CreatedLong, format.DateTime(e.CreatedTime, now, true)) || changed
	changed = setString(b.AbsolutePath, e.AbsolutePath) || changed
	changed = setString(b.Name, e.Name) || changed
	changed = setString(b.Suffix, e.Suffix) || changed
	changed = setString(b.SymlinkTarget, e.SymlinkTarget) || changed
	changed = setBool(b.IsSymlinkBroken, e.IsSymlinkBroken) || changed
	changed = setString(b.MimeType, e.MimeType) || changed
	changed = setString(b.MimeTypeComment, e.MimeTypeDescription) || changed
	changed = setStringList(b.MetaData, metaStrings(e.MetaData)) || changed
	if !samePath || !e.IsDir {
		changed = setInt(b.DirsCount, 0) || changed
		changed = setInt(b.FilesCount, 0) || changed
	}
	changed = setString(b.ErrorMessage, e.LastError) || changed

	if changed {
		d.bumpRevision()
	}
}

func (d *FileData) bumpRevision() {
	rev, _ := d.bindings.Revision.Get()
	_ = d.bindings.Revision.Set(rev + 1)
}

// ensureCounts は配下の要素数を必要になった時点で一度だけ数えます。
// 数えている間に別の読み込みが行われた場合、その結果は捨てて新しいエントリで数え直します
func (d *FileData) ensureCounts(ctx context.Context) (int, int) {
	for {
		d.mu.Lock()
		if d.countsValid {
			dirs, files := d.dirs, d.files
			d.mu.Unlock()
			return dirs, files
		}
		entry := d.entry
		generation := d.generation
		d.mu.Unlock()

		var dirs, files int
		var countErr error
		if entry.IsDir && d.deps.Counter != nil {
			dirs, files, countErr = d.deps.Counter.Count(ctx, entry.Path)
		}

		d.publishMu.Lock()
		d.mu.Lock()
		if d.generation != generation {
			d.mu.Unlock()
			d.publishMu.Unlock()
			if ctx.Err() != nil {
				return 0, 0
			}
			continue
		}
		d.countsValid = countErr == nil
		d.dirs, d.files = dirs, files
		if countErr != nil {
			d.entry.LastError = countErr.Error()
		}
		d.mu.Unlock()

		if countErr != nil {
			logging.LogPath(d.deps.Logger, "WARN", "要素数の取得に失敗", entry.Path, countErr)
		}

		changed := setInt(d.bindings.DirsCount, dirs)
		changed = setInt(d.bindings.FilesCount, files) || changed
		if countErr != nil {
			changed = setString(d.bindings.ErrorMessage, countErr.Error()) || changed
		}
		if changed {
			d.bumpRevision()
		}
		d.publishMu.Unlock()
		return dirs, files
	}
}

func (d *FileData) permissions(e model.FileEntry) string {
	if !e.Exists() {
		return ""
	}
	return format.Permissions(e.Mode)
}

func (d *FileData) size(e model.FileEntry) string {
	if !e.Exists() || e.IsDir {
		return ""
	}
	return d.deps.Formatter.Size(e.SizeBytes)
}

func metaStrings(fields []model.MetaField) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.String())
	}
	return out
}

func setString(b binding.String, v string) bool {
	if cur, err := b.Get(); err == nil && cur == v {
		return false
	}
	_ = b.Set(v)
	return true
}

func setBool(b binding.Bool, v bool) bool {
	if cur, err := b.Get(); err == nil && cur == v {
		return false
	}
	_ = b.Set(v)
	return true
}

func setInt(b binding.Int, v int) bool {
	if cur, err := b.Get(); err == nil && cur == v {
		return false
	}
	_ = b.Set(v)
	return true
}

func setStringList(b binding.StringList, v []string) bool {
	cur, err := b.Get()
	if err == nil && len(cur) == len(v) {
		same := true
		for i := range v {
			if cur[i] != v[i] {
				same = false
				break
			}
		}
		if same {
			return false
		}
	}
	_ = b.Set(v)
	return true
}
