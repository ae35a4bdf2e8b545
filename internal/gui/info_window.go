package gui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"FileData/internal/usecase/filedata"
)

// InfoWindow は FileData の値をバインドしたラベルで表示するウィンドウです
type InfoWindow struct {
	data     *filedata.FileData
	selector *FileSelector
	window   fyne.Window
}

// NewInfoWindow は、InfoWindowの新しいインスタンスを作成します
func NewInfoWindow(a fyne.App, data *filedata.FileData, selector *FileSelector) *InfoWindow {
	iw := &InfoWindow{
		data:     data,
		selector: selector,
		window:   a.NewWindow("FileData"),
	}
	iw.window.Resize(fyne.NewSize(DefaultWindowWidth, DefaultWindowHeight))
	iw.window.SetContent(iw.build())
	return iw
}

func (iw *InfoWindow) build() fyne.CanvasObject {
	b := iw.data.Bindings()

	form := widget.NewForm(
		row("名前", b.Name),
		row("場所", b.AbsolutePath),
		row("種別", b.Kind),
		row("アイコン", b.Icon),
		row("MIMEタイプ", b.MimeType),
		row("説明", b.MimeTypeComment),
		row("サイズ", b.Size),
		row("パーミッション", b.Permissions),
		row("所有者", b.Owner),
		row("グループ", b.Group),
		row("更新日時", b.ModifiedLong),
		row("作成日時", b.CreatedLong),
		row("シンボリックリンク", binding.BoolToString(b.IsSymlink)),
		row("リンク先", b.SymlinkTarget),
		row("リンク切れ", binding.BoolToString(b.IsSymlinkBroken)),
		row("ディレクトリ数", binding.IntToString(b.DirsCount)),
		row("ファイル数", binding.IntToString(b.FilesCount)),
	)

	meta := widget.NewListWithData(b.MetaData,
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(item binding.DataItem, obj fyne.CanvasObject) {
			obj.(*widget.Label).Bind(item.(binding.String))
		},
	)

	errLabel := widget.NewLabelWithData(b.ErrorMessage)
	errLabel.Wrapping = fyne.TextWrapWord

	path := widget.NewLabelWithData(b.File)
	path.Truncation = fyne.TextTruncate

	toolbar := container.NewHBox(
		widget.NewButton("開く...", iw.chooseFile),
		widget.NewButton("再読み込み", func() {
			iw.data.Refresh(context.Background())
		}),
		widget.NewButton("要素数を数える", func() {
			// 重い処理のためUIスレッドを止めない
			go iw.data.Counts(context.Background())
		}),
	)

	top := container.NewVBox(toolbar, path, form, errLabel)
	return container.NewBorder(top, nil, nil, nil, meta)
}

func row(label string, value binding.String) *widget.FormItem {
	l := widget.NewLabelWithData(value)
	l.Wrapping = fyne.TextWrapBreak
	return widget.NewFormItem(label, l)
}

// ShowInfo は、新しいアプリケーションで情報ウィンドウを表示し、閉じられるまで待機します。
// 対象のパスが未設定の場合は、表示直後にファイル選択ダイアログを開きます
func ShowInfo(data *filedata.FileData, selector *FileSelector) {
	a := app.New()
	iw := NewInfoWindow(a, data, selector)
	if data.File() == "" {
		iw.chooseFile()
	}
	iw.window.ShowAndRun()
}

func (iw *InfoWindow) chooseFile() {
	iw.selector.ChooseInWindow(iw.window, func(p string) {
		iw.data.SetPath(context.Background(), p)
	})
}
