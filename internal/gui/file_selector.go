// Package gui はGUIを提供します
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// Default window size constants
const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
)

// PathValidator は、パスの検証を行うインターフェース
type PathValidator interface {
	ValidatePath(path string) error
}

// FileSelector は、Fyneを使用してファイルの選択を行う構造体
type FileSelector struct {
	validator PathValidator
}

// NewFileSelector は、FileSelectorの新しいインスタンスを作成します
func NewFileSelector(validator PathValidator) *FileSelector {
	return &FileSelector{
		validator: validator,
	}
}

// ChooseInWindow は、既存のウィンドウ上でファイル選択ダイアログを表示し、
// 検証済みのパスを onSelect に渡します
func (s *FileSelector) ChooseInWindow(w fyne.Window, onSelect func(path string)) {
	dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(fmt.Errorf("ファイル選択エラー: %w", err), w)
			return
		}
		if reader == nil {
			return
		}
		// 内容は読まないためすぐに閉じる
		path := reader.URI().Path()
		reader.Close()

		if err := s.validate(path); err != nil {
			dialog.ShowError(err, w)
			return
		}
		onSelect(path)
	}, w).Show()
}

func (s *FileSelector) validate(path string) error {
	if err := s.validator.ValidatePath(path); err != nil {
		return fmt.Errorf("パス検証エラー: %w", err)
	}
	return nil
}
