// Package ui はユーザーインターフェース機能を提供します
package ui

import (
	"fmt"

	"github.com/sqweek/dialog"

	"FileData/internal/infrastructure/filesystem"
)

// PathSelector はネイティブダイアログによるファイル・ディレクトリ選択機能を提供します
type PathSelector struct {
	// validator は選択されたパスの検証を行うインターフェースです
	validator filesystem.PathValidator
	// browseFile と browseDir はダイアログを表示して選択結果を返します
	browseFile func(title string) (string, error)
	browseDir  func(title string) (string, error)
}

// NewPathSelector は新しい PathSelector インスタンスを作成します
func NewPathSelector(validator filesystem.PathValidator) *PathSelector {
	return &PathSelector{
		validator: validator,
		browseFile: func(title string) (string, error) {
			return dialog.File().Title(title).Load()
		},
		browseDir: func(title string) (string, error) {
			return dialog.Directory().Title(title).Browse()
		},
	}
}

// SelectFile はダイアログを表示してファイルを選択します
func (s *PathSelector) SelectFile(title string) (string, error) {
	return s.selectWith(s.browseFile, title)
}

// SelectDirectory はダイアログを表示してディレクトリを選択します
func (s *PathSelector) SelectDirectory(title string) (string, error) {
	return s.selectWith(s.browseDir, title)
}

func (s *PathSelector) selectWith(browse func(string) (string, error), title string) (string, error) {
	selected, err := browse(title)
	if err != nil {
		return "", fmt.Errorf("選択がキャンセルまたはエラーになりました: %w", err)
	}

	if err := s.validator.ValidatePath(selected); err != nil {
		return "", fmt.Errorf("無効なパスが選択されました: %w", err)
	}

	return selected, nil
}
