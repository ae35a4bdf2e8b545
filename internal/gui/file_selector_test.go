package gui

import (
	"errors"
	"testing"
)

type mockValidator struct {
	err error
}

func (m mockValidator) ValidatePath(path string) error {
	return m.err
}

func TestFileSelector_Validate(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"検証成功", nil, false},
		{"検証エラー", errors.New("ファイルが存在しません"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFileSelector(mockValidator{err: tt.err}).validate("/data/a.txt")
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, tt.err) {
				t.Errorf("validate() error = %v, want wrapping %v", err, tt.err)
			}
		})
	}
}
