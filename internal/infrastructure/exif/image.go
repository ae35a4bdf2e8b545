package exif

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxRatioTerm を超える縦横比は小数表記にします
const maxRatioTerm = 50

// Dimensions は画像ヘッダーから幅と高さを読み取ります
func Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("画像ヘッダーの解析に失敗しました: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// AspectRatio は幅と高さから "16:9" 形式の縦横比を求めます。
// 約分後の項が大きい場合は "1.78:1" のような小数表記を返します
func AspectRatio(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	d := gcd(width, height)
	w, h := width/d, height/d
	if w > maxRatioTerm || h > maxRatioTerm {
		return fmt.Sprintf("%.2f:1", float64(width)/float64(height))
	}
	return fmt.Sprintf("%d:%d", w, h)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
