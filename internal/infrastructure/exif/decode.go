package exif

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"FileData/internal/domain/model"
)

// decodedFields は内部デコード時に収集するタグとその順序です
var decodedFields = []exif.FieldName{
	exif.Make,
	exif.Model,
	exif.LensModel,
	exif.Software,
	exif.DateTimeOriginal,
	exif.ExposureTime,
	exif.FNumber,
	exif.ISOSpeedRatings,
	exif.FocalLength,
	exif.Flash,
	exif.Orientation,
	exif.Artist,
}

// KeyGPSPosition は緯度経度のメタデータキーです
const KeyGPSPosition = "GPSPosition"

// DecodeTags は外部ユーティリティを使わずにEXIFタグを読み取ります。
// EXIFを含まない画像では空のスライスを返します
func DecodeTags(r io.Reader) []model.MetaField {
	x, err := exif.Decode(r)
	if err != nil {
		return nil
	}

	var fields []model.MetaField
	for _, name := range decodedFields {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		if v := tagValue(tag); v != "" {
			fields = append(fields, model.MetaField{Key: string(name), Value: v})
		}
	}

	if lat, lon, err := x.LatLong(); err == nil && !math.IsNaN(lat) && !math.IsNaN(lon) {
		fields = append(fields, model.MetaField{
			Key:   KeyGPSPosition,
			Value: fmt.Sprintf("%.6f, %.6f", lat, lon),
		})
	}
	return fields
}

func tagValue(tag *tiff.Tag) string {
	if tag.Format() == tiff.StringVal {
		s, _ := tag.StringVal()
		return strings.TrimSpace(strings.TrimRight(s, "\x00"))
	}
	return strings.Trim(tag.String(), `"`)
}
