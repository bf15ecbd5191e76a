package scan

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi"
	"github.com/makiuchi-d/gozxing/oned"
	"go.uber.org/zap"
)

// ErrUnreadableImage reports that the uploaded bytes could not be decoded as
// an image at all. A readable image with no barcode is not an error.
var ErrUnreadableImage = errors.New("unreadable_image")

// Decoder extracts barcode payloads from uploaded images.
type Decoder struct {
	log    *zap.Logger
	reader *multi.GenericMultipleBarcodeReader
}

func NewDecoder(log *zap.Logger) *Decoder {
	return &Decoder{
		log:    log.Named("scan.decoder"),
		reader: multi.NewGenericMultipleBarcodeReader(oned.NewMultiFormatUPCEANReader(nil)),
	}
}

// Decode returns every barcode found in the image. Detection is retried at
// 90-degree rotations; the first orientation that yields results wins.
func (d *Decoder) Decode(data []byte) ([]string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnreadableImage
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	for _, quarterTurns := range []int{0, 1, 2, 3} {
		bmp, err := gozxing.NewBinaryBitmapFromImage(rotate(img, quarterTurns))
		if err != nil {
			continue
		}
		results, err := d.reader.DecodeMultiple(bmp, hints)
		if err != nil || len(results) == 0 {
			continue
		}
		codes := make([]string, 0, len(results))
		for _, r := range results {
			codes = append(codes, r.GetText())
		}
		d.log.Debug("barcodes decoded",
			zap.Int("count", len(codes)),
			zap.Int("quarter_turns", quarterTurns),
		)
		return codes, nil
	}
	return nil, nil
}

// rotate returns the image turned clockwise by the given number of quarter turns.
func rotate(img image.Image, quarterTurns int) image.Image {
	if quarterTurns%4 == 0 {
		return img
	}
	src := img
	for i := 0; i < quarterTurns%4; i++ {
		src = rotate90(src)
	}
	return src
}

func rotate90(src image.Image) image.Image {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dy(), bounds.Dx()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.Set(bounds.Max.Y-1-y, x-bounds.Min.X, src.At(x, y))
		}
	}
	return dst
}
