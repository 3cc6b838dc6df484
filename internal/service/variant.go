package service

import (
	"Go_Mall/internal/repo"
	"Go_Mall/internal/storage"
	"Go_Mall/model"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"math"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"

	"gorm.io/gorm/clause"
)

// Derived sizes, long edge in pixels.
var variantSizes = []int{256, 512, 1024}

const lossyQuality = 90

// GenerateVariants derives the fixed resized renditions of an original
// asset and records each as its own asset row. Non-original assets are a
// no-op. Each size is attempted independently; one failing never blocks the
// others, and re-running upserts instead of duplicating rows.
func GenerateVariants(ctx context.Context, asset *model.ImageAsset) error {
	if asset.Variant != model.VariantOriginal {
		return nil
	}
	if storage.Default == nil {
		return fmt.Errorf("storage not initialized")
	}
	exists, err := storage.Default.Exists(ctx, asset.Path)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSourceMissing
	}
	reader, _, err := storage.Default.Get(ctx, asset.Path)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(reader)
	_ = reader.Close()
	if err != nil {
		return err
	}

	src, format, err := decodeImage(data)
	if err != nil {
		return err
	}
	bounds := src.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()
	if originalWidth < 1 || originalHeight < 1 {
		return ErrInvalidImage
	}

	var errs []error
	for _, size := range variantSizes {
		if err := generateVariant(ctx, asset, src, format, originalWidth, originalHeight, size); err != nil {
			log.Printf("variant %d for asset %d failed: %v", size, asset.ID, err)
			errs = append(errs, fmt.Errorf("variant %d: %w", size, err))
		}
	}
	return errors.Join(errs...)
}

func generateVariant(ctx context.Context, asset *model.ImageAsset, src image.Image, format string, originalWidth, originalHeight, size int) error {
	width, height := variantDimensions(originalWidth, originalHeight, size)

	// A zero-value RGBA canvas is fully transparent; Src copies the scaled
	// pixels including alpha, so PNG and GIF transparency survives.
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	encoded, err := encodeImage(format, dst)
	if err != nil {
		return err
	}

	target := VariantPath(asset.Path, size)
	if err := storage.Default.Put(
		ctx,
		target,
		bytes.NewReader(encoded),
		int64(len(encoded)),
		storage.PutOptions{ContentType: "image/" + format},
	); err != nil {
		return err
	}

	variant := &model.ImageAsset{
		UploadID:  asset.UploadID,
		ProductID: asset.ProductID,
		Path:      target,
		Variant:   strconv.Itoa(size),
		Width:     width,
		Height:    height,
		Size:      int64(len(encoded)),
		IsPrimary: false,
	}
	return repo.Db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "upload_id"},
			{Name: "product_id"},
			{Name: "variant"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"path",
			"width",
			"height",
			"size",
			"updated_at",
		}),
	}).Create(variant).Error
}

// variantDimensions fits the long edge to size, preserving aspect ratio.
func variantDimensions(originalWidth, originalHeight, size int) (int, int) {
	aspectRatio := float64(originalWidth) / float64(originalHeight)
	var width, height int
	if originalWidth > originalHeight {
		width = size
		height = int(math.Round(float64(size) / aspectRatio))
	} else {
		height = size
		width = int(math.Round(float64(size) * aspectRatio))
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// VariantPath derives the storage path for a resized rendition: same
// directory and basename, suffixed with the target size.
func VariantPath(originalPath string, size int) string {
	ext := path.Ext(originalPath)
	base := strings.TrimSuffix(originalPath, ext)
	return fmt.Sprintf("%s_%d%s", base, size, ext)
}

func decodeImage(data []byte) (image.Image, string, error) {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		img, err := jpeg.Decode(bytes.NewReader(data))
		return img, "jpeg", wrapDecodeErr(err)
	case "image/png":
		img, err := png.Decode(bytes.NewReader(data))
		return img, "png", wrapDecodeErr(err)
	case "image/gif":
		img, err := gif.Decode(bytes.NewReader(data))
		return img, "gif", wrapDecodeErr(err)
	case "image/webp":
		img, err := webp.Decode(bytes.NewReader(data))
		return img, "webp", wrapDecodeErr(err)
	default:
		return nil, "", ErrInvalidImage
	}
}

func wrapDecodeErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidImage, err)
}

func encodeImage(format string, img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: lossyQuality}); err != nil {
			return nil, err
		}
	case "png":
		encoder := png.Encoder{CompressionLevel: png.BestCompression}
		if err := encoder.Encode(&buf, img); err != nil {
			return nil, err
		}
	case "gif":
		// palette.Plan9 has no transparent entry, so quantizing onto it
		// would turn every transparent pixel opaque. Reserve index 0.
		pal := append(color.Palette{color.Transparent}, palette.Plan9[:255]...)
		paletted := image.NewPaletted(img.Bounds(), pal)
		draw.FloydSteinberg.Draw(paletted, img.Bounds(), img, image.Point{})
		if err := gif.Encode(&buf, paletted, nil); err != nil {
			return nil, err
		}
	case "webp":
		if err := webp.Encode(&buf, img, &webp.Options{Quality: lossyQuality}); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}
	return buf.Bytes(), nil
}
