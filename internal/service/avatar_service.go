package service

import (
	"bytes"
	"image"
	"image/draw"
	"mime"
	"net/http"
	"strings"

	"wanderlog/internal/models"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// AvatarSize is the edge length of processed profile pictures.
	AvatarSize = 256

	avatarWebPQuality = 80
	maxAvatarBytes    = 5 << 20
)

// AvatarService normalizes uploaded profile pictures: every accepted upload
// is center-cropped to a square, scaled to AvatarSize and re-encoded as WebP.
type AvatarService struct {
	maxSizeBytes int64
}

// NewAvatarService creates an AvatarService with the default size limit.
func NewAvatarService() *AvatarService {
	return &AvatarService{maxSizeBytes: maxAvatarBytes}
}

// Process validates and converts an uploaded picture. The returned bytes are
// always WebP regardless of the source format.
func (s *AvatarService) Process(content []byte, providedType string) ([]byte, error) {
	if len(content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > s.maxSizeBytes {
		return nil, models.NewValidationError("Picture too large (max 5 MiB)")
	}

	detectedType := http.DetectContentType(content)
	if !isAllowedPictureMIME(detectedType) {
		return nil, models.NewValidationError("Unsupported picture format")
	}
	if provided := normalizeContentType(providedType); strings.HasPrefix(provided, "image/") &&
		!isAllowedPictureMIME(provided) {
		return nil, models.NewValidationError("Unsupported picture format")
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	avatar := resizeToSquare(centerCropSquare(decoded), AvatarSize)

	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, avatar, &webp.Options{Quality: avatarWebPQuality}); err != nil {
		return nil, models.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

func centerCropSquare(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == h {
		return src
	}

	side := w
	if h < side {
		side = h
	}
	x := b.Min.X + (w-side)/2
	y := b.Min.Y + (h-side)/2

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), src, image.Point{X: x, Y: y}, draw.Src)
	return dst
}

func resizeToSquare(src image.Image, size int) image.Image {
	b := src.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func isAllowedPictureMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
