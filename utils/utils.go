package utils

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/nfnt/resize"
)

// MakeFragmentKey returns the cache key of a rendered template fragment,
// varied on the given values: template.cache.<name>.<md5 of values joined by ':'>
func MakeFragmentKey(name string, varyOn ...any) string {
	parts := make([]string, 0, len(varyOn))
	for _, v := range varyOn {
		parts = append(parts, fmt.Sprint(v))
	}
	sum := md5.Sum([]byte(strings.Join(parts, ":")))
	return "template.cache." + name + "." + hex.EncodeToString(sum[:])
}

// FragmentKeyPrefix is shared by all keys of the same fragment
func FragmentKeyPrefix(name string) string {
	return "template.cache." + name + "."
}

// LoginURL builds the login redirect that brings the user back to next
func LoginURL(loginPath, next string) string {
	return loginPath + "?next=" + url.QueryEscape(next)
}

// SafeRedirect only allows local absolute paths, anything else falls back to def
func SafeRedirect(next, def string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return def
	}
	return next
}

func FormatDate(unix int64) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).Format("2 Jan 2006 15:04")
}

type ImageThumbConverted struct {
	ThumbSize int64
	NewX      uint16
	NewY      uint16
	OldX      uint16
	OldY      uint16
}

// CreateThumb resizes the image to fit in size x size and writes it out as JPEG
func CreateThumb(size uint, reader io.Reader, writer io.Writer) (result ImageThumbConverted, err error) {
	image, _, err := image.Decode(reader)
	if err != nil {
		return result, err
	}
	var newBuf bytes.Buffer
	newImage := resize.Thumbnail(size, size, image, resize.Lanczos3)
	if err = jpeg.Encode(&newBuf, newImage, &jpeg.Options{Quality: 90}); err != nil {
		return
	}
	imageRect := newImage.Bounds().Size()
	result.NewX = uint16(imageRect.X)
	result.NewY = uint16(imageRect.Y)

	imageRect = image.Bounds().Size()
	result.OldX = uint16(imageRect.X)
	result.OldY = uint16(imageRect.Y)

	result.ThumbSize, err = io.Copy(writer, &newBuf)
	return
}
