package handlers

import (
	"bytes"
	"errors"
	"image"
	"io"
	"log"
	"net/http"
	"strings"

	"blog/config"
	"blog/models"
	"blog/storage"
	"blog/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxImageSize = 10 << 20
	// Decoding allocates about 4 bytes per pixel
	maxImagePixels = 40_000_000
	imagesDir    = "posts/"
	thumbsDir    = "posts/thumbs/"
)

var errNotAnImage = errors.New(errInvalidImage)

type uploadedImage struct {
	data  []byte
	mime  *mimetype.MIME
	thumb bytes.Buffer
	size  utils.ImageThumbConverted
}

// readImage returns the uploaded image of the field, nil when nothing was uploaded.
// The whole content must decode as an image, the declared content type is not trusted.
// The thumbnail is made here, so a broken image never reaches the storage
func readImage(c *gin.Context, field string) (*uploadedImage, error) {
	fileHeader, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if fileHeader.Size == 0 {
		return nil, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageSize {
		return nil, errNotAnImage
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, errNotAnImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxImagePixels {
		return nil, errNotAnImage
	}
	img := &uploadedImage{data: data, mime: mime}
	if img.size, err = utils.CreateThumb(uint(config.THUMB_SIZE), bytes.NewReader(data), &img.thumb); err != nil {
		log.Printf("CreateThumb error for %s: %v", fileHeader.Filename, err)
		return nil, errNotAnImage
	}
	return img, nil
}

// save stores the original and the thumbnail for the post cards
func (img *uploadedImage) save() (result models.PostImage, err error) {
	name := uuid.NewString()
	s := storage.Default()
	result.Image = imagesDir + name + img.mime.Extension()
	if _, err = s.Save(result.Image, img.mime.String(), bytes.NewReader(img.data)); err != nil {
		return models.PostImage{}, err
	}
	result.Thumb = thumbsDir + name + ".jpg"
	if _, err = s.Save(result.Thumb, "image/jpeg", bytes.NewReader(img.thumb.Bytes())); err != nil {
		deleteImages(result.Image)
		return models.PostImage{}, err
	}
	result.ThumbWidth = img.size.NewX
	result.ThumbHeight = img.size.NewY
	return result, nil
}

// deleteImages is best effort, a leftover file is not worth failing the request
func deleteImages(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := storage.Default().Delete(path); err != nil {
			log.Printf("Cannot delete %s: %v", path, err)
		}
	}
}
