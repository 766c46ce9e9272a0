package storage

import (
	"io"
	"log"
	"net/http"

	"blog/config"
)

// StorageAPI is implemented by every place post images can be kept in
type StorageAPI interface {
	Save(path, mimeType string, reader io.Reader) (int64, error)
	Delete(path string) error
	// URL is the public address of the file
	URL(path string) string
	// Serve is only needed for storages that are not publicly reachable on their own
	Serve(path string, request *http.Request, writer http.ResponseWriter)
}

var defaultStorage StorageAPI

func Init() {
	if config.S3_BUCKET != "" {
		log.Printf("Storage: S3 bucket %s", config.S3_BUCKET)
		defaultStorage = NewS3Storage(S3Config{
			Bucket:   config.S3_BUCKET,
			Region:   config.S3_REGION,
			Endpoint: config.S3_ENDPOINT,
			Key:      config.S3_KEY,
			Secret:   config.S3_SECRET,
			Prefix:   config.S3_PREFIX,
		})
		return
	}
	log.Printf("Storage: disk at %s", config.MEDIA_ROOT)
	defaultStorage = NewDiskStorage(config.MEDIA_ROOT, config.MEDIA_URL)
}

func SetDefault(s StorageAPI) {
	defaultStorage = s
}

func Default() StorageAPI {
	if defaultStorage == nil {
		panic("no storage available")
	}
	return defaultStorage
}

// URL returns the public URL of path in the default storage
func URL(path string) string {
	if path == "" || defaultStorage == nil {
		return ""
	}
	return defaultStorage.URL(path)
}
