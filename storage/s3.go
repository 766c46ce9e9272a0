package storage

import (
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const defaultPresignDuration = 15 * time.Minute

type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string // empty for AWS itself
	Key      string
	Secret   string
	Prefix   string // key prefix inside the bucket
}

type S3Storage struct {
	config   S3Config
	s3Client *s3.S3
}

func NewS3Storage(cfg S3Config) *S3Storage {
	awsConfig := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.Key != "" {
		awsConfig = awsConfig.WithCredentials(credentials.NewStaticCredentials(cfg.Key, cfg.Secret, ""))
	}
	if cfg.Endpoint != "" {
		awsConfig = awsConfig.WithEndpoint(cfg.Endpoint).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		panic(err)
	}
	return &S3Storage{
		config:   cfg,
		s3Client: s3.New(sess),
	}
}

func (s *S3Storage) remotePath(path string) string {
	path = strings.TrimPrefix(path, "/")
	if s.config.Prefix == "" {
		return path
	}
	return strings.TrimSuffix(s.config.Prefix, "/") + "/" + path
}

func (s *S3Storage) Save(path, mimeType string, reader io.Reader) (int64, error) {
	counter := &countingReader{Reader: reader}
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	input := s3manager.UploadInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.remotePath(path)),
		Body:   counter,
	}
	if mimeType != "" {
		input.ContentType = aws.String(mimeType)
	}
	_, err := uploader.Upload(&input)
	return counter.n, err
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.remotePath(path)),
	})
	return err
}

func (s *S3Storage) URL(path string) string {
	key := s.remotePath(path)
	if s.config.Endpoint != "" {
		return strings.TrimSuffix(s.config.Endpoint, "/") + "/" + s.config.Bucket + "/" + key
	}
	return "https://" + s.config.Bucket + ".s3." + s.config.Region + ".amazonaws.com/" + key
}

// Serve redirects to the object, S3 serves it directly
func (s *S3Storage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.remotePath(path)),
	})
	url, err := req.Presign(defaultPresignDuration)
	if err != nil {
		log.Printf("S3 presign error: %v", err)
		http.Error(writer, "storage error", http.StatusInternalServerError)
		return
	}
	http.Redirect(writer, request, url, http.StatusFound)
}

type countingReader struct {
	io.Reader
	n int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	r.n += int64(n)
	return n, err
}
