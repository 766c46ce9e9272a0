package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS     = ""        // e.g. "example.com,example2.com"
	MYSQL_DSN       = ""        // MySQL will be used if this is set
	POSTGRES_DSN    = ""        // PostgreSQL will be used if MYSQL_DSN is not configured and this is set
	SQLITE_FILE     = "blog.db" // SQLite is the fallback when no server DSN is configured
	BIND_ADDRESS    = "0.0.0.0:8080"
	DEBUG_MODE      = true
	SESSION_KEY     = "this is a long key"
	SESSION_MAX_AGE = 14 * 86400 // 2 weeks
	CORS_ORIGINS    = ""         // e.g. "https://blog.example.com,https://www.blog.example.com"

	// Media files (post images). If S3_BUCKET is set, images go to S3, otherwise to MEDIA_ROOT on disk
	MEDIA_ROOT  = "media"
	MEDIA_URL   = "/media/"
	S3_BUCKET   = ""
	S3_REGION   = "us-east-1"
	S3_ENDPOINT = "" // for S3 compatible services (MinIO, etc)
	S3_KEY      = ""
	S3_SECRET   = ""
	S3_PREFIX   = "posts"
	THUMB_SIZE  = 960

	// Template fragment cache
	CACHE_ENABLED  = true
	CACHE_TIMEOUT  = 20 // seconds
	POSTS_PER_PAGE = 10

	// Initial admin account, created on start-up if missing
	ADMIN_USERNAME = ""
	ADMIN_PASSWORD = ""
)

func init() {
	// .env is optional, real environment variables take precedence
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("POSTGRES_DSN", &POSTGRES_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvInt("SESSION_MAX_AGE", &SESSION_MAX_AGE)
	readEnvString("CORS_ORIGINS", &CORS_ORIGINS)
	readEnvString("MEDIA_ROOT", &MEDIA_ROOT)
	readEnvString("MEDIA_URL", &MEDIA_URL)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvInt("THUMB_SIZE", &THUMB_SIZE)
	readEnvBool("CACHE_ENABLED", &CACHE_ENABLED)
	readEnvInt("CACHE_TIMEOUT", &CACHE_TIMEOUT)
	readEnvInt("POSTS_PER_PAGE", &POSTS_PER_PAGE)
	readEnvString("ADMIN_USERNAME", &ADMIN_USERNAME)
	readEnvString("ADMIN_PASSWORD", &ADMIN_PASSWORD)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Config: invalid value for %s: %v", name, err)
		return
	}
	*value = i
}
