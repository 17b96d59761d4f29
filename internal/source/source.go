package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Kind identifies where a source lives.
type Kind string

const (
	KindFile  Kind = "file"
	KindStdin Kind = "stdin"
	KindS3    Kind = "s3"
)

const s3Scheme = "s3://"

// Location is a parsed source string.
type Location struct {
	Kind   Kind
	Path   string // file path (KindFile)
	Bucket string // bucket name (KindS3)
	Key    string // object key (KindS3)
}

func (l Location) String() string {
	switch l.Kind {
	case KindStdin:
		return "-"
	case KindS3:
		return s3Scheme + l.Bucket + "/" + l.Key
	default:
		return l.Path
	}
}

// Parse classifies a source string.
func Parse(spec string) (Location, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		return Location{}, fmt.Errorf("empty source")
	case spec == "-":
		return Location{Kind: KindStdin}, nil
	case strings.HasPrefix(spec, s3Scheme):
		rest := strings.TrimPrefix(spec, s3Scheme)
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || strings.Trim(key, "/") == "" {
			return Location{}, fmt.Errorf("invalid s3 source %q: want s3://bucket/key", spec)
		}
		return Location{Kind: KindS3, Bucket: bucket, Key: key}, nil
	default:
		return Location{Kind: KindFile, Path: spec}, nil
	}
}

// S3Config holds the connection settings for s3:// sources.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Opener opens sources. The zero value reads files and os.Stdin; s3:// sources
// additionally need S3 to be configured.
type Opener struct {
	S3    S3Config
	Stdin io.Reader

	initOnce sync.Once
	client   *minio.Client
	initErr  error
}

// NewOpener returns an Opener using the given S3 settings.
func NewOpener(cfg S3Config) *Opener {
	return &Opener{S3: cfg}
}

// Open returns a reader for spec. The caller closes it.
func (o *Opener) Open(ctx context.Context, spec string) (io.ReadCloser, error) {
	loc, err := Parse(spec)
	if err != nil {
		return nil, err
	}
	switch loc.Kind {
	case KindStdin:
		in := o.Stdin
		if in == nil {
			in = os.Stdin
		}
		return io.NopCloser(in), nil
	case KindS3:
		client, err := o.s3Client()
		if err != nil {
			return nil, err
		}
		obj, err := client.GetObject(ctx, loc.Bucket, loc.Key, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", loc, err)
		}
		// GetObject is lazy; Stat surfaces a missing object here rather
		// than on first read.
		if _, err := obj.Stat(); err != nil {
			obj.Close()
			return nil, fmt.Errorf("opening %s: %w", loc, err)
		}
		return obj, nil
	default:
		f, err := os.Open(loc.Path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", loc.Path, err)
		}
		return f, nil
	}
}

// Stamp returns a version token for spec that changes when its content does:
// modification time and size for files, the ETag for S3 objects. Standard
// input has no stable version and yields "".
func (o *Opener) Stamp(ctx context.Context, spec string) (string, error) {
	loc, err := Parse(spec)
	if err != nil {
		return "", err
	}
	switch loc.Kind {
	case KindStdin:
		return "", nil
	case KindS3:
		client, err := o.s3Client()
		if err != nil {
			return "", err
		}
		info, err := client.StatObject(ctx, loc.Bucket, loc.Key, minio.StatObjectOptions{})
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", loc, err)
		}
		return info.ETag, nil
	default:
		info, err := os.Stat(loc.Path)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", loc.Path, err)
		}
		return strconv.FormatInt(info.ModTime().UnixNano(), 10) + "-" + strconv.FormatInt(info.Size(), 10), nil
	}
}

func (o *Opener) s3Client() (*minio.Client, error) {
	o.initOnce.Do(func() {
		o.client, o.initErr = newS3Client(o.S3)
	})
	return o.client, o.initErr
}

func newS3Client(cfg S3Config) (*minio.Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return client, nil
}
