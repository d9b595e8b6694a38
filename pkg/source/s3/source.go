package s3

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

const separator = "/"

// Source reads documentation files stored as objects of a bucket.
type Source struct {
	client *minio.Client
	bucket string
	prefix string
}

// Stat implements source.Source.
func (s *Source) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	key := s.key(name)

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return s.statDir(ctx, key)
		}

		return nil, errors.WithStack(err)
	}

	return &fileInfo{
		name:    path.Base(key),
		size:    info.Size,
		modTime: info.LastModified,
	}, nil
}

func (s *Source) statDir(ctx context.Context, key string) (fs.FileInfo, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:  strings.TrimSuffix(key, separator) + separator,
		MaxKeys: 1,
	})

	for obj := range objects {
		if obj.Err != nil {
			return nil, errors.WithStack(obj.Err)
		}

		return &fileInfo{name: path.Base(key), isDir: true}, nil
	}

	return nil, fs.ErrNotExist
}

// ReadFile implements source.Source.
func (s *Source) ReadFile(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, fs.ErrNotExist
		}

		return nil, errors.WithStack(err)
	}

	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, fs.ErrNotExist
		}

		return nil, errors.WithStack(err)
	}

	return data, nil
}

// Walk implements source.Source.
func (s *Source) Walk(ctx context.Context, fn source.WalkFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prefix := ""
	if s.prefix != "" {
		prefix = s.prefix + separator
	}

	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for obj := range objects {
		if obj.Err != nil {
			return errors.WithStack(obj.Err)
		}

		if strings.HasSuffix(obj.Key, separator) {
			continue
		}

		name := strings.TrimPrefix(obj.Key, prefix)

		info := &fileInfo{
			name:    path.Base(name),
			size:    obj.Size,
			modTime: obj.LastModified,
		}

		if err := fn(name, info); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}

// WriteFile implements source.Writable.
func (s *Source) WriteFile(ctx context.Context, name string, data []byte) error {
	if _, err := s.Stat(ctx, name); err == nil {
		return fs.ErrExist
	} else if !errors.Is(err, fs.ErrNotExist) {
		return errors.WithStack(err)
	}

	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/markdown",
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *Source) key(name string) string {
	name = source.Clean(name)
	if s.prefix == "" {
		return name
	}

	return path.Join(s.prefix, name)
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}

type fileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return fi.size }
func (fi *fileInfo) ModTime() time.Time { return fi.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.isDir }
func (fi *fileInfo) Sys() any           { return nil }

func (fi *fileInfo) Mode() fs.FileMode {
	if fi.isDir {
		return fs.ModeDir | 0o755
	}

	return 0o644
}

func NewSource(client *minio.Client, bucket string, prefix string) *Source {
	return &Source{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, separator),
	}
}

var (
	_ source.Source   = &Source{}
	_ source.Writable = &Source{}
	_ fs.FileInfo     = &fileInfo{}
)
