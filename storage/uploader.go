package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// AvatarKey builds an object key like "avatars/player-one-3f2a9c1b.png".
func AvatarKey(displayName, ext string) string {
	base := slug.Make(displayName)
	if base == "" {
		base = "user"
	}
	return path.Join("avatars", fmt.Sprintf("%s-%s%s", base, strings.SplitN(uuid.NewString(), "-", 2)[0], ext))
}
