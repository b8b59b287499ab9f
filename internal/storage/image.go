package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

// UserImagePrefix is the key prefix of profile images; users store only the suffix.
const UserImagePrefix = "users/"

// ErrNotImage is returned when uploaded content is not a recognised image.
var ErrNotImage = fmt.Errorf("uploaded file is not an image")

// ImageObject describes where an upload will be stored.
type ImageObject struct {
	Key         string // full object key, users/<uuid><ext>
	Name        string // <uuid><ext>, persisted on the user
	ContentType string
}

// PrepareImage sniffs data and names the object. The extension of the original
// filename wins when present.
func PrepareImage(filename string, data []byte) (*ImageObject, error) {
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("detect file type: %w", err)
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = "." + kind.Extension
	}
	name := uuid.NewString() + ext

	return &ImageObject{
		Key:         UserImageKey(name),
		Name:        name,
		ContentType: kind.MIME.Value,
	}, nil
}

func UserImageKey(name string) string {
	return UserImagePrefix + name
}
