package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/internal/storage"
	"go.uber.org/zap"
)

// ProfileImages uploads and replaces user profile images.
type ProfileImages struct {
	store  domain_auth.ImageStore
	logger *zap.Logger
}

func NewProfileImages(store domain_auth.ImageStore, logger *zap.Logger) *ProfileImages {
	return &ProfileImages{store: store, logger: logger.Named("ProfileImages")}
}

// Store uploads img and returns the name to persist on the user. A nil image or
// disabled storage yields "".
func (p *ProfileImages) Store(ctx context.Context, img *domain_auth.ProfileImage) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", nil
	}

	obj, err := storage.PrepareImage(img.Filename, img.Data)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) {
			return "", fmt.Errorf("%s: %w", img.Filename, domain.ErrUnsupportedMedia)
		}
		return "", err
	}

	if err := p.store.Upload(ctx, obj.Key, img.Data, obj.ContentType); err != nil {
		if errors.Is(err, storage.ErrDisabled) {
			p.logger.Warn("Storage disabled, profile image dropped", zap.String("filename", img.Filename))
			return "", nil
		}
		return "", fmt.Errorf("failed to upload profile image: %w", err)
	}

	return obj.Name, nil
}

// Replace uploads img and deletes the previous image. Returns current unchanged
// when no new image was uploaded. Deleting the old object is best-effort.
func (p *ProfileImages) Replace(ctx context.Context, current string, img *domain_auth.ProfileImage) (string, error) {
	name, err := p.Store(ctx, img)
	if err != nil {
		return "", err
	}
	if name == "" {
		return current, nil
	}

	if current != "" {
		if err := p.store.Delete(ctx, storage.UserImageKey(current)); err != nil {
			p.logger.Warn("Failed to delete old image", zap.String("image", current), zap.Error(err))
		}
	}
	return name, nil
}
