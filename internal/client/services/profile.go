package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/civichub/internal/client/gateway"
	"github.com/dmitrijs2005/civichub/internal/client/state"
	"github.com/dmitrijs2005/civichub/internal/filex"
	"github.com/dmitrijs2005/civichub/internal/logging"
	"github.com/dmitrijs2005/civichub/internal/netx"
)

// MaxAvatarSize caps avatar uploads.
const MaxAvatarSize = 2 << 20

// ProfileService changes the active user's own profile.
type ProfileService interface {
	// UploadAvatar sends the image at path to object storage and points the
	// active identity at it. It returns the new public URL.
	UploadAvatar(ctx context.Context, path string) (string, error)
}

type profileService struct {
	gw     gateway.Gateway
	store  *state.Store
	client *http.Client
	log    logging.Logger
}

// NewProfileService returns a ProfileService. client performs the upload to
// storage; nil means http.DefaultClient.
func NewProfileService(gw gateway.Gateway, store *state.Store, client *http.Client, log logging.Logger) ProfileService {
	return &profileService{gw: gw, store: store, client: client, log: log.With("module", "profile")}
}

// UploadAvatar uploads the image at path through a presigned URL and sets
// the resulting object URL as the user's avatar. Gateways without
// AvatarUploader return ErrNotSupported.
func (p *profileService) UploadAvatar(ctx context.Context, path string) (string, error) {
	u := p.store.Identity()
	if u == nil {
		return "", ErrNoIdentity
	}
	up, ok := p.gw.(gateway.AvatarUploader)
	if !ok {
		return "", fmt.Errorf("%w: avatar upload", ErrNotSupported)
	}

	data, contentType, err := filex.ReadImage(path, MaxAvatarSize)
	if err != nil {
		return "", err
	}

	target, err := up.RequestAvatarUpload(ctx, contentType)
	if err != nil {
		return "", fmt.Errorf("request upload: %w", err)
	}
	if err := netx.UploadPresigned(ctx, p.client, target.URL, contentType, data); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	p.log.Info(ctx, "avatar uploaded", "user_id", u.ID, "key", target.Key)

	u.Avatar = target.PublicURL
	p.store.SetIdentity(u)
	return target.PublicURL, nil
}
