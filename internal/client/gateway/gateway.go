package gateway

import (
	"context"

	"github.com/dmitrijs2005/civichub/internal/models"
)

// Session is an authenticated backend session.
type Session struct {
	Token  string
	UserID string
	Email  string
}

// SignUpRequest carries the account credential and the profile fields
// captured at registration.
type SignUpRequest struct {
	Email      string      `json:"email"`
	Password   string      `json:"password"`
	Name       string      `json:"name"`
	Role       models.Role `json:"role"`
	UnitNumber string      `json:"unitNumber,omitempty"`
}

// Gateway is the backend surface used by the client services. The REST and
// Postgres implementations map failures to the sentinel errors in errors.go
// so callers never depend on transport details.
type Gateway interface {
// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SignUp creates an account. The returned session is nil when the
	// backend does not sign the new account in.
	SignUp(ctx context.Context, req SignUpRequest) (*Session, error)
	SignOut(ctx context.Context) error
	// RestoreSession adopts a previously persisted token.
	RestoreSession(ctx context.Context, token string) (*Session, error)
// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

// GetProfile returns ErrNotFound when the account has no profile.
	GetProfile(ctx context.Context, id string) (*models.User, error)
	ListProfilesByRole(ctx context.Context, role models.Role) ([]models.User, error)
	InsertProfile(ctx context.Context, u models.User) (*models.User, error)

	ListComplaints(ctx context.Context) ([]models.Complaint, error)
	InsertComplaint(ctx context.Context, c models.Complaint) (*models.Complaint, error)
	UpdateComplaint(ctx context.Context, id string, patch models.ComplaintPatch) error

	ListNotices(ctx context.Context) ([]models.Notice, error)
	InsertNotice(ctx context.Context, n models.Notice) (*models.Notice, error)
	DeleteNotice(ctx context.Context, id string) error

	ListVisitors(ctx context.Context) ([]models.Visitor, error)
	InsertVisitor(ctx context.Context, v models.Visitor) (*models.Visitor, error)
	UpdateVisitorExit(ctx context.Context, id string, exit models.VisitorExit) error

	ListPayments(ctx context.Context) ([]models.Payment, error)
	MarkPaymentPaid(ctx context.Context, id string) error

// Close releases connections held by the gateway.
	Close() error
}

// AvatarUpload is a presigned upload target for a profile picture.
type AvatarUpload struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	PublicURL string `json:"publicUrl"`
}

// AvatarUploader is implemented by bindings that can hand out presigned
// avatar upload URLs.
type AvatarUploader interface {
	RequestAvatarUpload(ctx context.Context, contentType string) (*AvatarUpload, error)
}
