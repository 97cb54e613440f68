package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/logging"
	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/sony/gobreaker"
)

// RESTOptions tunes a RESTGateway. Zero values select defaults.
type RESTOptions struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	// BreakerFailures is the number of consecutive transport failures that
	// opens the breaker.
	BreakerFailures uint32
	// BreakerCooldown is how long the breaker stays open before probing.
	BreakerCooldown time.Duration
	Logger          logging.Logger
}

// RESTGateway is the JSON-over-HTTP binding for the CivicHub backend.
type RESTGateway struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     logging.Logger

	mu    sync.RWMutex
	token string
}

var _ Gateway = (*RESTGateway)(nil)
var _ AvatarUploader = (*RESTGateway)(nil)

func NewRESTGateway(baseURL string, opts RESTOptions) *RESTGateway {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}
	if opts.BreakerCooldown == 0 {
		opts.BreakerCooldown = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	g := &RESTGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    opts.HTTPClient,
		log:     opts.Logger.With("module", "gateway.rest"),
	}

	failures := opts.BreakerFailures
	g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "civichub-rest",
		MaxRequests: 1,
		Timeout:     opts.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			g.log.Warn(context.Background(), "circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return g
}

// setToken replaces the bearer token sent with every request.
func (g *RESTGateway) setToken(token string) {
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
}

func (g *RESTGateway) currentToken() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

type errorResponse struct {
	Message string `json:"message"`
}

// maxResponseBytes caps how much of a reply body is read.
const maxResponseBytes = 8 << 20

// reply is what a request produced when the transport itself worked.
type reply struct {
	status   int
	body     []byte
	tooLarge bool
}

// do sends one request through the breaker. Only transport failures and 5xx
// replies count against the breaker. Transport failures and an open breaker
// map to ErrUnavailable; 5xx replies map to ErrServer.
func (g *RESTGateway) do(ctx context.Context, method, path string, in any) (json.RawMessage, error) {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		payload = b
	}

	res, err := g.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if tok := g.currentToken(); tok != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
		}

		resp, err := g.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
		if err != nil {
			return nil, err
		}
		if len(body) > maxResponseBytes {
			return reply{status: resp.StatusCode, tooLarge: true}, nil
		}
		r := reply{status: resp.StatusCode, body: body}
		if resp.StatusCode >= http.StatusInternalServerError {
			return r, fmt.Errorf("server error: %s", resp.Status)
		}
		return r, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if r, ok := res.(reply); ok {
			return nil, fmt.Errorf("%w: %s", ErrServer, messageOf(r.body, err.Error()))
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return mapStatus(res.(reply))
}

// messageOf extracts the "error" field of a JSON error body.
func messageOf(body []byte, fallback string) string {
	var e errorResponse
	if json.Unmarshal(body, &e) == nil && e.Message != "" {
		return e.Message
	}
	return fallback
}

func mapStatus(r reply) (json.RawMessage, error) {
	if r.tooLarge {
		return nil, fmt.Errorf("%w: status %d, body over %d bytes", ErrResponseTooLarge, r.status, maxResponseBytes)
	}
	switch {
	case r.status >= 200 && r.status < 300:
		return r.body, nil
	case r.status == http.StatusUnauthorized || r.status == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, messageOf(r.body, http.StatusText(r.status)))
	case r.status == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, messageOf(r.body, http.StatusText(r.status)))
	case r.status == http.StatusConflict:
		return nil, fmt.Errorf("%w: %s", ErrConflict, messageOf(r.body, http.StatusText(r.status)))
	default:
		return nil, fmt.Errorf("request rejected (%d): %s", r.status, messageOf(r.body, http.StatusText(r.status)))
	}
}

// invalid wraps a decoding failure as ErrInvalidResponse.
func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
}

type authResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// adoptToken decodes an auth reply and keeps its token for later requests.
func (g *RESTGateway) adoptToken(body json.RawMessage) (*Session, error) {
	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, invalid(err)
	}
	if resp.Token == "" {
		return nil, nil
	}
	s, err := sessionFromToken(resp.Token)
	if err != nil {
		return nil, err
	}
	g.setToken(resp.Token)
	return s, nil
}

// SignIn posts the credentials to /api/auth/login.
func (g *RESTGateway) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body, err := g.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	s, err := g.adoptToken(body)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, invalid(errors.New("login response carries no token"))
	}
	return s, nil
}

// SignUp registers a new account and adopts the token of the reply, if any.
func (g *RESTGateway) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	body, err := g.do(ctx, http.MethodPost, "/api/auth/register", req)
	if err != nil {
		return nil, err
	}
	return g.adoptToken(body)
}

// SignOut notifies the backend when a token is held and drops it either way.
func (g *RESTGateway) SignOut(ctx context.Context) error {
	defer g.setToken("")
	if g.currentToken() == "" {
		return nil
	}
	_, err := g.do(ctx, http.MethodPost, "/api/auth/logout", nil)
	return err
}

// RestoreSession adopts a persisted token after decoding its claims.
func (g *RESTGateway) RestoreSession(ctx context.Context, token string) (*Session, error) {
	s, err := sessionFromToken(token)
	if err != nil {
		return nil, err
	}
	g.setToken(token)
	return s, nil
}

// Ping calls the health endpoint.
func (g *RESTGateway) Ping(ctx context.Context) error {
	_, err := g.do(ctx, http.MethodGet, "/api/health", nil)
	return err
}

func (g *RESTGateway) GetProfile(ctx context.Context, id string) (*models.User, error) {
	body, err := g.do(ctx, http.MethodGet, "/api/profiles/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	u, err := models.ParseUser(body)
	if err != nil {
		return nil, invalid(err)
	}
	return &u, nil
}

func (g *RESTGateway) ListProfilesByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	body, err := g.do(ctx, http.MethodGet, "/api/profiles?role="+url.QueryEscape(string(role)), nil)
	if err != nil {
		return nil, err
	}
	list, err := models.ParseUserList(body)
	if err != nil {
		return nil, invalid(err)
	}
	return list, nil
}

func (g *RESTGateway) InsertProfile(ctx context.Context, u models.User) (*models.User, error) {
	body, err := g.do(ctx, http.MethodPost, "/api/profiles", u)
	if err != nil {
		return nil, err
	}
	saved, err := models.ParseUser(body)
	if err != nil {
		return nil, invalid(err)
	}
	return &saved, nil
}

// ListComplaints returns every complaint visible to the caller.
func (g *RESTGateway) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	body, err := g.do(ctx, http.MethodGet, "/api/complaints", nil)
	if err != nil {
		return nil, err
	}
	list, err := models.ParseComplaintList(body)
	if err != nil {
		return nil, invalid(err)
	}
	return list, nil
}

func (g *RESTGateway) InsertComplaint(ctx context.Context, c models.Complaint) (*models.Complaint, error) {
	body, err := g.do(ctx, http.MethodPost, "/api/complaints", c)
	if err != nil {
		return nil, err
	}
	saved, err := models.ParseComplaint(body)
	if err != nil {
		return nil, invalid(err)
	}
	return &saved, nil
}

func (g *RESTGateway) UpdateComplaint(ctx context.Context, id string, patch models.ComplaintPatch) error {
	_, err := g.do(ctx, http.MethodPut, "/api/complaints/"+url.PathEscape(id)+"/status", patch)
	return err
}

func (g *RESTGateway) ListNotices(ctx context.Context) ([]models.Notice, error) {
	body, err := g.do(ctx, http.MethodGet, "/api/notices", nil)
	if err != nil {
		return nil, err
	}
	list, err := models.ParseNoticeList(body)
	if err != nil {
		return nil, invalid(err)
	}
	return list, nil
}

func (g *RESTGateway) InsertNotice(ctx context.Context, n models.Notice) (*models.Notice, error) {
	body, err := g.do(ctx, http.MethodPost, "/api/notices", n)
	if err != nil {
		return nil, err
	}
	saved, err := models.ParseNotice(body)
	if err != nil {
		return nil, invalid(err)
	}
	return &saved, nil
}

func (g *RESTGateway) DeleteNotice(ctx context.Context, id string) error {
	_, err := g.do(ctx, http.MethodDelete, "/api/notices/"+url.PathEscape(id), nil)
	return err
}

func (g *RESTGateway) ListVisitors(ctx context.Context) ([]models.Visitor, error) {
	body, err := g.do(ctx, http.MethodGet, "/api/visitors", nil)
	if err != nil {
		return nil, err
	}
	list, err := models.ParseVisitorList(body)
	if err != nil {
		return nil, invalid(err)
	}
	return list, nil
}

func (g *RESTGateway) InsertVisitor(ctx context.Context, v models.Visitor) (*models.Visitor, error) {
	body, err := g.do(ctx, http.MethodPost, "/api/visitors", v)
	if err != nil {
		return nil, err
	}
	saved, err := models.ParseVisitor(body)
	if err != nil {
		return nil, invalid(err)
	}
	return &saved, nil
}

func (g *RESTGateway) UpdateVisitorExit(ctx context.Context, id string, exit models.VisitorExit) error {
	_, err := g.do(ctx, http.MethodPut, "/api/visitors/"+url.PathEscape(id)+"/exit", exit)
	return err
}

func (g *RESTGateway) ListPayments(ctx context.Context) ([]models.Payment, error) {
	body, err := g.do(ctx, http.MethodGet, "/api/payments", nil)
	if err != nil {
		return nil, err
	}
	list, err := models.ParsePaymentList(body)
	if err != nil {
		return nil, invalid(err)
	}
	return list, nil
}

func (g *RESTGateway) MarkPaymentPaid(ctx context.Context, id string) error {
	_, err := g.do(ctx, http.MethodPut, "/api/payments/"+url.PathEscape(id)+"/pay", nil)
	return err
}

// RequestAvatarUpload asks the backend for a presigned upload URL.
func (g *RESTGateway) RequestAvatarUpload(ctx context.Context, contentType string) (*AvatarUpload, error) {
	body, err := g.do(ctx, http.MethodPost, "/api/profiles/me/avatar", map[string]string{"contentType": contentType})
	if err != nil {
		return nil, err
	}
	var up AvatarUpload
	if err := json.Unmarshal(body, &up); err != nil {
		return nil, invalid(err)
	}
	if up.URL == "" || up.PublicURL == "" {
		return nil, invalid(errors.New("empty upload url"))
	}
	return &up, nil
}

// Close releases idle connections.
func (g *RESTGateway) Close() error {
	g.http.CloseIdleConnections()
	return nil
}
