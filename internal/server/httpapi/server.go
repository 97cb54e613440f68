package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/civichub/internal/auth"
	"github.com/dmitrijs2005/civichub/internal/logging"
	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/dmitrijs2005/civichub/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Accounts signs users in and verifies their tokens.
type Accounts interface {
	TokenVerifier
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Register(ctx context.Context, email, password string) (*services.Session, error)
}

// Profiles reads and creates user profiles.
type Profiles interface {
	RoleLookup
	Get(ctx context.Context, id string) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	Residents(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, caller *auth.Claims, u models.User) (*models.User, error)
}

type Complaints interface {
	List(ctx context.Context) ([]models.Complaint, error)
	Create(ctx context.Context, caller *auth.Claims, c models.Complaint) (*models.Complaint, error)
	UpdateStatus(ctx context.Context, id string, patch models.ComplaintPatch) (*models.Complaint, error)
}

type Notices interface {
	List(ctx context.Context) ([]models.Notice, error)
	Create(ctx context.Context, caller *auth.Claims, n models.Notice) (*models.Notice, error)
	Delete(ctx context.Context, id string) error
}

type Visitors interface {
	List(ctx context.Context) ([]models.Visitor, error)
	Create(ctx context.Context, v models.Visitor) (*models.Visitor, error)
	Exit(ctx context.Context, id string, exit models.VisitorExit) (*models.Visitor, error)
}

type Payments interface {
	List(ctx context.Context) ([]models.Payment, error)
	Pay(ctx context.Context, id string) (*models.Payment, error)
}

type Avatars interface {
	RequestUpload(ctx context.Context, userID, contentType string) (*services.AvatarUpload, error)
}

// Pinger reports backend storage health; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the services the API is served from.
type Deps struct {
	Accounts   Accounts
	Profiles   Profiles
	Complaints Complaints
	Notices    Notices
	Visitors   Visitors
	Payments   Payments
	Avatars    Avatars
	DB         Pinger
}

// Server holds the handlers of the /api surface. Build the http.Handler
// with Router.
type Server struct {
	deps        Deps
	corsOrigins []string
	logger      logging.Logger
}

// NewServer constructs a Server. corsOrigins lists the allowed browser
// origins; "*" allows any.
func NewServer(d Deps, corsOrigins []string, l logging.Logger) *Server {
	return &Server{deps: d, corsOrigins: corsOrigins, logger: l.With("module", "http_server")}
}

// Router returns the chi router: request logging and metrics, CORS, the
// public auth and health routes, and the bearer-protected resources. Unknown
// routes and methods answer with a JSON error body.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(s.logger))
	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", s.Health)
		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		api.Post("/auth/logout", s.Logout)

		api.Group(func(p chi.Router) {
			p.Use(WithAuth(s.deps.Accounts))

			p.Get("/profiles", s.ListProfiles)
			p.Post("/profiles", s.CreateProfile)
			p.Post("/profiles/me/avatar", s.RequestAvatarUpload)
			p.Get("/profiles/{id}", s.GetProfile)
			p.Get("/residents", s.ListResidents)

			p.Get("/complaints", s.ListComplaints)
			p.Post("/complaints", s.CreateComplaint)
			p.Put("/complaints/{id}/status", s.UpdateComplaintStatus)

			p.Get("/notices", s.ListNotices)
			p.Post("/notices", s.CreateNotice)
			p.With(RequireRole(s.deps.Profiles, models.RoleAdmin)).Delete("/notices/{id}", s.DeleteNotice)

			p.Get("/visitors", s.ListVisitors)
			p.Post("/visitors", s.CreateVisitor)
			p.Put("/visitors/{id}/exit", s.LogVisitorExit)

			p.Get("/payments", s.ListPayments)
			p.Put("/payments/{id}/pay", s.PayBill)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

// Health handles GET /api/health. It answers 503 when the database does not
// respond to a ping.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if s.deps.DB != nil {
		if err := s.deps.DB.PingContext(r.Context()); err != nil {
			s.logger.Warn(r.Context(), "health check failed", "error", err)
			WriteError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
