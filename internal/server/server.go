package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"kindbridge/internal/service"
	"kindbridge/internal/storage"
	"kindbridge/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	templates *template.Template

	accounts  *service.AccountService
	listings  *service.ListingService
	responses *service.ResponseService
	donations *service.DonationService

	photos *storage.PhotoStorage
	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	accounts *service.AccountService,
	listings *service.ListingService,
	responses *service.ResponseService,
	donations *service.DonationService,
	photos *storage.PhotoStorage,
) (*Service, error) {
	mux := flow.New()

	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie hash key: %w", err)
	}
	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie block key: %w", err)
	}

	s := &Service{
		logger: logger,
		config: config,
		cookie: securecookie.New(hashKey, blockKey),

		accounts:  accounts,
		listings:  listings,
		responses: responses,
		donations: donations,
		photos:    photos,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/", s.handleHome, http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/register", s.handleGetRegister, http.MethodGet)
	r.HandleFunc("/register", s.handlePostRegister, http.MethodPost)
	r.HandleFunc("/login", s.handleGetLogin, http.MethodGet)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/dashboard/:role", s.handleDashboard, http.MethodGet)
	})

	// Needy area
	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)
		r.Use(s.RequireRole(types.UserRoleNeedy))

		r.HandleFunc("/needy/create-request", s.handleGetCreateRequest, http.MethodGet)
		r.HandleFunc("/needy/create-request", s.handlePostCreateRequest, http.MethodPost)
		r.HandleFunc("/needy/my-requests", s.handleMyRequests, http.MethodGet)
		r.HandleFunc("/needy/close-request/:id", s.handleCloseRequest, http.MethodGet)
		r.HandleFunc("/needy/available-help", s.handleAvailableHelp, http.MethodGet)
		r.HandleFunc("/needy/respond-to-offer/:id/:kind", s.handleNeedyRespond, http.MethodPost)
		r.HandleFunc("/needy/responses", s.handleNeedyResponses, http.MethodGet)
		r.HandleFunc("/needy/mark-response-contacted/:id", s.handleMarkResponseContacted, http.MethodPost)
		r.HandleFunc("/needy/delete-response/:id", s.handleDeleteResponse, http.MethodDelete)
	})

	// Donor area
	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)
		r.Use(s.RequireRole(types.UserRoleDonor))

		r.HandleFunc("/donor/create-offer", s.handleGetCreateOffer, http.MethodGet)
		r.HandleFunc("/donor/create-offer", s.handlePostCreateOffer, http.MethodPost)
		r.HandleFunc("/donor/my-offers", s.handleMyOffers, http.MethodGet)
		r.HandleFunc("/donor/close-offer/:id", s.handleCloseOffer, http.MethodGet)
		r.HandleFunc("/donor/needy-requests", s.handleDonorBrowseRequests, http.MethodGet)
		r.HandleFunc("/donor/fund-programs", s.handleDonorBrowsePrograms, http.MethodGet)
		r.HandleFunc("/donor/respond-to-request/:id", s.handleDonorRespond, http.MethodPost)
		r.HandleFunc("/donor/responses", s.handleDonorResponses, http.MethodGet)
		r.HandleFunc("/donor/mark-response-contacted/:id", s.handleMarkResponseContacted, http.MethodPost)
		r.HandleFunc("/donor/delete-response/:id", s.handleDeleteResponse, http.MethodDelete)
		r.HandleFunc("/donor/donate/:id", s.handleDonate, http.MethodPost)
		r.HandleFunc("/donor/my-donations", s.handleMyDonations, http.MethodGet)
	})

	// Fund area
	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)
		r.Use(s.RequireRole(types.UserRoleFund))

		r.HandleFunc("/fund/create-program", s.handleGetCreateProgram, http.MethodGet)
		r.HandleFunc("/fund/create-program", s.handlePostCreateProgram, http.MethodPost)
		r.HandleFunc("/fund/my-programs", s.handleMyPrograms, http.MethodGet)
		r.HandleFunc("/fund/close-program/:id", s.handleCloseProgram, http.MethodGet)
		r.HandleFunc("/fund/donations", s.handlePendingDonations, http.MethodGet)
		r.HandleFunc("/fund/confirm-donation/:id", s.handleConfirmDonation, http.MethodPost)
		r.HandleFunc("/fund/reject-donation/:id", s.handleRejectDonation, http.MethodPost)
		r.HandleFunc("/fund/needy-requests", s.handleFundBrowseRequests, http.MethodGet)
		r.HandleFunc("/fund/respond-to-request/:id", s.handleFundRespond, http.MethodPost)
		r.HandleFunc("/fund/responses", s.handleFundResponses, http.MethodGet)
		r.HandleFunc("/fund/mark-response-contacted/:id", s.handleMarkResponseContacted, http.MethodPost)
		r.HandleFunc("/fund/delete-response/:id", s.handleDeleteResponse, http.MethodDelete)
	})

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"cents": func(c int64) string {
			return fmt.Sprintf("%d.%02d", c/100, c%100)
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"derefOr": func(s *string, defaultVal string) string {
			if s == nil {
				return defaultVal
			}
			return *s
		},
		"centsPtr": func(c *int64) string {
			if c == nil {
				return ""
			}
			return fmt.Sprintf("%d.%02d", *c/100, *c%100)
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
