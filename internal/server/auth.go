package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"kindbridge/internal/service"
	"kindbridge/pkg/types"
)

func (s *Service) handleGetRegister(w http.ResponseWriter, r *http.Request) {
	if _, err := s.readSessionCookie(r); err == nil {
		s.logger.Info("user is already logged in, redirecting to home")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := &types.RegisterPageData{
		BasePageData: types.BasePageData{Title: "Register"},
		DefaultRole:  r.URL.Query().Get("type"),
	}

	if err := s.renderTemplate(w, r, "page.register", data); err != nil {
		s.logger.WithError(err).Error("failed to render register page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	input := service.RegisterInput{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
		FullName: strings.TrimSpace(r.FormValue("full_name")),
		Role:     r.FormValue("user_type"),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
		Address:  strings.TrimSpace(r.FormValue("address")),
		Bio:      strings.TrimSpace(r.FormValue("description")),
	}

	data := &types.RegisterPageData{
		BasePageData: types.BasePageData{Title: "Create Account"},
		Email:        input.Email,
		FullName:     input.FullName,
		Phone:        input.Phone,
		Address:      input.Address,
		Bio:          input.Bio,
		DefaultRole:  input.Role,
	}

	_, err := s.accounts.Register(ctx, input)
	if err != nil {
		var validationErr *service.ValidationError

		switch {
		case errors.As(err, &validationErr):
			data.Error = "Please fix the highlighted fields."
			data.FieldErrors = validationErr.Fields
		case errors.Is(err, types.ErrEmailTaken):
			data.Error = "Try logging in instead."
			data.FieldErrors = map[string]string{"email": "An account with this email already exists."}
		default:
			s.logger.WithError(err).Error("failed to register user")
			data.Error = "Unable to create account right now. Please try again."
		}

		if renderErr := s.renderTemplate(w, r, "page.register", data); renderErr != nil {
			s.logger.WithError(renderErr).Error("failed to render register page with errors")
			s.internalServerError(w)
		}
		return
	}

	v := url.Values{}
	v.Set("notice", "Registration successful. You can now log in.")
	http.Redirect(w, r, "/login?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) handleGetLogin(w http.ResponseWriter, r *http.Request) {
	if session, err := s.readSessionCookie(r); err == nil {
		http.Redirect(w, r, "/dashboard/"+string(session.Role), http.StatusSeeOther)
		return
	}

	data := &types.LoginPageData{
		BasePageData: types.BasePageData{
			Title:  "Log In",
			Notice: r.URL.Query().Get("notice"),
		},
	}

	if err := s.renderTemplate(w, r, "page.login", data); err != nil {
		s.logger.WithError(err).Error("failed to render login page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	user, err := s.accounts.Login(ctx, email, password)
	if err != nil {
		if !errors.Is(err, types.ErrBadCredentials) {
			s.logger.WithError(err).Error("login failed")
		}

		data := &types.LoginPageData{
			BasePageData: types.BasePageData{
				Title: "Log In",
				Error: "Invalid email or password.",
			},
			Email: email,
		}
		if renderErr := s.renderTemplate(w, r, "page.login", data); renderErr != nil {
			s.logger.WithError(renderErr).Error("failed to render login page with error")
			s.internalServerError(w)
		}
		return
	}

	session := &Session{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		FullName: user.FullName,
	}

	if err := s.writeSessionCookie(w, session); err != nil {
		s.logger.WithError(err).Error("failed to encode session cookie")
		s.internalServerError(w)
		return
	}

	// Honor a pre-login redirect if one was recorded.
	if redirectCookie, err := r.Cookie(redirectCookieName); err == nil {
		path := redirectCookie.Value
		s.clearRedirectCookie(w)
		http.Redirect(w, r, path, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard/"+string(user.Role), http.StatusSeeOther)
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
