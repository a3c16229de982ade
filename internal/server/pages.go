package server

import (
	"net/http"
	"net/url"

	"kindbridge/pkg/types"
)

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	data := &types.HomePageData{
		BasePageData: types.BasePageData{
			Title:  "",
			Notice: r.URL.Query().Get("notice"),
			Error:  r.URL.Query().Get("error"),
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderTemplate(w, r, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleDashboard shows the caller's own dashboard. Asking for another
// role's dashboard just routes home to your own.
func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	role := r.PathValue("role")
	if role != string(session.Role) {
		http.Redirect(w, r, "/dashboard/"+string(session.Role), http.StatusSeeOther)
		return
	}

	data := &types.DashboardPageData{
		BasePageData: types.BasePageData{
			Title:  "Dashboard",
			Notice: r.URL.Query().Get("notice"),
		},
		Role: role,
	}

	if err := s.renderTemplate(w, r, "page.dashboard."+role, data); err != nil {
		s.logger.WithError(err).Error("failed to render dashboard")
		s.internalServerError(w)
	}
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	v := url.Values{}
	v.Set("notice", notice)
	http.Redirect(w, r, path+"?"+v.Encode(), http.StatusSeeOther)
}
