package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"kindbridge/internal/service"
	"kindbridge/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Minimal in-memory stores behind the services; each test seeds only
// what its route touches.

type memUserStore struct {
	users []*types.User
}

func (m *memUserStore) Create(_ context.Context, user *types.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return types.ErrEmailTaken
		}
	}
	user.ID = "user-" + user.Email
	user.CreatedAt = time.Now()
	m.users = append(m.users, user)
	return nil
}

func (m *memUserStore) User(_ context.Context, userID string) (*types.User, error) {
	for _, user := range m.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, types.ErrUserNotFound
}

func (m *memUserStore) UserByEmail(_ context.Context, email string) (*types.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, types.ErrUserNotFound
}

type memRequestStore struct {
	requests []*types.NeedyRequest
}

func (m *memRequestStore) Create(_ context.Context, request *types.NeedyRequest) error {
	request.ID = "req-1"
	request.Status = types.ListingStatusActive
	m.requests = append(m.requests, request)
	return nil
}

func (m *memRequestStore) RequestsByUser(_ context.Context, userID string) ([]*types.NeedyRequest, error) {
	var out []*types.NeedyRequest
	for _, request := range m.requests {
		if request.UserID == userID {
			out = append(out, request)
		}
	}
	return out, nil
}

func (m *memRequestStore) ActiveRequests(_ context.Context) ([]*types.BrowseNeedyRequest, error) {
	return nil, nil
}

func (m *memRequestStore) Close(_ context.Context, _, _ string) error {
	return nil
}

func (m *memRequestStore) OwnerID(_ context.Context, requestID string) (string, error) {
	for _, request := range m.requests {
		if request.ID == requestID {
			return request.UserID, nil
		}
	}
	return "", types.ErrListingNotFound
}

type memOfferStore struct{}

func (memOfferStore) Create(_ context.Context, _ *types.DonorOffer) error { return nil }
func (memOfferStore) OffersByUser(_ context.Context, _ string) ([]*types.DonorOffer, error) {
	return nil, nil
}
func (memOfferStore) ActiveOffers(_ context.Context) ([]*types.BrowseDonorOffer, error) {
	return nil, nil
}
func (memOfferStore) Close(_ context.Context, _, _ string) error { return nil }
func (memOfferStore) OwnerID(_ context.Context, _ string) (string, error) {
	return "", types.ErrListingNotFound
}

type memProgramStore struct {
	programs []*types.FundProgram
}

func (m *memProgramStore) Create(_ context.Context, program *types.FundProgram) error {
	program.Status = types.ListingStatusActive
	m.programs = append(m.programs, program)
	return nil
}

func (m *memProgramStore) Program(_ context.Context, programID string) (*types.FundProgram, error) {
	for _, program := range m.programs {
		if program.ID == programID {
			return program, nil
		}
	}
	return nil, types.ErrListingNotFound
}

func (m *memProgramStore) ProgramsByUser(_ context.Context, _ string) ([]*types.FundProgram, error) {
	return nil, nil
}

func (m *memProgramStore) ActivePrograms(_ context.Context) ([]*types.BrowseFundProgram, error) {
	return nil, nil
}

func (m *memProgramStore) Close(_ context.Context, _, _ string) error { return nil }

func (m *memProgramStore) OwnerID(_ context.Context, programID string) (string, error) {
	program, err := m.Program(context.Background(), programID)
	if err != nil {
		return "", err
	}
	return program.UserID, nil
}

type memResponseStore struct {
	responses []*types.Response
}

func (m *memResponseStore) Create(_ context.Context, response *types.Response) error {
	response.ID = "resp-1"
	response.Status = types.ResponseStatusNew
	m.responses = append(m.responses, response)
	return nil
}

func (m *memResponseStore) Inbox(_ context.Context, _ string, _ types.ListingKind) ([]*types.InboxResponse, error) {
	return nil, nil
}

func (m *memResponseStore) MarkContacted(_ context.Context, responseID, toUserID string) (bool, error) {
	for _, response := range m.responses {
		if response.ID == responseID && response.ToUserID == toUserID {
			response.Status = types.ResponseStatusContacted
			return true, nil
		}
	}
	return false, nil
}

func (m *memResponseStore) Delete(_ context.Context, responseID, toUserID string) (bool, error) {
	for i, response := range m.responses {
		if response.ID == responseID && response.ToUserID == toUserID {
			m.responses = append(m.responses[:i], m.responses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memDonationStore struct {
	donations []*types.Donation
}

func (m *memDonationStore) Create(_ context.Context, donation *types.Donation) error {
	donation.ID = "don-1"
	donation.Status = types.DonationStatusPending
	m.donations = append(m.donations, donation)
	return nil
}

func (m *memDonationStore) Confirm(_ context.Context, donationID, fundID string) error {
	for _, donation := range m.donations {
		if donation.ID == donationID && donation.FundID == fundID && donation.Status == types.DonationStatusPending {
			donation.Status = types.DonationStatusCompleted
			return nil
		}
	}
	return types.ErrDonationProcessed
}

func (m *memDonationStore) Reject(_ context.Context, donationID, fundID string) error {
	for _, donation := range m.donations {
		if donation.ID == donationID && donation.FundID == fundID && donation.Status == types.DonationStatusPending {
			donation.Status = types.DonationStatusRejected
			return nil
		}
	}
	return types.ErrDonationProcessed
}

func (m *memDonationStore) PendingByFund(_ context.Context, _ string) ([]*types.PendingDonation, error) {
	return nil, nil
}

func (m *memDonationStore) DonationsByDonor(_ context.Context, _ string) ([]*types.DonorDonation, error) {
	return nil, nil
}

type fixture struct {
	srv       *Service
	users     *memUserStore
	requests  *memRequestStore
	programs  *memProgramStore
	responses *memResponseStore
	donations *memDonationStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	config := &types.Config{
		ServerPort:       8080,
		ReadTimeoutSec:   5,
		WriteTimeoutSec:  5,
		CookieName:       "kb_session",
		SessionMaxAgeSec: 3600,
		CookieHashKey:    base64.StdEncoding.EncodeToString([]byte(strings.Repeat("h", 32))),
		CookieBlockKey:   base64.StdEncoding.EncodeToString([]byte(strings.Repeat("b", 32))),
		UploadDisabled:   true,
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := &memUserStore{}
	requests := &memRequestStore{}
	programs := &memProgramStore{}
	responses := &memResponseStore{}
	donations := &memDonationStore{}

	listings := service.NewListingService(requests, memOfferStore{}, programs)

	srv, err := New(
		config,
		logger,
		service.NewAccountService(users),
		listings,
		service.NewResponseService(listings, responses),
		service.NewDonationService(programs, donations),
		nil,
	)
	require.NoError(t, err)

	return &fixture{
		srv:       srv,
		users:     users,
		requests:  requests,
		programs:  programs,
		responses: responses,
		donations: donations,
	}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.srv.server.Handler.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) sessionCookie(t *testing.T, session *Session) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, f.srv.writeSessionCookie(rec, session))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func (f *fixture) seedUser(t *testing.T, email, password string, role types.UserRole) *types.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &types.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Test User",
		Role:         role,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) jsonEnvelope {
	t.Helper()
	var envelope jsonEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestSessionCookieRoundTrip(t *testing.T) {
	f := newFixture(t)

	session := &Session{UserID: "user-1", Email: "anna@example.com", Role: types.UserRoleNeedy, FullName: "Anna"}
	cookie := f.sessionCookie(t, session)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	decoded, err := f.srv.readSessionCookie(req)
	require.NoError(t, err)
	assert.Equal(t, session, decoded)
}

func TestRequireAuthRedirectsToLogin(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/needy/my-requests", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// The intended destination is remembered for after login.
	var redirect *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == redirectCookieName {
			redirect = cookie
		}
	}
	require.NotNil(t, redirect)
	assert.Equal(t, "/needy/my-requests", redirect.Value)
}

func TestRequireRoleRedirectsToOwnDashboard(t *testing.T) {
	f := newFixture(t)

	cookie := f.sessionCookie(t, &Session{UserID: "user-1", Role: types.UserRoleDonor})

	req := httptest.NewRequest(http.MethodGet, "/needy/my-requests", nil)
	req.AddCookie(cookie)

	rec := f.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/donor", rec.Header().Get("Location"))
}

func TestDashboardWrongRoleRedirects(t *testing.T) {
	f := newFixture(t)

	cookie := f.sessionCookie(t, &Session{UserID: "user-1", Role: types.UserRoleFund})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/needy", nil)
	req.AddCookie(cookie)

	rec := f.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/fund", rec.Header().Get("Location"))
}

func TestStripTrailingSlash(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/login/", nil))
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	rec := f.do(postForm("/register", url.Values{
		"email":     {"anna@example.com"},
		"password":  {"secret123"},
		"full_name": {"Anna Ivanova"},
		"user_type": {"needy"},
	}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/login"))
	require.Len(t, f.users.users, 1)
	assert.Equal(t, types.UserRoleNeedy, f.users.users[0].Role)

	rec = f.do(postForm("/login", url.Values{
		"email":    {"anna@example.com"},
		"password": {"secret123"},
	}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/needy", rec.Header().Get("Location"))

	var session *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "kb_session" {
			session = cookie
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)
}

func TestLoginBadPasswordRendersError(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "anna@example.com", "secret123", types.UserRoleNeedy)

	rec := f.do(postForm("/login", url.Values{
		"email":    {"anna@example.com"},
		"password": {"wrong"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password.")
}

func TestDonateEnvelope(t *testing.T) {
	f := newFixture(t)

	program := &types.FundProgram{ID: "prog-1", UserID: "fund-1", Title: "Lunches"}
	require.NoError(t, f.programs.Create(context.Background(), program))

	cookie := f.sessionCookie(t, &Session{UserID: "donor-1", Role: types.UserRoleDonor})

	req := postForm("/donor/donate/prog-1", url.Values{"amount": {"25.00"}})
	req.AddCookie(cookie)

	envelope := decodeEnvelope(t, f.do(req))
	assert.True(t, envelope.Success)
	require.Len(t, f.donations.donations, 1)
	assert.Equal(t, int64(2500), f.donations.donations[0].AmountCents)
	assert.Equal(t, "fund-1", f.donations.donations[0].FundID)
}

func TestDonateInvalidAmountEnvelope(t *testing.T) {
	f := newFixture(t)

	program := &types.FundProgram{ID: "prog-1", UserID: "fund-1"}
	require.NoError(t, f.programs.Create(context.Background(), program))

	cookie := f.sessionCookie(t, &Session{UserID: "donor-1", Role: types.UserRoleDonor})

	req := postForm("/donor/donate/prog-1", url.Values{"amount": {"-5"}})
	req.AddCookie(cookie)

	envelope := decodeEnvelope(t, f.do(req))
	assert.False(t, envelope.Success)
	assert.Equal(t, "Amount must be a positive number.", envelope.Message)
	assert.Empty(t, f.donations.donations)
}

func TestConfirmDonationEnvelope(t *testing.T) {
	f := newFixture(t)

	donation := &types.Donation{DonorID: "donor-1", FundID: "fund-1", ProgramID: "prog-1", AmountCents: 2500}
	require.NoError(t, f.donations.Create(context.Background(), donation))

	cookie := f.sessionCookie(t, &Session{UserID: "fund-1", Role: types.UserRoleFund})

	req := postForm("/fund/confirm-donation/don-1", nil)
	req.AddCookie(cookie)

	envelope := decodeEnvelope(t, f.do(req))
	assert.True(t, envelope.Success)
	assert.Equal(t, types.DonationStatusCompleted, donation.Status)

	// Second confirm reports the terminal state.
	req = postForm("/fund/confirm-donation/don-1", nil)
	req.AddCookie(cookie)

	envelope = decodeEnvelope(t, f.do(req))
	assert.False(t, envelope.Success)
	assert.Equal(t, "Donation not found or already processed.", envelope.Message)
}

func TestRespondToRequestEnvelope(t *testing.T) {
	f := newFixture(t)

	request := &types.NeedyRequest{UserID: "needy-1", Title: "Need boots"}
	require.NoError(t, f.requests.Create(context.Background(), request))

	cookie := f.sessionCookie(t, &Session{UserID: "donor-1", Role: types.UserRoleDonor})

	req := postForm("/donor/respond-to-request/req-1", url.Values{
		"message":           {"I have a pair in that size."},
		"responder_contact": {"+15550002222"},
	})
	req.AddCookie(cookie)

	envelope := decodeEnvelope(t, f.do(req))
	assert.True(t, envelope.Success)
	require.Len(t, f.responses.responses, 1)
	assert.Equal(t, "needy-1", f.responses.responses[0].ToUserID)
	assert.Equal(t, types.ListingKindNeedy, f.responses.responses[0].OfferType)
}

func TestMarkResponseContactedEnvelope(t *testing.T) {
	f := newFixture(t)

	response := &types.Response{FromUserID: "donor-1", ToUserID: "needy-1", OfferID: "req-1", OfferType: types.ListingKindNeedy}
	require.NoError(t, f.responses.Create(context.Background(), response))

	cookie := f.sessionCookie(t, &Session{UserID: "needy-1", Role: types.UserRoleNeedy})

	req := postForm("/needy/mark-response-contacted/resp-1", nil)
	req.AddCookie(cookie)

	envelope := decodeEnvelope(t, f.do(req))
	assert.True(t, envelope.Success)
	assert.Equal(t, types.ResponseStatusContacted, response.Status)
}

func TestDeleteResponseNotRecipientEnvelope(t *testing.T) {
	f := newFixture(t)

	response := &types.Response{FromUserID: "donor-1", ToUserID: "needy-1", OfferID: "req-1", OfferType: types.ListingKindNeedy}
	require.NoError(t, f.responses.Create(context.Background(), response))

	// The responder is not the recipient and cannot delete.
	cookie := f.sessionCookie(t, &Session{UserID: "donor-1", Role: types.UserRoleDonor})

	req := httptest.NewRequest(http.MethodDelete, "/donor/delete-response/resp-1", nil)
	req.AddCookie(cookie)

	envelope := decodeEnvelope(t, f.do(req))
	assert.False(t, envelope.Success)
	assert.Equal(t, "Response not found.", envelope.Message)
	assert.Len(t, f.responses.responses, 1)
}

func multipartForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestCreateRequestMultipartUploadsOff(t *testing.T) {
	f := newFixture(t)
	cookie := f.sessionCookie(t, &Session{UserID: "needy-1", Role: types.UserRoleNeedy})

	// The create form always posts multipart, with or without a file.
	body, contentType := multipartForm(t, map[string]string{
		"title":        "Winter coats",
		"description":  "Two warm coats for school-age kids.",
		"category":     "clothes",
		"urgency":      "urgent",
		"quantity":     "2",
		"contact_info": "maria@example.com",
	})

	req := httptest.NewRequest(http.MethodPost, "/needy/create-request", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)

	rec := f.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/needy/my-requests")

	require.Len(t, f.requests.requests, 1)
	assert.Equal(t, "Winter coats", f.requests.requests[0].Title)
	assert.Equal(t, "needy-1", f.requests.requests[0].UserID)
	assert.Nil(t, f.requests.requests[0].PhotoKey)
}

func TestCreateRequestFormEncoded(t *testing.T) {
	f := newFixture(t)
	cookie := f.sessionCookie(t, &Session{UserID: "needy-1", Role: types.UserRoleNeedy})

	req := postForm("/needy/create-request", url.Values{
		"title":        {"School books"},
		"description":  {"Textbooks for the seventh grade."},
		"category":     {"books"},
		"urgency":      {"normal"},
		"contact_info": {"maria@example.com"},
	})
	req.AddCookie(cookie)

	rec := f.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Len(t, f.requests.requests, 1)
	assert.Equal(t, "School books", f.requests.requests[0].Title)
}

func TestNewRejectsMalformedCookieKeys(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	config := &types.Config{
		CookieName:     "kb_session",
		CookieHashKey:  "%%% not base64 %%%",
		CookieBlockKey: base64.StdEncoding.EncodeToString([]byte(strings.Repeat("b", 32))),
	}

	_, err := New(config, logger, nil, nil, nil, nil, nil)
	require.Error(t, err)

	config.CookieHashKey = base64.StdEncoding.EncodeToString([]byte(strings.Repeat("h", 32)))
	config.CookieBlockKey = "%%% not base64 %%%"
	_, err = New(config, logger, nil, nil, nil, nil, nil)
	require.Error(t, err)
}
