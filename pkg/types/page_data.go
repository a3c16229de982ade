package types

type NavbarData struct {
	IsAuthenticated bool
	UserID          string
	UserEmail       string
	UserName        string
	UserRole        string
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

type BasePageData struct {
	Title  string
	Notice string
	Error  string
	Navbar NavbarData
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

type HomePageData struct {
	BasePageData
}

type RegisterPageData struct {
	BasePageData
	Email       string
	FullName    string
	Phone       string
	Address     string
	Bio         string
	DefaultRole string
	FieldErrors map[string]string
}

type LoginPageData struct {
	BasePageData
	Email string
}

type DashboardPageData struct {
	BasePageData
	Role string
}

type NeedyRequestsPageData struct {
	BasePageData
	Requests []*NeedyRequest
}

type DonorOffersPageData struct {
	BasePageData
	Offers []*DonorOffer
}

type FundProgramsPageData struct {
	BasePageData
	Programs []*FundProgram
}

type CreateListingPageData struct {
	BasePageData
	Categories  []string
	HelpTypes   []HelpType
	Urgencies   []Urgency
	FieldErrors map[string]string
	Form        map[string]string
}

// AvailableHelpPageData backs the needy browse view: active donor
// offers and fund programs side by side.
type AvailableHelpPageData struct {
	BasePageData
	Offers   []*BrowseDonorOffer
	Programs []*BrowseFundProgram
}

type BrowseRequestsPageData struct {
	BasePageData
	Requests []*BrowseNeedyRequest
}

type BrowseProgramsPageData struct {
	BasePageData
	Programs []*BrowseFundProgram
}

type ResponsesPageData struct {
	BasePageData
	Responses []*InboxResponse
}

type PendingDonationsPageData struct {
	BasePageData
	Donations []*PendingDonation
}

type MyDonationsPageData struct {
	BasePageData
	Donations []*DonorDonation
}
