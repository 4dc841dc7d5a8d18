package domain

import (
	"encoding/json"
	"time"

	"github.com/mitchellh/mapstructure"
)

type Role string

const (
	Tenant   Role = "tenant"
	Landlord Role = "landlord"
	Admin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case Tenant, Landlord, Admin:
		return true
	}
	return false
}

// UserSummary is replaced wholesale whenever the server sends a new copy.
type UserSummary struct {
	ID        string    `bson:"id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	FullName  string    `bson:"full_name" json:"full_name"`
	Role      Role      `bson:"role" json:"role"`
	IsActive  bool      `bson:"is_active" json:"is_active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Session pairs the bearer token with the user it belongs to. The zero value
// is the logged-out session. Token and User are always set and cleared
// together.
type Session struct {
	Token string       `json:"token"`
	User  *UserSummary `json:"user"`
}

func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

type AuthResponse struct {
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token"`
	User    *UserSummary `json:"user"`
}

// Profile is the role-dependent attribute bag returned by /profile.
type Profile map[string]interface{}

// Merge lays other's keys over a copy of p. Keys missing from other keep
// their previous value.
func (p Profile) Merge(other Profile) Profile {
	merged := make(Profile, len(p)+len(other))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Decode copies the bag into a typed struct using its json tags.
func (p Profile) Decode(out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}(p))
}

// ProfileDetails is the union of the editable profile fields of every role.
type ProfileDetails struct {
	UserID             string  `json:"user_id,omitempty"`
	FullName           string  `json:"full_name,omitempty"`
	PhoneNumber        string  `json:"phone_number,omitempty"`
	Gender             string  `json:"gender,omitempty"`
	Dob                string  `json:"dob,omitempty"`
	Bio                string  `json:"bio,omitempty"`
	IdentityCard       string  `json:"identity_card,omitempty"`
	AddressDetail      string  `json:"address_detail,omitempty"`
	TargetProvinceCode string  `json:"target_province_code,omitempty"`
	TargetWardCode     string  `json:"target_ward_code,omitempty"`
	BudgetMin          float64 `json:"budget_min,omitempty"`
	BudgetMax          float64 `json:"budget_max,omitempty"`
	Department         string  `json:"department,omitempty"`
}

type PostStatus string

const (
	PostPending  PostStatus = "pending"
	PostApproved PostStatus = "approved"
	PostRejected PostStatus = "rejected"
)

type RentalPost struct {
	ID               string     `json:"id"`
	LandlordID       string     `json:"landlord_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Price            float64    `json:"price"`
	Area             float64    `json:"area"`
	AddressDetail    string     `json:"address_detail"`
	ProvinceCode     string     `json:"province_code"`
	WardCode         string     `json:"ward_code"`
	Amenities        []string   `json:"amenities"`
	ElectricityPrice *float64   `json:"electricity_price,omitempty"`
	WaterPrice       *float64   `json:"water_price,omitempty"`
	MaxTenants       *int       `json:"max_tenants,omitempty"`
	Status           PostStatus `json:"status"`
	RejectionReason  *string    `json:"rejection_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CanEdit is true only for the owner of a post still awaiting review.
func (p *RentalPost) CanEdit(user *UserSummary) bool {
	return p.ownedBy(user) && p.Status == PostPending
}

func (p *RentalPost) CanDelete(user *UserSummary) bool {
	return p.ownedBy(user)
}

func (p *RentalPost) ownedBy(user *UserSummary) bool {
	return user != nil && user.Role == Landlord && user.ID != "" && user.ID == p.LandlordID
}

type ContractStatus string

const (
	ContractPending    ContractStatus = "pending"
	ContractActive     ContractStatus = "active"
	ContractCompleted  ContractStatus = "completed"
	ContractTerminated ContractStatus = "terminated"
)

type Contract struct {
	ID            string         `json:"id"`
	PostID        string         `json:"post_id"`
	TenantID      string         `json:"tenant_id"`
	LandlordID    string         `json:"landlord_id"`
	MonthlyRent   float64        `json:"monthly_rent"`
	DepositAmount float64        `json:"deposit_amount"`
	StartDate     string         `json:"start_date"`
	EndDate       string         `json:"end_date"`
	Status        ContractStatus `json:"status"`
	ContractURL   *string        `json:"contract_url,omitempty"`
}

// CanTerminate and CanDelete only decide which actions a page offers; the
// server still decides whether the transition is allowed. An active
// contract can be terminated by its landlord or an admin, and deleted by
// its tenant.
func (c *Contract) CanTerminate(user *UserSummary) bool {
	if user == nil || c.Status != ContractActive {
		return false
	}
	return user.Role == Admin || (user.ID != "" && user.ID == c.LandlordID)
}

func (c *Contract) CanDelete(user *UserSummary) bool {
	return user != nil && c.Status == ContractActive && user.ID != "" && user.ID == c.TenantID
}

type Province struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Ward struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ProvinceID string `json:"province_id"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit,omitempty"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages,omitempty"`
}

// AdminUser is a row of the admin user listing.
type AdminUser struct {
	UserSummary
	PhoneNumber string          `json:"phone_number,omitempty"`
	Profile     json.RawMessage `json:"profile,omitempty"`
}
