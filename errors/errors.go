package errors

// Fallback messages shown when the server does not send one.
const (
	LoginError            = "Login failed"
	RegisterError         = "Registration failed"
	ForgotPasswordError   = "Could not send the password reset email"
	ResetPasswordError    = "Could not reset the password"
	FetchProfileError     = "Error fetching profile"
	UpdateProfileError    = "Error updating profile"
	FetchPostsError       = "Error fetching rental posts"
	FetchMyPostsError     = "Error fetching my rental posts"
	FetchPostError        = "Error fetching rental post details"
	CreatePostError       = "Error creating rental post"
	UpdatePostError       = "Error updating rental post"
	DeletePostError       = "Error deleting rental post"
	ApprovePostError      = "Error approving rental post"
	RejectPostError       = "Error rejecting rental post"
	FetchRecommendedError = "Error fetching recommended rooms"
	FetchContractsError   = "Error fetching contracts"
	FetchMyContractsError = "Error fetching my contracts"
	FetchContractError    = "Error fetching contract details"
	CreateContractError   = "Error creating contract"
	UpdateContractError   = "Error updating contract"
	TerminateContractErr  = "Error terminating contract"
	DeleteContractError   = "Error deleting contract"
	CreateAdminError      = "Error creating admin"
	FetchUsersError       = "Error fetching users"
	FetchUserError        = "Error fetching user details"
	FetchProvincesError   = "Error loading provinces"
	FetchWardsError       = "Error loading wards"
	SearchProvincesError  = "Error searching provinces"
	SearchWardsError      = "Error searching wards"
)

// Client-side validation messages.
const (
	EmailRequired           = "Email cannot be empty"
	InvalidEmail            = "Invalid email format"
	PasswordRequired        = "Password cannot be empty"
	PasswordTooShort        = "Password must be at least 6 characters"
	PasswordsDoNotMatch     = "Passwords do not match"
	InvalidRole             = "Role should be one of 'tenant', 'landlord' or 'admin'"
	FullNameRequired        = "Full name cannot be empty"
	TitleRequired           = "Title cannot be empty"
	DescriptionRequired     = "Description cannot be empty"
	PriceRequired           = "Price cannot be empty"
	AreaRequired            = "Area cannot be empty"
	AddressRequired         = "Address cannot be empty"
	PostRequired            = "Please choose a rental post"
	DatesRequired           = "Please choose a start and an end date"
	InvalidDate             = "Invalid date"
	EndBeforeStart          = "End date must be after the start date"
	ContractTooShort        = "Contract term must be at least 30 days"
	InvalidMonthlyRent      = "Please enter a valid monthly rent"
	InvalidDeposit          = "Please enter a valid deposit amount"
	ResetTokenRequired      = "Reset token is missing"
	RejectionReasonRequired = "Rejection reason cannot be empty"
	InvalidRequestFormat    = "Invalid request format"
)

const (
	IncompleteAuthResponse  = "Server response is missing the token or user"
	SessionPersistenceError = "Could not save the session"
)
