package entities

// AccountType distinguishes the two user roles on the platform.
type AccountType string

const (
	AccountTypeTenant AccountType = "tenant"
	AccountTypeOwner  AccountType = "owner"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	return t == AccountTypeTenant || t == AccountTypeOwner
}

// Identity is the authenticated caller as resolved by the identity
// collaborator. User records themselves (credentials, profile) are owned
// by an external system; listings only reference the user id.
type Identity struct {
	UserID      string
	AccountType AccountType
}
