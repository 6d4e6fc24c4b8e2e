package domain

import "fmt"

// AuthPolicy describes the user-authentication gating attached to a key when it is generated.
//
// The policy is enforced by the secure store on key use, not by this application:
// a store that cannot enforce a policy must refuse to generate the key.
type AuthPolicy string

const (
	// PolicyNone allows key use without any user authentication.
	PolicyNone AuthPolicy = "none"

	// PolicyUserPresence requires a fresh biometric or device-credential
	// authentication before the key may be used.
	PolicyUserPresence AuthPolicy = "user-presence"
)

// RequiresUserAuth reports whether callers must authenticate the user before opening secrets.
func (p AuthPolicy) RequiresUserAuth() bool {
	return p == PolicyUserPresence
}

// ParseAuthPolicy converts a configuration string into an AuthPolicy.
func ParseAuthPolicy(s string) (AuthPolicy, error) {
	switch AuthPolicy(s) {
	case PolicyNone:
		return PolicyNone, nil
	case PolicyUserPresence:
		return PolicyUserPresence, nil
	default:
		return "", fmt.Errorf("%w: %q (valid options: none, user-presence)", ErrInvalidAuthPolicy, s)
	}
}
