package domain

// VaultState is the vault's view of key availability.
type VaultState int

const (
	// StateNoKey means no key has been resolved by this vault yet.
	StateNoKey VaultState = iota
	// StateKeyReady means the key was resolved by the last operation.
	StateKeyReady
	// StateKeyBroken means the key is missing or unreadable; only Recover leaves this state.
	StateKeyBroken
)

// String returns the state name used in logs and CLI output.
func (s VaultState) String() string {
	switch s {
	case StateNoKey:
		return "no-key"
	case StateKeyReady:
		return "key-ready"
	case StateKeyBroken:
		return "key-broken"
	default:
		return "unknown"
	}
}
