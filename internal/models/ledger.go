package models

// LedgerI is the token ledger, the only component with state transitions.
// Tokens move from issued to consumed exactly once and are never deleted.
type LedgerI interface {
	// Issue returns the active token for the (user, plano) pair, minting a
	// new one when none exists. Re-issuing while a token is active returns
	// the same token unchanged.
	Issue(user, plano string, valor float64) (*Token, error)

	// Redeem transitions a token from unconsumed to consumed and returns the
	// pre-update row for display. A second call with the same token always
	// fails and never mutates state.
	Redeem(token string) (*Token, error)
}
