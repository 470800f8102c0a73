package domain

// Actor identifies the authenticated caller of an operation. It is
// derived from the JWT by middleware; the service layer only cares
// about the id and the admin flag.
type Actor struct {
	ID      uint64
	IsAdmin bool
}
