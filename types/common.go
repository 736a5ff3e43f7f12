package types

// Actor is the verified identity the upstream gateway attaches to every
// request. The subsystem never authenticates; it only compares IDs.
type Actor struct {
	UserID      string
	DisplayName string
	Avatar      *string
}

func (a Actor) Valid() bool {
	return a.UserID != ""
}
