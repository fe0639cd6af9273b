package auth

// Identity is the authenticated principal of a request
type Identity struct {
	Username string
	IsAdmin  bool
}

// CanActAs reports whether the identity may act on behalf of username
func (id *Identity) CanActAs(username string) bool {
	if id == nil {
		return false
	}
	return id.IsAdmin || id.Username == username
}
