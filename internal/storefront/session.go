package storefront

// Session identifies the shopper. An empty Token means a guest, who can
// browse and search but has no cart.
type Session struct {
	Token string
}

func Guest() Session { return Session{} }

func (s Session) Authenticated() bool { return s.Token != "" }
