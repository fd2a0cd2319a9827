package models

// Session is the identity of the caller for one request. It is written once
// by the auth middleware and only read afterwards.
type Session struct {
	UserID  string `json:"uid"`
	Email   string `json:"email"`
	TokenID string `json:"-"`
}

func (s Session) Authenticated() bool {
	return s.UserID != ""
}
