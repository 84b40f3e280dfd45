package models

// Session identifies the acting user for a single request. It is built from
// verified token claims and passed explicitly to services; nothing reads the
// current user from ambient state.
type Session struct {
	UserID string
	Email  string
}
