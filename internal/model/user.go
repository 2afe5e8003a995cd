package model

// UserRecord is a single credential entry in the user document
type UserRecord struct {
	Username string `json:"userName"`
	Password string `json:"userPassword"`
}

// UserFile is the persisted credential document.
// The whole document is read, modified and rewritten on every signup;
// there is no partial update.
type UserFile struct {
	Users []UserRecord `json:"users"`
}

// Default credentials written when the user document is missing
const (
	DefaultUsername = "DefaultUser"
	DefaultPassword = "DefaultPassword"
)

// CredentialMap projects the document into a username -> password lookup.
// The map is rebuilt in full on every load; it is never updated incrementally.
func (f *UserFile) CredentialMap() map[string]string {
	m := make(map[string]string, len(f.Users))
	for _, u := range f.Users {
		m[u.Username] = u.Password
	}
	return m
}
