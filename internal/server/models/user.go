package models

// User is a registered account. PasswordHash is the bcrypt hash of the
// password and never leaves the server.
type User struct {
	ID           int    `json:"id"`
	UserName     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

func (u *User) GetID() int   { return u.ID }
func (u *User) SetID(id int) { u.ID = id }

// Public strips the password hash.
func (u *User) Public() UserInfo {
	return UserInfo{ID: u.ID, UserName: u.UserName}
}

// UserInfo is the client-visible part of a User.
type UserInfo struct {
	ID       int    `json:"id"`
	UserName string `json:"username"`
}
