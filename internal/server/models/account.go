package models

// Account is a registered user. ID and UserName never change after
// creation; Password is replaced only through an authenticated change.
type Account struct {
	ID       string
	UserName string
	Password string
}
