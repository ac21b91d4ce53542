package common

// Request argument names understood by the dispatcher.
const (
	ArgFunction    = "function"
	ArgUserName    = "user_name"
	ArgPassword    = "password"
	ArgPasswordNew = "password_new"
	ArgType        = "type"
	ArgShareLevel  = "share_level"
	ArgMap         = "map"
	ArgImage       = "image"
	ArgID          = "id"
)

// DefaultMapType is used whenever a request omits the map type or names an
// unknown one.
const DefaultMapType = "city"
