package identity

// User is a dashboard login. Credentials are stored as given; password
// handling is opaque to this service and never serialized in responses.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// credentials is the wire shape for register and login requests.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
