package request

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUpRequest is the request body for creating an account
type SignUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChooseRequest is the request body for selecting a library entry
type ChooseRequest struct {
	Index int `json:"index"`
}

// SeekRequest is the request body for an absolute seek
type SeekRequest struct {
	Seconds float64 `json:"seconds"`
}
