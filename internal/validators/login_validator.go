package validators

// LoginRequest is the JSON credential body.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
}

func ValidateLogin(req *LoginRequest) ValidationErrors {
	return ValidateStruct(req)
}
