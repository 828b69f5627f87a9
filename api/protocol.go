package api

// Request bodies are size-limited before decoding.
const requestBodyMaxSize = 64 * 1024 // 64 KiB

// envelope is the JSON body shape shared by every endpoint. Both keys are
// always present; the unused one is null.
type envelope struct {
	ResponseData any `json:"responseData"`
	ErrorMessage any `json:"errorMessage"`
}

func dataResponse(data any) envelope {
	return envelope{ResponseData: data}
}

func errorResponse(message string) envelope {
	return envelope{ErrorMessage: message}
}

// credentialsRequest is the body of the sign-up and login calls.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse wraps an issued bearer token.
type tokenResponse struct {
	Token string `json:"token"`
}
