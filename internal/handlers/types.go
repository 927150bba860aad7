package handlers

// LoginRequest is the request body for a login attempt.
type LoginRequest struct {
	Body struct {
		Username string `doc:"Account username" example:"alice"  json:"username"`
		Password string `doc:"Account password" example:"s3cret" json:"password"`
	}
}

// LoginResponse is the response for a successful login.
type LoginResponse struct {
	Body struct {
		Token string `doc:"Opaque session token" example:"V1StGXR8_Z5jdHi6" json:"token"`
	}
}

// ThrottleStatusRequest is the request for inspecting an identity's throttle.
type ThrottleStatusRequest struct {
	Identity string `doc:"Throttled identity (e.g. client IP)" example:"203.0.113.7" path:"identity"`
}

// ThrottleStatusResponse describes the current window for an identity.
type ThrottleStatusResponse struct {
	Body struct {
		Identity         string `doc:"Throttled identity"                            json:"identity"`
		Attempts         uint64 `doc:"Attempts recorded in the current window"      json:"attempts"`
		Limit            uint64 `doc:"Maximum attempts allowed per window"          json:"limit"`
		Allowed          bool   `doc:"Whether the identity may attempt again"       json:"allowed"`
		ExpiresInSeconds int64  `doc:"Seconds until the current window resets"      json:"expiresInSeconds"`
	}
}

// ResetThrottleRequest is the request for clearing an identity's throttle.
type ResetThrottleRequest struct {
	Identity string `doc:"Throttled identity (e.g. client IP)" example:"203.0.113.7" path:"identity"`
}
