package handler

// MessageResponse confirms a successful sign-up or unregister.
type MessageResponse struct {
	Message string `json:"message"`
}
