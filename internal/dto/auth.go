package dto

// TokenRequest defines the credentials exchanged for a bearer token.
type TokenRequest struct {
	ClientID string `json:"clientID" binding:"required"`
	APIKey   string `json:"apiKey" binding:"required"`
}

// TokenResponse carries the issued JWT and its lifetime in seconds.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int    `json:"expiresIn"`
}
