package models

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	CompanyName     string `json:"company_name,omitempty"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type RegisterResponse struct {
	User User `json:"user"`
	TokenPair
}

type TokenRefreshRequest struct {
	Refresh string `json:"refresh"`
}

// TokenRefreshResponse carries a new access token. Refresh is only set by servers
// that rotate refresh tokens.
type TokenRefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type User struct {
	ID              int       `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	CompanyName     string    `json:"company_name"`
	HasAnthropicKey bool      `json:"has_anthropic_key"`
	HasOpenAIKey    bool      `json:"has_openai_key"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ProfileUpdate struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

type TokenVerifyRequest struct {
	Token string `json:"token"`
}

// APIKeysUpdate sets the model provider keys. A nil field is left alone, an empty
// string clears the key.
type APIKeysUpdate struct {
	AnthropicAPIKey *string `json:"anthropic_api_key,omitempty"`
	OpenAIAPIKey    *string `json:"openai_api_key,omitempty"`
}

type APIKeysResponse struct {
	Message         string `json:"message"`
	HasAnthropicKey bool   `json:"has_anthropic_key"`
	HasOpenAIKey    bool   `json:"has_openai_key"`
}

type SkillAPIKey struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	IsConfigured bool   `json:"is_configured"`
}

type SkillAPIKeys struct {
	Keys            []SkillAPIKey `json:"keys"`
	ConfiguredCount int           `json:"configured_count"`
}

// SkillAPIKeysUpdate is merged into the stored keys. An empty value removes a key.
type SkillAPIKeysUpdate struct {
	Keys map[string]string `json:"keys"`
}

type SkillAPIKeysUpdated struct {
	Message        string   `json:"message"`
	ConfiguredKeys []string `json:"configured_keys"`
}
