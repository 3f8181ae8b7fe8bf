package auth

type LoginRequest struct {
	UserID     string  `json:"user_id"`
	Password   *string `json:"password,omitempty"`
	AccessTTL  *int64  `json:"access_exp,omitempty"`
	RefreshTTL *int64  `json:"refresh_exp,omitempty"`
}
