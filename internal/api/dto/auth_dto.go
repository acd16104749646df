package dto

// LoginForm is posted by the sign-in screen.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}
