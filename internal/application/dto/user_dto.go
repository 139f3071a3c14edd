package dto

// LoginRequest credenciales del formulario de login. El backend las recibe como
// application/x-www-form-urlencoded (OAuth2 password flow), de ahí los tags url.
type LoginRequest struct {
	Username string `url:"username" form:"username"`
	Password string `url:"password" form:"password"`
}

// LoginResponse respuesta de POST /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse usuario expuesto por el backend simulado (sin hash).
type UserResponse struct {
	ID       int64    `json:"usuario_id"`
	Username string   `json:"username"`
	Name     string   `json:"nombre"`
	Roles    []string `json:"roles"`
	Active   bool     `json:"activo"`
}
