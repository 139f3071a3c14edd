package dto

// PageRequest paginación skip/limit que aceptan los listados del backend.
// Se codifica como query string con go-querystring.
type PageRequest struct {
	Skip  int `url:"skip"`
	Limit int `url:"limit"`
}

// DefaultPage aplica valores por defecto (skip=0, limit=100), igual que el backend.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 100
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
}

// ErrorResponse cuerpo de error HTTP (backend simulado y respuestas JSON del cliente web).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// IDResponse respuesta mínima de los endpoints de borrado.
type IDResponse struct {
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}
