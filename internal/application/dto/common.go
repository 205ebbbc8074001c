package dto

// RequestContext campos que el middleware de auth extrae del token y que
// acompañan toda petición mutante: identidad del usuario y scope de sucursal.
type RequestContext struct {
	Username  string
	Role      string
	Localidad string
	Sucursal  string
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de respuesta con solo un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
