package dto

// ActionResult sobre uniforme de respuesta de la capa de acciones.
// Éxito: {success: true, data: ...}; fallo: {success: false, error: "mensaje"}.
type ActionResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// OK envuelve un resultado exitoso.
func OK(data any) ActionResult {
	return ActionResult{Success: true, Data: data}
}

// Fail envuelve un error con su código de máquina.
func Fail(code, message string) ActionResult {
	return ActionResult{Success: false, Code: code, Error: message}
}
