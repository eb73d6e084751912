package dto

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationProblem lista de erros estruturais por campo (HTTP 400).
// Todos os campos inválidos são reportados de uma vez.
type ValidationProblem struct {
	Code   string              `json:"code"`
	Errors map[string][]string `json:"errors"`
}
