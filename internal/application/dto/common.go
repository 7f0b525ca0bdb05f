package dto

// ErrorResponse es la respuesta estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// MessageResponse es una respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// PageRequest parámetros de paginación comunes.
type PageRequest struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"page_size" query:"page_size"`
}

// Normalize aplica los valores por defecto y límites de paginación.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset devuelve el offset SQL correspondiente a la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse envuelve una lista paginada.
type PageResponse[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPageResponse construye la respuesta paginada calculando el total de páginas.
func NewPageResponse[T any](items []T, total int, req PageRequest) PageResponse[T] {
	totalPages := total / req.PageSize
	if total%req.PageSize != 0 {
		totalPages++
	}
	if items == nil {
		items = []T{}
	}
	return PageResponse[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}
}
