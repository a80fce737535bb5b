package dto

// Response is the uniform envelope for every API response.
type Response struct {
	Success    bool                `json:"success"`
	Data       interface{}         `json:"data,omitempty"`
	Error      string              `json:"error,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	Pagination *Pagination         `json:"pagination,omitempty"`
}

// Pagination is the metadata attached to list responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes pagination metadata for a result set.
func NewPagination(page, limit int, total int64) *Pagination {
	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// OK wraps data in a success envelope.
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// OKPaginated wraps a list result with pagination metadata.
func OKPaginated(data interface{}, pagination *Pagination) Response {
	return Response{Success: true, Data: data, Pagination: pagination}
}

// Err wraps a message in a failure envelope.
func Err(message string) Response {
	return Response{Success: false, Error: message}
}

// ValidationErr wraps field errors in a failure envelope.
func ValidationErr(errors map[string][]string) Response {
	return Response{Success: false, Error: "Validation failed", Errors: errors}
}
