package dto

import "time"

// CreateProductRequest entrada para crear un producto. Basta un nombre: el otro se traduce.
type CreateProductRequest struct {
	NameES string `json:"name_es" validate:"required_without=NameEN,max=100"`
	NameEN string `json:"name_en" validate:"required_without=NameES,max=100"`
}

// UpdateProductRequest entrada para renombrar un producto (campos opcionales).
type UpdateProductRequest struct {
	NameES *string `json:"name_es" validate:"omitempty,min=1,max=100"`
	NameEN *string `json:"name_en" validate:"omitempty,min=1,max=100"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string    `json:"id"`
	NameES    string    `json:"name_es"`
	NameEN    string    `json:"name_en"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommuneRequest entrada para crear una comuna.
type CreateCommuneRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdateCommuneRequest entrada para renombrar una comuna.
type UpdateCommuneRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CommuneResponse salida de una comuna.
type CommuneResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
