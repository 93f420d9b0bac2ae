package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa. Todos los campos son obligatorios;
// el dueño es siempre el usuario autenticado.
type CreateCompanyRequest struct {
	ProductID     string `json:"product_id" validate:"required,uuid"`
	CommuneID     string `json:"commune_id" validate:"required,uuid"`
	Name          string `json:"name" validate:"required,min=1,max=100"`
	DescriptionES string `json:"description_es" validate:"required,min=1,max=100"`
	DescriptionEN string `json:"description_en" validate:"required,min=1,max=100"`
	Address       string `json:"address" validate:"required,min=1,max=100"`
	Phone         string `json:"phone" validate:"required,min=1,max=100"`
	Email         string `json:"email" validate:"required,email,max=100"`
	ImageURL      string `json:"image_url" validate:"required,min=1,max=10000"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	ProductID     *string `json:"product_id" validate:"omitempty,uuid"`
	CommuneID     *string `json:"commune_id" validate:"omitempty,uuid"`
	Name          *string `json:"name" validate:"omitempty,min=1,max=100"`
	DescriptionES *string `json:"description_es" validate:"omitempty,min=1,max=100"`
	DescriptionEN *string `json:"description_en" validate:"omitempty,min=1,max=100"`
	Address       *string `json:"address" validate:"omitempty,min=1,max=100"`
	Phone         *string `json:"phone" validate:"omitempty,min=1,max=100"`
	Email         *string `json:"email" validate:"omitempty,email,max=100"`
	ImageURL      *string `json:"image_url" validate:"omitempty,min=1,max=10000"`
}

// CompanyResponse salida de una empresa con datos de dueño, producto y comuna.
type CompanyResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	ProductID     string    `json:"product_id"`
	CommuneID     string    `json:"commune_id"`
	Name          string    `json:"name"`
	DescriptionES string    `json:"description_es"`
	DescriptionEN string    `json:"description_en"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	UserName      string    `json:"user_name,omitempty"`
	UserEmail     string    `json:"user_email,omitempty"`
	ProductNameES string    `json:"product_name_es,omitempty"`
	ProductNameEN string    `json:"product_name_en,omitempty"`
	CommuneName   string    `json:"commune_name,omitempty"`
}

// CompanyListRequest filtros del listado de empresas.
type CompanyListRequest struct {
	PageRequest
	ProductID string `query:"product_id" validate:"omitempty,uuid"`
	CommuneID string `query:"commune_id" validate:"omitempty,uuid"`
	Name      string `query:"name" validate:"omitempty,max=100"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// DeleteCompanyResponse resultado de un borrado de empresa.
type DeleteCompanyResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
