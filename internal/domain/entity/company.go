package entity

import "time"

// Company ficha de una empresa en el directorio, asociada a un producto y una comuna.
type Company struct {
	ID            string
	UserID        string // dueño; única por usuario
	ProductID     string
	CommuneID     string
	Name          string
	DescriptionES string
	DescriptionEN string
	Address       string
	Phone         string
	Email         string
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CompanyDetail empresa con los datos desnormalizados de su dueño, producto y comuna.
type CompanyDetail struct {
	Company
	UserName      string
	UserEmail     string
	ProductNameES string
	ProductNameEN string
	CommuneName   string
}

// CompanyPatch actualización parcial de una empresa; nil = sin cambio.
type CompanyPatch struct {
	ProductID     *string
	CommuneID     *string
	Name          *string
	DescriptionES *string
	DescriptionEN *string
	Address       *string
	Phone         *string
	Email         *string
	ImageURL      *string
}

// Empty informa si el patch no modifica ningún campo.
func (p CompanyPatch) Empty() bool {
	return p.ProductID == nil && p.CommuneID == nil && p.Name == nil &&
		p.DescriptionES == nil && p.DescriptionEN == nil && p.Address == nil &&
		p.Phone == nil && p.Email == nil && p.ImageURL == nil
}

// TouchesIndex informa si el patch cambia columnas presentes en el índice de búsqueda.
// Teléfono e imagen no se indexan.
func (p CompanyPatch) TouchesIndex() bool {
	return p.ProductID != nil || p.CommuneID != nil || p.Name != nil ||
		p.DescriptionES != nil || p.DescriptionEN != nil || p.Address != nil || p.Email != nil
}

// Apply copia los campos presentes del patch sobre la empresa.
func (p CompanyPatch) Apply(c *Company) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.ProductID, p.ProductID)
	set(&c.CommuneID, p.CommuneID)
	set(&c.Name, p.Name)
	set(&c.DescriptionES, p.DescriptionES)
	set(&c.DescriptionEN, p.DescriptionEN)
	set(&c.Address, p.Address)
	set(&c.Phone, p.Phone)
	set(&c.Email, p.Email)
	set(&c.ImageURL, p.ImageURL)
}

// CompanyFilter filtros del listado de empresas sobre las tablas vivas.
type CompanyFilter struct {
	ProductID string
	CommuneID string
	Name      string // subcadena, sin distinguir mayúsculas
	Limit     int
	Offset    int
}
