package entity

import "time"

// Kind tipo de registro que el motor de archivado sabe mover a su tabla sombra.
type Kind string

const (
	KindUser    Kind = "user"
	KindProduct Kind = "product"
	KindCommune Kind = "commune"
	KindCompany Kind = "company"
)

// DeletedUser copia archivada de un usuario.
type DeletedUser struct {
	User
	DeletedAt time.Time
}

// DeletedProduct copia archivada de un producto.
type DeletedProduct struct {
	Product
	DeletedAt time.Time
}

// DeletedCommune copia archivada de una comuna.
type DeletedCommune struct {
	Commune
	DeletedAt time.Time
}

// DeletedCompany copia archivada de una empresa.
type DeletedCompany struct {
	Company
	DeletedAt time.Time
}

// UserDeletion resultado del borrado en cascada de un usuario.
type UserDeletion struct {
	UserID           string
	Email            string
	CompaniesDeleted int
}
