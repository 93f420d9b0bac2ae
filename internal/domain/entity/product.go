package entity

import "time"

// Product categoría de producto bilingüe bajo la cual se registran empresas.
type Product struct {
	ID        string
	NameES    string
	NameEN    string
	CreatedAt time.Time
}
