package entity

import "time"

// Commune división geográfica (comuna) donde opera una empresa.
type Commune struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
