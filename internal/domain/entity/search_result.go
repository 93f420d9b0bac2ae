package entity

// SearchResult fila del índice de búsqueda proyectada al idioma pedido.
type SearchResult struct {
	CompanyID   string
	Name        string
	Description string
	Address     string
	Email       string
	ProductName string
	CommuneName string
	Score       float32
}
