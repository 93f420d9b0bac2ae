package repository

// Isolation nivel de aislamiento de una transacción.
type Isolation int

const (
	ReadCommitted Isolation = iota
	Serializable
)

// TxOptions opciones de transacción pedidas por los casos de uso.
type TxOptions struct {
	Isolation Isolation
	ReadOnly  bool
}

// Store agrupa los repositorios atados a una misma transacción.
type Store struct {
	Users     UserRepository
	Products  ProductRepository
	Communes  CommuneRepository
	Companies CompanyRepository
	Archive   ArchiveRepository
}
