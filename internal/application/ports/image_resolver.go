package ports

// ImageResolver normaliza la referencia de imagen de una empresa a la URL que se persiste.
type ImageResolver interface {
	Resolve(ref string) (string, error)
}
