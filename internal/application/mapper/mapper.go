// Package mapper convierte registros persistidos en DTOs públicos.
// Las funciones son puras; las relaciones se componen delegando en el mapper
// de la entidad dueña para no duplicar listas de campos.
package mapper

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
