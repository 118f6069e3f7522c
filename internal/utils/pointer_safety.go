package utils

// Ptr returns a pointer to a copy of v, for optional payload fields.
func Ptr[T any](v T) *T {
	return &v
}
