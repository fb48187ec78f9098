package handler

// NoCredentialsError is returned when no token was supplied.
type NoCredentialsError struct{}

func (m *NoCredentialsError) Error() string {
	return "no credentials found"
}
