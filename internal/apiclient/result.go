package apiclient

// Result is the discriminated outcome of one resource action. Exactly one
// of the branches is populated: Data on success, FieldErrors when input
// validation failed before any network call, or Message for every other
// failure. LoginRequired marks the "please log in" prompt.
type Result[T any] struct {
	Data          *T
	FieldErrors   map[string][]string
	Message       string
	LoginRequired bool
}

func (r Result[T]) OK() bool { return r.Data != nil }

func success[T any](data T) Result[T] {
	return Result[T]{Data: &data}
}

func invalid[T any](fieldErrors map[string][]string) Result[T] {
	return Result[T]{FieldErrors: fieldErrors}
}

func failed[T any](message string) Result[T] {
	return Result[T]{Message: message}
}

func loginPrompt[T any](message string) Result[T] {
	return Result[T]{Message: message, LoginRequired: true}
}
