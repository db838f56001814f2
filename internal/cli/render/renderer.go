package render

// Renderer renders one result type to the terminal.
type Renderer[T any] interface {
	Render(result T) error
}
