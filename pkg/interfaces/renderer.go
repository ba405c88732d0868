package interfaces

// HTMLRenderer converts Markdown bodies into HTML. Implementations should be
// reusable across documents and honour the supplied option overrides.
type HTMLRenderer interface {
	// Render converts Markdown into HTML using the renderer's default settings.
	Render(markdown []byte) ([]byte, error)
	// RenderWithOptions converts Markdown into HTML using the supplied overrides.
	RenderWithOptions(markdown []byte, opts HTMLOptions) ([]byte, error)
}

// HTMLOptions customises Markdown to HTML conversion, keeping option names
// readable for configuration unmarshalling and CLI flags.
type HTMLOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}
