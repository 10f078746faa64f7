package scrollscene

// ProgramCache stores compiled expression programs keyed by expression
// strings. Scenes re-resolve expression lengths on every geometry
// notification, so a cache avoids recompiling hot expressions per frame.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// MapProgramCache is a minimal in-memory ProgramCache. It is not
// goroutine-safe; it shares the scene's single-goroutine ownership model.
type MapProgramCache map[string]any

// Get returns the cached program for key.
func (c MapProgramCache) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// Set stores the program for key.
func (c MapProgramCache) Set(key string, value any) {
	c[key] = value
}
