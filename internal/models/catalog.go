package models

// Catalog resolves a slug to its model descriptor.
type Catalog interface {
	// Load reads the descriptor for the slug from static storage.
	Load(slug string) (*Descriptor, error)
}
