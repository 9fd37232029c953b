package patient

import (
	"context"
)

// Repository loads and persists the whole record collection. Handlers never
// touch storage directly; the service reads the collection at the start of a
// request and writes it back only after a successful mutation.
type Repository interface {
	Load(ctx context.Context) (*Collection, error)
	Save(ctx context.Context, c *Collection) error
}
