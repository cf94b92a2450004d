package repositories

import "context"

// BookSource downloads the raw text of a book from a URL.
type BookSource interface {
	Download(ctx context.Context, url string) (string, error)
}
