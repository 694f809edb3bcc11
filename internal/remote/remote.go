package remote

import (
	"context"
	"errors"
	"strings"
)

// Loading is shown in a picker while a listing is in flight. It is never a
// valid selection.
const Loading = "Loading..."

// Selectable reports whether value can be sent as a subscription or
// namespace selector.
func Selectable(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && value != Loading
}

// Link is one entry returned by a Payara Cloud listing.
type Link struct {
	Title string `json:"title"`
	Href  string `json:"href,omitempty"`
}

// Source fetches listings from Payara Cloud.
type Source interface {
	Subscriptions(ctx context.Context) ([]Link, error)
	Namespaces(ctx context.Context, subscription string) ([]Link, error)
}

// ErrFetch matches every failed remote listing.
var ErrFetch = errors.New("remote fetch failed")

// FetchError reports which listing failed.
type FetchError struct {
	What string
	Err  error
}

func (e *FetchError) Error() string {
	return "fetch " + e.What + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Titles extracts link titles in order.
func Titles(links []Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Title)
	}
	return out
}
