package pagination

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Page is one slice of a list plus its navigation.
type Page[T any] struct {
	Items []T
	Total int
	Next  string
	Prev  string
	Link  string
}

// Window describes how to page one kind of list.
type Window[T any] struct {
	Kind  string
	Key   func(T) string
	Path  string
	Query url.Values
}

// Slice returns the page that follows rawCursor.
func (w Window[T]) Slice(items []T, rawCursor string, limit int) (Page[T], error) {
	cur, err := DecodeCursor(rawCursor)
	if err != nil {
		return Page[T]{}, err
	}
	if cur.Kind != "" && cur.Kind != w.Kind {
		return Page[T]{}, ErrCursorKind
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	start := 0
	if cur.After != "" {
		i := slices.IndexFunc(items, func(it T) bool { return w.Key(it) == cur.After })
		if i < 0 {
			return Page[T]{}, ErrUnknownCursor
		}
		start = i + 1
	}
	end := min(start+limit, len(items))

	p := Page[T]{Items: items[start:end], Total: len(items)}
	if end < len(items) {
		p.Next = Cursor{Kind: w.Kind, After: w.Key(items[end-1])}.Encode()
	}
	if start > 0 {
		after := ""
		if start > limit {
			after = w.Key(items[start-limit-1])
		}
		p.Prev = Cursor{Kind: w.Kind, After: after}.Encode()
	}

	q := cloneValues(w.Query)
	q.Set("limit", strconv.Itoa(limit))
	p.Link = LinkHeader(w.Path, q, p.Next, p.Prev)
	return p, nil
}

// LinkHeader builds an RFC 8288 header with next and prev relations,
// keeping the other query parameters.
func LinkHeader(path string, query url.Values, next, prev string) string {
	var links []string
	for _, rel := range []struct{ name, cursor string }{{"next", next}, {"prev", prev}} {
		if rel.cursor == "" {
			continue
		}
		q := cloneValues(query)
		q.Set("cursor", rel.cursor)
		links = append(links, fmt.Sprintf(`<%s?%s>; rel="%s"`, path, q.Encode(), rel.name))
	}
	return strings.Join(links, ", ")
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = slices.Clone(vals)
	}
	return out
}
