package catalog

import (
	"fmt"
	"strings"
)

// Category is one of the closed set of quote groupings
type Category string

const (
	// All is the wildcard used by filters; it is never stored on a Quote
	All Category = ""

	Motivation  Category = "Motivación y Superación Personal"
	Behavior    Category = "El Enigma del Comportamiento Humano"
	Unconscious Category = "Las Profundidades del Inconsciente"
)

// Categories returns the concrete categories in display order
func Categories() []Category {
	return []Category{Motivation, Behavior, Unconscious}
}

// Valid reports whether c is one of the concrete categories
func (c Category) Valid() bool {
	switch c {
	case Motivation, Behavior, Unconscious:
		return true
	default:
		return false
	}
}

// Label returns the display name, "Todo" for the wildcard
func (c Category) Label() string {
	if c == All {
		return "Todo"
	}
	return string(c)
}

// ShortLabel returns the tab label: first word of the category followed by "..."
func (c Category) ShortLabel() string {
	if c == All {
		return "Todo"
	}
	first, _, _ := strings.Cut(string(c), " ")
	return first + "..."
}

// Key returns a stable ASCII identifier used by commands and the CLI
func (c Category) Key() string {
	switch c {
	case Motivation:
		return "motivation"
	case Behavior:
		return "behavior"
	case Unconscious:
		return "unconscious"
	default:
		return "all"
	}
}

// ParseCategory resolves user input to a category.
// Accepts the ASCII key, the Spanish label, or any case-insensitive prefix of either.
func ParseCategory(s string) (Category, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	if needle == "" || needle == "all" || needle == "todo" || needle == "*" {
		return All, nil
	}

	var matches []Category
	for _, c := range Categories() {
		if strings.HasPrefix(c.Key(), needle) || strings.HasPrefix(strings.ToLower(string(c)), needle) {
			matches = append(matches, c)
			continue
		}
		// "inconsciente" should find "Las Profundidades del Inconsciente"
		for _, word := range strings.Fields(strings.ToLower(string(c))) {
			if len(word) > 3 && strings.HasPrefix(word, needle) {
				matches = append(matches, c)
				break
			}
		}
	}

	switch len(matches) {
	case 0:
		return All, fmt.Errorf("unknown category %q", s)
	case 1:
		return matches[0], nil
	default:
		return All, fmt.Errorf("ambiguous category %q", s)
	}
}

// Quote is an immutable catalog record
type Quote struct {
	ID       string
	Text     string
	Author   string
	Book     string
	Category Category
	VisualID string // Seed for prompt construction and placeholder imagery
}

// Catalog holds the fixed, ordered set of quotes
type Catalog struct {
	quotes []Quote
	byID   map[string]int
}

// New builds a catalog, rejecting duplicate ids and unknown categories
func New(quotes []Quote) (*Catalog, error) {
	c := &Catalog{
		quotes: make([]Quote, len(quotes)),
		byID:   make(map[string]int, len(quotes)),
	}
	copy(c.quotes, quotes)

	for i, q := range c.quotes {
		if q.ID == "" {
			return nil, fmt.Errorf("quote at position %d has no id", i)
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate quote id %q", q.ID)
		}
		if !q.Category.Valid() {
			return nil, fmt.Errorf("quote %q has unknown category %q", q.ID, q.Category)
		}
		c.byID[q.ID] = i
	}

	return c, nil
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(builtinQuotes)
	if err != nil {
		// builtinQuotes is static data covered by tests
		panic(err)
	}
	return c
}

// Len returns the number of quotes
func (c *Catalog) Len() int {
	return len(c.quotes)
}

// All returns every quote in catalog order
func (c *Catalog) All() []Quote {
	out := make([]Quote, len(c.quotes))
	copy(out, c.quotes)
	return out
}

// Lookup finds a quote by id
func (c *Catalog) Lookup(id string) (Quote, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Quote{}, false
	}
	return c.quotes[i], true
}

// Filter returns the quotes matching both the category and the search query,
// preserving catalog order. The result is never nil; no match yields an empty slice.
func (c *Catalog) Filter(category Category, query string) []Quote {
	out := []Quote{}
	for _, q := range c.quotes {
		if Matches(q, category, query) {
			out = append(out, q)
		}
	}
	return out
}

// Matches applies the filter predicate to a single quote.
// query is compared case-insensitively against the text and the author.
func Matches(q Quote, category Category, query string) bool {
	if category != All && q.Category != category {
		return false
	}
	needle := strings.ToLower(query)
	return strings.Contains(strings.ToLower(q.Text), needle) ||
		strings.Contains(strings.ToLower(q.Author), needle)
}
