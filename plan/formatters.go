package plan

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/kbukum/lego/query"
	"github.com/kbukum/lego/util"
)

// Registry provides named formatter lookup for format steps.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]query.Formatter
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[string]query.Formatter)}
}

// DefaultRegistry returns a Registry holding the built-in formatters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("upper", mapString(strings.ToUpper))
	r.Register("lower", mapString(strings.ToLower))
	r.Register("trim", mapString(util.SanitizeString))
	r.Register("title", mapString(title))
	r.Register("string", func(v any) any { return util.Stringify(v) })
	r.Register("phone", Phone)
	r.Register("date", Date)
	return r
}

// Register adds or replaces a formatter.
func (r *Registry) Register(name string, f query.Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatters[name] = f
}

// Get retrieves a formatter by name.
func (r *Registry) Get(name string) (query.Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formatters[name]
	return f, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns sorted names of all registered formatters.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return util.SortedKeys(r.formatters)
}

// mapString applies fn to string values and passes anything else through.
func mapString(fn func(string) string) query.Formatter {
	return func(v any) any {
		if s, ok := v.(string); ok {
			return fn(s)
		}
		return v
	}
}

func title(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upper := true
	for _, r := range s {
		if upper {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		upper = unicode.IsSpace(r) || r == '-'
	}
	return b.String()
}

// Phone formats an eleven-digit number as "+7 (555) 666-77-88". Values
// with any other digit count are returned unchanged.
func Phone(v any) any {
	if v == nil {
		return nil
	}
	d := util.Digits(util.Stringify(v))
	if len(d) != 11 {
		return v
	}
	return fmt.Sprintf("+%s (%s) %s-%s-%s", d[0:1], d[1:4], d[4:7], d[7:9], d[9:11])
}

// Date renders times and RFC 3339 strings as 2006-01-02. Other values are
// returned unchanged.
func Date(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.Format(time.DateOnly)
	case string:
		if t, err := time.Parse(time.RFC3339, val); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return v
}
