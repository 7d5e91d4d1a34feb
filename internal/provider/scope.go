package provider

import (
	"slices"
	"strings"
)

// Scope is a read-only view of one extension's configuration. Keys are the
// lower-cased suffix of environment variables named EXT_<ID>_<KEY>, where ID
// is the upper-cased extension ID with '-' and '.' replaced by '_'.
type Scope struct {
	values map[string]string
}

// NewScope builds the scope of extension id from environ ("KEY=value" pairs,
// as returned by os.Environ).
func NewScope(id string, environ []string) Scope {
	prefix := EnvPrefix(id)
	values := make(map[string]string)
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(k, prefix))
		if key == "" {
			continue
		}
		values[key] = v
	}
	return Scope{values: values}
}

// EnvPrefix returns the environment variable prefix of extension id.
func EnvPrefix(id string) string {
	r := strings.NewReplacer("-", "_", ".", "_")
	return "EXT_" + strings.ToUpper(r.Replace(id)) + "_"
}

// Get returns the value of key and whether it was set.
func (s Scope) Get(key string) (string, bool) {
	v, ok := s.values[strings.ToLower(key)]
	return v, ok
}

// GetOr returns the value of key, or def when unset.
func (s Scope) GetOr(key, def string) string {
	if v, ok := s.Get(key); ok {
		return v
	}
	return def
}

// Keys returns the configured keys in sorted order.
func (s Scope) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
