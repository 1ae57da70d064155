package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Entry is one encrypted secret. Every field is a lowercase hex encoding of raw bytes and
// each entry carries its own AES-256 key and CBC initialization vector.
type Entry struct {
	Token string `json:"token"`
	IV    string `json:"iv"`
	Key   string `json:"key"`
}

// Bundle maps an environment name to its encrypted secrets keyed by secret name.
type Bundle map[string]map[string]Entry

// Validate reports a missing field. A field that is absent, null or empty is missing.
func (e Entry) Validate() error {
	var missing []string
	if e.Token == "" {
		missing = append(missing, "token")
	}
	if e.IV == "" {
		missing = append(missing, "iv")
	}
	if e.Key == "" {
		missing = append(missing, "key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// ParseBundle decodes the JSON bundle format
// {"<environment>": {"<secret>": {"token": hex, "iv": hex, "key": hex}}}.
func ParseBundle(data []byte) (Bundle, error) {
	var raw map[string]map[string]*Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBundle, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: top-level value must be an object", ErrMalformedBundle)
	}

	bundle := make(Bundle, len(raw))
	for env, entries := range raw {
		if entries == nil {
			return nil, fmt.Errorf("%w: %s: environment must be an object", ErrMalformedBundle, env)
		}
		bundle[env] = make(map[string]Entry, len(entries))
		for name, entry := range entries {
			if entry == nil {
				return nil, fmt.Errorf("%w: %s/%s: entry must be an object", ErrMalformedBundle, env, name)
			}
			bundle[env][name] = *entry
		}
	}

	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return bundle, nil
}

// Validate checks every entry in lexical order and reports the first incomplete one.
func (b Bundle) Validate() error {
	for _, env := range b.Environments() {
		for _, name := range b.Keys(env) {
			if err := b[env][name].Validate(); err != nil {
				return fmt.Errorf("%w: %s/%s: %v", ErrMalformedBundle, env, name, err)
			}
		}
	}
	return nil
}

// Environments returns the bundle environments in lexical order.
func (b Bundle) Environments() []string {
	return sortedKeys(b)
}

// Keys returns the secret names of environment in lexical order.
func (b Bundle) Keys(environment string) []string {
	return sortedKeys(b[environment])
}

// Marshal encodes the bundle in its on-disk JSON format.
func (b Bundle) Marshal() ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
