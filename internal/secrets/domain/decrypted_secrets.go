package domain

// DecryptedSecrets is the plaintext view of a bundle. It is built once at startup and is
// read-only afterwards, so it can be shared between goroutines without locking.
type DecryptedSecrets struct {
	values map[string]map[string]string
}

// NewDecryptedSecrets copies values into a new immutable DecryptedSecrets.
func NewDecryptedSecrets(values map[string]map[string]string) *DecryptedSecrets {
	copied := make(map[string]map[string]string, len(values))
	for env, secrets := range values {
		inner := make(map[string]string, len(secrets))
		for k, v := range secrets {
			inner[k] = v
		}
		copied[env] = inner
	}
	return &DecryptedSecrets{values: copied}
}

// Get returns the plaintext of key within environment.
func (d *DecryptedSecrets) Get(environment, key string) (string, bool) {
	secrets, ok := d.values[environment]
	if !ok {
		return "", false
	}
	v, ok := secrets[key]
	return v, ok
}

// Environments returns the environment names in lexical order.
func (d *DecryptedSecrets) Environments() []string {
	return sortedKeys(d.values)
}

// Keys returns the secret names of environment in lexical order.
func (d *DecryptedSecrets) Keys(environment string) []string {
	return sortedKeys(d.values[environment])
}

// Len returns the total number of secrets across all environments.
func (d *DecryptedSecrets) Len() int {
	n := 0
	for _, secrets := range d.values {
		n += len(secrets)
	}
	return n
}

// String never renders plaintext values.
func (d *DecryptedSecrets) String() string {
	return "DecryptedSecrets{[REDACTED]}"
}
