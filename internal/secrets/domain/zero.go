package domain

// Zero overwrites key material once an entry has been decrypted.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
