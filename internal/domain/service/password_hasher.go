// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for admin password hashing and verification.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash.
	Check(password, hash string) bool
}
