package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes passwords with a fixed bcrypt cost taken from config.
type Hasher struct {
	Cost int
}

func New(cost int) Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return Hasher{Cost: cost}
}

func (h Hasher) HashPassword(password string) (string, error) {
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashbytes), nil
}

// CheckPassword reports whether password matches hash. A hash that bcrypt
// cannot parse is an error, a plain mismatch is not.
func (h Hasher) CheckPassword(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
