package utils

import "golang.org/x/crypto/bcrypt"

// Owner token uzunluğu. Kart oluşturulurken bir kez üretilir ve
// yalnızca bcrypt hash'i saklanır.
const OwnerTokenLength = 32

// GenerateOwnerToken yeni bir owner token ve bcrypt hash'ini üretir.
func GenerateOwnerToken() (token string, hash string, err error) {
	token, err = GenerateSecureRandomString(OwnerTokenLength)
	if err != nil {
		return "", "", err
	}
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return token, string(hashBytes), nil
}

// CheckOwnerToken düz metin token'ı saklanan hash ile karşılaştırır.
func CheckOwnerToken(hash string, token string) bool {
	if hash == "" || token == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
