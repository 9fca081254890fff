package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"
)

const randomStringCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSecureRandomString crypto/rand ile verilen uzunlukta
// URL-safe rastgele bir string üretir. Link anahtarları ve owner
// token üretiminde kullanılır.
func GenerateSecureRandomString(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("uzunluk pozitif olmalı")
	}
	result := make([]byte, length)
	max := big.NewInt(int64(len(randomStringCharset)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		result[i] = randomStringCharset[n.Int64()]
	}
	return string(result), nil
}

// dateLayouts API'nin kabul ettiği tarih formatları.
// İstemciler hem tam RFC3339 hem de sade "2006-01-02" gönderebilir.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate bilinen formatlardan birini deneyerek tarih parse eder.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("geçersiz tarih formatı: " + value)
}

// MustParseDate sabit değerler (seed verisi) için kullanılır; hata durumunda panikler.
func MustParseDate(value string) time.Time {
	t, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return t
}
