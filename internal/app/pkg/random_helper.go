package pkg

import (
	"math/rand/v2"
	"path/filepath"
	"strings"
)

const alphanumerics = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func RandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumerics[rand.IntN(len(alphanumerics))]
	}
	return string(b)
}

// TempUploadName names a temporary copy of an uploaded file, keeping the
// lower-cased extension of the client's file name.
func TempUploadName(field, clientName string) string {
	return field + "-" + RandomString(16) + strings.ToLower(filepath.Ext(clientName))
}
