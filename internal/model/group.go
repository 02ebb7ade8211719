package model

import "strings"

const groupNumberChars = "0123456789/"

// IsValidGroupNumber проверяет номер группы: только цифры и '/'.
// Такие значения, как "Время" или пустые заголовки, отбрасываются.
func IsValidGroupNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(groupNumberChars, r) {
			return false
		}
	}
	return true
}
