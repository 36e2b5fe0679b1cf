package utils

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// HashChave gera o hash bcrypt de uma chave administrativa
func HashChave(chave string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(chave), bcrypt.DefaultCost)
	return string(hash), err
}

// ConferirChave compara o hash bcrypt com a chave em texto puro
func ConferirChave(hash, chave string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(chave)) == nil
}

// GerarChave gera uma chave aleatória com n caracteres alfanuméricos
func GerarChave(n int) (string, error) {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, n)
	for i := range result {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", err
		}
		result[i] = chars[num.Int64()]
	}
	return string(result), nil
}
