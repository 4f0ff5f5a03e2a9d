package utils

import "golang.org/x/crypto/bcrypt"

// PasswordCost 与原有数据保持一致（bcrypt 10 轮）
const PasswordCost = bcrypt.DefaultCost

// bcrypt 只使用前 72 字节
const maxPasswordBytes = 72

func clip(pw string) []byte {
	b := []byte(pw)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(clip(pw), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), clip(pw)) == nil
}
