package utils

import (
	"fmt"
	"os"
	"strings"
)

// secretsDir - стандартный путь Docker Secrets.
const secretsDir = "/run/secrets"

// ReadSecret читает обязательный секрет из файла Docker Secrets.
// Fallback на переменные окружения намеренно отсутствует, чтобы поведение
// в production было консистентным.
func ReadSecret(secretName string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", secretsDir, secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}
