package parse

import (
	"os"
	"testing"
)

// writeFile — хелпер для фикстур на диске.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
}
