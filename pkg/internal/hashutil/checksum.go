package hashutil

import (
	"crypto/sha256"
	"fmt"

	"github.com/arthur-debert/srcbundle/pkg/types"
)

// Checksum returns the SHA256 checksum of content as "sha256:<hex>"
func Checksum(content string) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256([]byte(content)))
}

// FileChecksum reads path from fsys and returns the checksum of its content
// after normalize is applied. A nil normalize hashes the raw bytes.
func FileChecksum(fsys types.FS, path string, normalize func(string) string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", err
	}
	content := string(data)
	if normalize != nil {
		content = normalize(content)
	}
	return Checksum(content), nil
}
