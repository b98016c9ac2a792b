package texts

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// Write replaces the sentence file at path atomically.
func Write(path string, sentences []string) error {
	if len(sentences) == 0 {
		return ErrNoSentences
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create texts dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "texts-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp texts: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, sentence := range sentences {
		if _, err := fmt.Fprintln(writer, sentence); err != nil {
			return fmt.Errorf("failed to write texts: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush texts: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close texts: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write texts: %w", err)
	}
	return nil
}
