// Package persistence provides gob save/load helpers for the processed
// corpus file written by the ETL and read at server startup.
package persistence

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// SaveGob encodes the given object using gob and saves it to the specified
// filePath, creating parent directories as needed.
func SaveGob(filePath string, object interface{}) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.Create(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			zap.L().Warn("failed to close file", zap.String("path", filePath), zap.Error(closeErr))
		}
	}()

	if err := gob.NewEncoder(file).Encode(object); err != nil {
		return fmt.Errorf("failed to gob encode to file %s: %w", filePath, err)
	}
	return nil
}

// LoadGob decodes a gob-encoded file from filePath into the provided object
// pointer. If the file does not exist, it returns os.ErrNotExist so callers
// can distinguish a fresh start from a corrupt file.
func LoadGob(filePath string, objectPointer interface{}) error {
	file, err := os.Open(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return os.ErrNotExist
		}
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			zap.L().Warn("failed to close file", zap.String("path", filePath), zap.Error(closeErr))
		}
	}()

	if err := gob.NewDecoder(file).Decode(objectPointer); err != nil {
		return fmt.Errorf("failed to gob decode from file %s: %w", filePath, err)
	}
	return nil
}
