package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/abclisten/pkg/errors"
	"github.com/matzehuels/abclisten/pkg/library"
)

// WriteBackup encodes b as JSON or YAML.
func WriteBackup(b library.Backup, format string, w io.Writer) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported backup format: %s (valid: json, yaml)", format)
	}
}

// ReadBackup decodes a backup in the given format.
func ReadBackup(r io.Reader, format string) (library.Backup, error) {
	var b library.Backup
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&b)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&b)
	default:
		return b, errors.New(errors.ErrCodeInvalidFormat, "unsupported backup format: %s (valid: json, yaml)", format)
	}
	if err != nil {
		return library.Backup{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s backup", format)
	}
	if b.Version > library.BackupVersion {
		return library.Backup{}, errors.New(errors.ErrCodeUnsupported, "backup version %d is newer than supported version %d", b.Version, library.BackupVersion)
	}
	return b, nil
}

// BackupFormat infers the backup format from a file extension, defaulting
// to JSON.
func BackupFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ExportBackup writes b to path in the format implied by its extension.
func ExportBackup(b library.Backup, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteBackup(b, BackupFormat(path), f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ImportBackup reads a backup file, choosing the format by extension.
func ImportBackup(path string) (library.Backup, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return library.Backup{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "backup %s", path)
		}
		return library.Backup{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadBackup(f, BackupFormat(path))
}
