package server

import (
	"io"
	"os"
	"path/filepath"
)

// spoolToTempFile copies an uploaded multipart file to a temp file that
// keeps the original extension, since the Decoder Adapter dispatches on
// file extension.
func spoolToTempFile(r io.Reader, originalName string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return spoolBytesToTempFile(data, originalName)
}

func spoolBytesToTempFile(data []byte, originalName string) (string, error) {
	f, err := os.CreateTemp("", "fprint-upload-*"+filepath.Ext(originalName))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
