package provision

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var ErrUnsafePath = errors.New("archive entry escapes destination")

// Extract expands every entry of the archive at path into destination,
// preserving the relative paths stored in the archive.
// Zip and tar.gz archives are supported; the format is detected from the content,
// not from the file name. The archive itself is left in place.
func Extract(archive, destination string) (err error) {
	logdetail(fmt.Sprintf("extracting %s to %s", archive, destination))

	defer timed(time.Now(), &err)

	file, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat archive: %w", err)
	}

	// zip is located through its central directory at the end of the file,
	// so empty archives and archives with a prepended stub are found too
	zipped, ziperr := zip.NewReader(file, info.Size())
	if errors.Is(ziperr, zip.ErrInsecurePath) {
		return fmt.Errorf("%w: %w", ErrUnsafePath, ziperr)
	}
	if ziperr == nil {
		if err := os.MkdirAll(destination, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", destination, err)
		}
		return unzip(zipped, destination)
	}

	// sniff mime header to determine file type
	header := make([]byte, 512)
	n, err := file.ReadAt(header, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read archive header: %w", err)
	}

	switch mime := http.DetectContentType(header[:n]); mime {
	case "application/zip":
		return fmt.Errorf("failed to create zip reader: %w", ziperr)
	case "application/x-gzip":
		if err := os.MkdirAll(destination, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", destination, err)
		}
		return untar(io.NewSectionReader(file, 0, info.Size()), destination)
	default:
		return fmt.Errorf("unsupported format: %s", mime)
	}
}

// handles .zip files
func unzip(reader *zip.Reader, destination string) error {
	for _, entry := range reader.File {
		target, err := sanitize(destination, entry.Name)
		if err != nil {
			return err
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}

		contents, err := entry.Open()
		if err != nil {
			return fmt.Errorf("failed to open entry %s: %w", entry.Name, err)
		}

		err = write(target, contents, entry.Mode())
		contents.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

// handles .tar.gz files
func untar(file io.Reader, destination string) error {
	decompressor, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer decompressor.Close()

	reader := tar.NewReader(decompressor)

	for {
		header, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("failed to read tar entry: %w", err)
		}

		target, err := sanitize(destination, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := write(target, reader, header.FileInfo().Mode()); err != nil {
				return err
			}
		}
	}

	return nil
}

// write copies data into a new file at target, creating parent directories as needed.
func write(target string, data io.Reader, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(target), err)
	}

	perm := mode.Perm()
	if perm == 0 {
		perm = 0o644
	}

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, data); err != nil {
		return fmt.Errorf("failed to copy data to file %s: %w", target, err)
	}

	return out.Close()
}

// sanitize joins name to destination, refusing entries that would land outside of it.
func sanitize(destination, name string) (string, error) {
	target := filepath.Join(destination, filepath.FromSlash(name))

	rel, err := filepath.Rel(destination, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}

	return target, nil
}
