package filemgr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

type EntityType string
type FileKind string

const (
	EntityChat   EntityType = "chat"
	EntityPage   EntityType = "page"
	EntityReport EntityType = "report"
	EntityUser   EntityType = "user"
	EntityVessel EntityType = "vessel"

	KindPhoto    FileKind = "photo"
	KindThumb    FileKind = "thumb"
	KindDocument FileKind = "document"
	KindFile     FileKind = "file"
)

const maxUploadSize = 10 << 20

var (
	allowedExtensions = map[FileKind][]string{
		KindPhoto:    {".jpg", ".jpeg", ".png", ".gif", ".webp"},
		KindThumb:    {".jpg"},
		KindDocument: {".pdf", ".doc", ".docx", ".txt", ".csv"},
		KindFile:     {".pdf", ".doc", ".docx", ".txt", ".csv", ".jpg", ".jpeg", ".png", ".gif", ".webp"},
	}

	allowedMIMEs = map[FileKind][]string{
		KindPhoto: {"image/jpeg", "image/png", "image/gif", "image/webp"},
		KindThumb: {"image/jpeg"},
		KindDocument: {
			"application/pdf", "application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"text/plain", "text/csv",
		},
		KindFile: {
			"application/pdf", "application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"text/plain", "text/csv",
			"image/jpeg", "image/png", "image/gif", "image/webp",
		},
	}

	kindSubfolders = map[FileKind]string{
		KindPhoto:    "photo",
		KindThumb:    "thumb",
		KindDocument: "docs",
		KindFile:     "files",
	}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
)

// ResolvePath returns the upload directory for an entity and kind.
func ResolvePath(entity EntityType, kind FileKind) string {
	subfolder := kindSubfolders[kind]
	if subfolder == "" {
		subfolder = "misc"
	}
	return filepath.Join("static", "uploads", string(entity), subfolder)
}

// SaveFile validates a multipart upload against the kind's extension and
// MIME allow-lists and writes it to destDir under a random name.
func SaveFile(reader io.Reader, header *multipart.FileHeader, entity EntityType, kind FileKind) (string, error) {
	ext := filepath.Ext(header.Filename)
	if !contains(allowedExtensions[kind], ext) {
		return "", fmt.Errorf("%w: %s for %s", ErrInvalidExtension, ext, kind)
	}

	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read header: %w", err)
	}
	mimeType := http.DetectContentType(buf[:n])
	if mimeType == "application/octet-stream" {
		if formMime := header.Header.Get("Content-Type"); formMime != "" {
			mimeType = formMime
		}
	}
	if !contains(allowedMIMEs[kind], mimeType) {
		return "", fmt.Errorf("%w: %s for %s", ErrInvalidMIME, mimeType, kind)
	}

	destDir := ResolvePath(entity, kind)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", destDir, err)
	}

	filename := uuid.New().String() + ext
	fullPath := filepath.Join(destDir, filename)
	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", fullPath, err)
	}
	defer out.Close()

	if _, err := out.Write(buf[:n]); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	written, err := io.Copy(out, io.LimitReader(reader, maxUploadSize))
	if err != nil {
		return "", fmt.Errorf("write body: %w", err)
	}
	if written+int64(n) > maxUploadSize {
		os.Remove(fullPath)
		return "", ErrFileTooLarge
	}

	return filename, nil
}

// SaveFileForEntity saves an upload and, for photos, writes a 200px
// thumbnail next to it.
func SaveFileForEntity(file multipart.File, header *multipart.FileHeader, entity EntityType, kind FileKind) (string, error) {
	defer file.Close()

	buf, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	fileName, err := SaveFile(bytes.NewReader(buf), header, entity, kind)
	if err != nil {
		return "", err
	}

	if kind == KindPhoto {
		if img, _, err := image.Decode(bytes.NewReader(buf)); err == nil {
			_ = generateThumbnail(img, entity, fileName)
		}
	}
	return fileName, nil
}

// SaveFormFiles saves every upload under formKey. With required set, an
// empty form key is an error.
func SaveFormFiles(form *multipart.Form, formKey string, entity EntityType, kind FileKind, required bool) ([]string, error) {
	files := form.File[formKey]
	if len(files) == 0 {
		if required {
			return nil, fmt.Errorf("missing required files: %s", formKey)
		}
		return nil, nil
	}

	var saved []string
	var errs []string
	for _, hdr := range files {
		file, err := hdr.Open()
		if err != nil {
			errs = append(errs, fmt.Sprintf("open %s: %v", hdr.Filename, err))
			continue
		}
		name, err := SaveFileForEntity(file, hdr, entity, kind)
		if err != nil {
			errs = append(errs, fmt.Sprintf("save %s: %v", hdr.Filename, err))
			continue
		}
		saved = append(saved, name)
	}
	if len(errs) > 0 {
		return saved, fmt.Errorf("one or more errors saving files: %s", joinErrs(errs))
	}
	return saved, nil
}

func generateThumbnail(img image.Image, entity EntityType, baseFilename string) error {
	resized := imaging.Resize(img, 200, 0, imaging.Lanczos)
	name := baseFilename[:len(baseFilename)-len(filepath.Ext(baseFilename))] + ".jpg"
	path := filepath.Join(ResolvePath(entity, KindThumb), name)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create thumbnail: %w", err)
	}
	defer out.Close()

	return jpeg.Encode(out, resized, &jpeg.Options{Quality: 85})
}
