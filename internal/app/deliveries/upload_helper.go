package deliveries

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/app/services"
)

// saveUpload stores the multipart file in field under dir and returns its
// path, or "" when the field is absent. Callers own the file afterwards.
func saveUpload(c *fiber.Ctx, dir, field string) (string, error) {
	header, err := c.FormFile(field)
	if err != nil || header == nil {
		return "", nil
	}

	path := filepath.Join(dir, pkg.TempUploadName(field, header.Filename))
	if err := c.SaveFile(header, path); err != nil {
		return "", errors.NewInternalServerError(err, "Failed to store uploaded file")
	}
	return path, nil
}

// saveUploads stores several fields at once. On failure every file saved
// so far is removed again.
func saveUploads(c *fiber.Ctx, dir string, fields ...string) ([]string, error) {
	paths := make([]string, 0, len(fields))
	for _, field := range fields {
		path, err := saveUpload(c, dir, field)
		if err != nil {
			for _, saved := range paths {
				services.RemoveLocalFile(saved)
			}
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
