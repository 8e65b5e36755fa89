package storage

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"curiovault/internal/catalogue/domain/model"

	"github.com/disintegration/imaging"
)

const (
	mediumMaxEdge = 800
	thumbMaxEdge  = 200
	jpegQuality   = 85
)

// ImageStore persists image renditions on disk. Every upload is stored as
// three JPEG renditions under
// {root}/{ownerID}/{collectionID}/{itemID}/{imageID}_{variant}.jpg.
type ImageStore struct {
	root string
}

// NewImageStore creates the store rooted at dir.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &ImageStore{root: dir}, nil
}

// VariantPath returns the relative path of one rendition.
func (s *ImageStore) VariantPath(ownerID, collectionID, itemID, imageID string, variant model.ImageVariant) string {
	return filepath.Join(ownerID, collectionID, itemID,
		fmt.Sprintf("%s_%s.jpg", imageID, variant))
}

// AbsPath resolves a relative rendition path under the store root.
func (s *ImageStore) AbsPath(relPath string) string {
	return filepath.Join(s.root, relPath)
}

// Save decodes the upload and writes the original, medium and thumb
// renditions. Returns model.ErrImageTypeInvalid when the bytes are not a
// decodable image.
func (s *ImageStore) Save(ownerID, collectionID, itemID, imageID string, data []byte) error {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return model.ErrImageTypeInvalid
	}

	dir := filepath.Join(s.root, ownerID, collectionID, itemID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	renditions := map[model.ImageVariant]image.Image{
		model.VariantOriginal: src,
		model.VariantMedium:   downscale(src, mediumMaxEdge),
		model.VariantThumb:    downscale(src, thumbMaxEdge),
	}

	for variant, img := range renditions {
		path := s.AbsPath(s.VariantPath(ownerID, collectionID, itemID, imageID, variant))
		if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality)); err != nil {
			s.Remove(ownerID, collectionID, itemID, imageID)
			return fmt.Errorf("failed to write %s rendition: %w", variant, err)
		}
	}

	return nil
}

// downscale shrinks img so its longest edge is at most maxEdge, never
// upscaling.
func downscale(img image.Image, maxEdge int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= maxEdge && bounds.Dy() <= maxEdge {
		return img
	}
	return imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
}

// Remove deletes every rendition of one image. Missing files are ignored.
func (s *ImageStore) Remove(ownerID, collectionID, itemID, imageID string) {
	for _, variant := range []model.ImageVariant{model.VariantOriginal, model.VariantMedium, model.VariantThumb} {
		path := s.AbsPath(s.VariantPath(ownerID, collectionID, itemID, imageID, variant))
		_ = os.Remove(path)
	}
}

// RemoveItem deletes the directory holding an item's renditions.
func (s *ImageStore) RemoveItem(ownerID, collectionID, itemID string) error {
	return os.RemoveAll(filepath.Join(s.root, ownerID, collectionID, itemID))
}

// RemoveCollection deletes the directory holding a collection's renditions.
func (s *ImageStore) RemoveCollection(ownerID, collectionID string) error {
	return os.RemoveAll(filepath.Join(s.root, ownerID, collectionID))
}

// SaveAvatar writes a user's avatar as a single thumb rendition and returns
// its relative path.
func (s *ImageStore) SaveAvatar(userID string, data []byte) (string, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", model.ErrImageTypeInvalid
	}

	dir := filepath.Join(s.root, "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create avatar directory: %w", err)
	}

	relPath := filepath.Join("avatars", fmt.Sprintf("%s_thumb.jpg", userID))
	if err := imaging.Save(downscale(src, thumbMaxEdge), s.AbsPath(relPath), imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("failed to write avatar: %w", err)
	}
	return relPath, nil
}

// RemoveAvatar deletes a user's avatar file if present.
func (s *ImageStore) RemoveAvatar(userID string) {
	_ = os.Remove(s.AbsPath(filepath.Join("avatars", fmt.Sprintf("%s_thumb.jpg", userID))))
}

// Open returns a reader over one rendition, or model.ErrImageNotFound.
func (s *ImageStore) Open(relPath string) (*os.File, error) {
	f, err := os.Open(s.AbsPath(relPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrImageNotFound
		}
		return nil, err
	}
	return f, nil
}
