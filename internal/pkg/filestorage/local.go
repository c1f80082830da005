package filestorage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
	"github.com/yigit/aerowis/internal/pkg/logger"
)

// LocalConfig configures LocalPhotoStore
type LocalConfig struct {
	Dir           string // directory holding <reg_no>.png files
	BaseURL       string // URL prefix the directory is served under
	DefaultMale   string
	DefaultFemale string
	Size          int // photos are cropped to Size x Size pixels
}

// LocalPhotoStore stores profile photos as PNG files on the local filesystem.
type LocalPhotoStore struct {
	cfg LocalConfig
}

// NewLocalPhotoStore creates the photo directory if needed and returns the store.
func NewLocalPhotoStore(cfg LocalConfig) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(cfg.Dir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", cfg.Dir).Msg("Failed to create photo directory")
		return nil, fmt.Errorf("failed to create photo directory %s: %w", cfg.Dir, err)
	}
	if cfg.Size <= 0 {
		cfg.Size = 256
	}
	logger.Info().Str("path", cfg.Dir).Msg("Photo directory ensured")

	return &LocalPhotoStore{cfg: cfg}, nil
}

func (s *LocalPhotoStore) fileName(regNo int64) string {
	return strconv.FormatInt(regNo, 10) + ".png"
}

func (s *LocalPhotoStore) path(regNo int64) string {
	return filepath.Join(s.cfg.Dir, s.fileName(regNo))
}

func (s *LocalPhotoStore) publicURL(regNo int64) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/" + s.fileName(regNo)
}

// Save decodes the upload, center-crops it to a square and writes it as PNG.
// The file is written under a temporary name first so a failed upload never
// replaces a good photo.
func (s *LocalPhotoStore) Save(regNo int64, r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", apperrors.NewValidationError("photo", "file is not a supported image")
	}

	img = imaging.Fill(img, s.cfg.Size, s.cfg.Size, imaging.Center, imaging.Lanczos)

	tmp, err := os.CreateTemp(s.cfg.Dir, s.fileName(regNo)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary photo file: %w", err)
	}
	tmpName := tmp.Name()

	if err := imaging.Encode(tmp, img, imaging.PNG); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to encode photo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to write photo: %w", err)
	}

	if err := os.Rename(tmpName, s.path(regNo)); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	logger.Info().Int64("regNo", regNo).Str("path", s.path(regNo)).Msg("Profile photo saved")
	return s.publicURL(regNo), nil
}

// Has reports whether a photo file exists for the student
func (s *LocalPhotoStore) Has(regNo int64) bool {
	_, err := os.Stat(s.path(regNo))
	return err == nil
}

// URL returns the stored photo URL, falling back to the default avatar for the gender.
func (s *LocalPhotoStore) URL(regNo int64, gender domain.Gender) string {
	if s.Has(regNo) {
		return s.publicURL(regNo)
	}
	if gender == domain.GenderFemale {
		return s.cfg.DefaultFemale
	}
	return s.cfg.DefaultMale
}

// Delete removes the student's photo file if there is one.
func (s *LocalPhotoStore) Delete(regNo int64) error {
	if err := os.Remove(s.path(regNo)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		logger.Error().Err(err).Int64("regNo", regNo).Msg("Failed to delete profile photo")
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	logger.Info().Int64("regNo", regNo).Msg("Profile photo deleted")
	return nil
}
