// Package storage implements the local blob store behind image and
// payment-proof uploads.  Files are written under a configured directory
// with random names and referenced from entity rows as plain URL strings.
// A background sweeper removes files that were uploaded but never ended up
// referenced by any row.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for uploads outside the image allowlist.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrTooLarge is returned when the upload exceeds the configured limit.
var ErrTooLarge = errors.New("file too large")

// extByMIME maps the accepted content types to the stored extension.
var extByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store saves uploads to a local directory.  MaxBytes caps the accepted
// size and BaseURL is prepended to the stored relative path when building
// the URL persisted on entities.
type Store struct {
	Dir      string
	MaxBytes int64
	BaseURL  string
}

func NewStore(dir string, maxBytes int64, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir, MaxBytes: maxBytes, BaseURL: baseURL}, nil
}

// AllowedImageMIME reports whether mime is in the accepted set.
func AllowedImageMIME(mime string) bool {
	_, ok := extByMIME[strings.ToLower(strings.TrimSpace(mime))]
	return ok
}

// SaveImage validates and persists one uploaded file.  The content type is
// sniffed from the first bytes rather than trusted from the request, the
// size is checked before any disk write, and the stored name is a random
// UUID so uploads cannot collide or be guessed.  Returns the URL to
// persist on the owning entity.
func (s *Store) SaveImage(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.MaxBytes {
		return "", ErrTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	mime := http.DetectContentType(head[:n])
	ext, ok := extByMIME[mime]
	if !ok {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := dst.Write(head[:n]); err != nil {
		return "", err
	}
	// Copy the remainder with a hard limit in case the reported size lied.
	if _, err := io.Copy(dst, io.LimitReader(src, s.MaxBytes)); err != nil {
		return "", err
	}
	return s.urlFor(name), nil
}

func (s *Store) urlFor(name string) string {
	return strings.TrimSuffix(s.BaseURL, "/") + "/uploads/" + name
}

// Remove deletes the file behind a previously returned URL.  Used on the
// error path when the owning mutation fails after the upload succeeded.
func (s *Store) Remove(url string) {
	name := path.Base(url)
	if name == "" || name == "." || name == "/" {
		return
	}
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("storage: remove %s: %v", name, err)
	}
}

// referencedNames collects the file names referenced by any live entity
// row.  The sweeper must never delete a file that a poster, post, club,
// club request or booking still points to.
func referencedNames(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	const q = `SELECT image_url FROM posters WHERE image_url IS NOT NULL
	           UNION SELECT image_url FROM posts WHERE image_url IS NOT NULL
	           UNION SELECT logo_url FROM clubs WHERE logo_url IS NOT NULL
	           UNION SELECT logo_url FROM club_requests WHERE logo_url IS NOT NULL
	           UNION SELECT payment_proof_url FROM ticket_bookings`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	refs := make(map[string]bool)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		if url != "" {
			refs[path.Base(url)] = true
		}
	}
	return refs, rows.Err()
}

// Sweep removes unreferenced files older than maxAge.  The reference set
// is read before the directory walk, so a file whose owning row is
// created between the two steps could in principle be deleted; the sweep
// is best-effort cleanup and the 24 hour age floor makes that window
// irrelevant in practice.
func (s *Store) Sweep(ctx context.Context, db *sql.DB, maxAge time.Duration) error {
	refs, err := referencedNames(ctx, db)
	if err != nil {
		return err
	}
	cutoff := time.Now().Add(-maxAge)
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || refs[e.Name()] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.Dir, e.Name())); err != nil {
				log.Printf("storage: sweep %s: %v", e.Name(), err)
			}
		}
	}
	return nil
}

// RunSweeper runs Sweep once an hour until ctx is cancelled.  Files must
// be at least 24 hours old before they are eligible.
func (s *Store) RunSweeper(ctx context.Context, db *sql.DB) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx, db, 24*time.Hour); err != nil {
				log.Printf("storage: sweep failed: %v", err)
			}
		}
	}
}
