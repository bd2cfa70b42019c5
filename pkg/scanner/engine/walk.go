package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/rs/zerolog/log"
)

// Directory names never descended into, not even for the sensitive
// filename check.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
}

// Extensions excluded from content and filename checks alike.
var skipExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".svg": true, ".ico": true, ".webp": true,
	".zip": true, ".tar": true, ".gz": true, ".tgz": true, ".rar": true, ".7z": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true, ".otf": true,
}

// walkDirectory traverses root depth-first and invokes visit once per
// eligible file. Unreadable files are reported through visit with a non-nil
// readErr so they still count as scanned; they never abort the walk.
func walkDirectory(root string, maxFileSize int64, visit func(rel string, data []byte, readErr error)) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", p).Msg("Skipping unreadable path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if skipExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}
		if maxFileSize > 0 {
			if info, err := d.Info(); err == nil && info.Size() > maxFileSize {
				log.Debug().Str("file", p).Int64("size", info.Size()).Msg("Skipping oversized file")
				return nil
			}
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}

		data, readErr := os.ReadFile(p)
		if readErr == nil && looksBinary(data) {
			return nil
		}
		visit(rel, data, readErr)
		return nil
	})
}

// looksBinary sniffs content for known binary formats the extension
// skip-set missed, e.g. an image saved without its extension.
func looksBinary(data []byte) bool {
	head := data
	if len(head) > 262 {
		head = head[:262]
	}
	return filetype.IsImage(head) ||
		filetype.IsVideo(head) ||
		filetype.IsAudio(head) ||
		filetype.IsFont(head) ||
		filetype.IsArchive(head)
}
