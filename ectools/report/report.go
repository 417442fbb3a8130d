// Package report bundles the local log files into a zip archive that can be
// sent to the enviroCar team along with a short description of the issue.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/opentracing/opentracing-go"
	"github.com/rs/zerolog/log"
)

const (
	// Prefix of every report bundle file name
	Prefix = "report-"
	// Extension of report bundles
	Extension = ".zip"
	// MailExtension of the report emails written next to their bundle
	MailExtension = ".eml"

	bundleTimeLayout = "2006-01-02T15-04-05"
	dayLayout        = "2006-01-02"

	// lock files written next to the log files by the logger
	lockSuffix = "lck"
)

// ErrNoLogFiles is returned when there is nothing to bundle
var ErrNoLogFiles = errors.New("no log files found")

// Bundler creates report bundles from the log files living next to LogFile.
type Bundler struct {
	// LogFile is the current log file. Rotated files share its name as prefix.
	LogFile string
	// OutputDir is where bundles are written.
	OutputDir string
	// Now returns the current time, time.Now when nil.
	Now func() time.Time
}

// NewBundler creates a new bundler
func NewBundler(logFile string, outputDir string) *Bundler {
	return &Bundler{
		LogFile:   logFile,
		OutputDir: outputDir,
		Now:       time.Now,
	}
}

// LogDir returns the directory holding the log files
func (b *Bundler) LogDir() string {
	return filepath.Dir(b.LogFile)
}

// FindLogFiles lists the log files to bundle, sorted by name
func (b *Bundler) FindLogFiles() ([]string, error) {
	shortName := filepath.Base(b.LogFile)

	entries, err := os.ReadDir(b.LogDir())
	if err != nil {
		return nil, fmt.Errorf("failed to list log directory: %w", err)
	}

	files := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, shortName) || strings.HasSuffix(name, lockSuffix) {
			continue
		}
		files = append(files, filepath.Join(b.LogDir(), name))
	}
	sort.Strings(files)

	return files, nil
}

// RemoveOldBundles deletes the bundles and report emails created before today
// and returns their paths
func (b *Bundler) RemoveOldBundles() ([]string, error) {
	todayPrefix := Prefix + b.now().Format(dayLayout)

	entries, err := os.ReadDir(b.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list report directory: %w", err)
	}

	removed := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		if !strings.HasPrefix(name, Prefix) || strings.HasPrefix(name, todayPrefix) {
			continue
		}
		if !strings.HasSuffix(name, Extension) && !strings.HasSuffix(name, MailExtension) {
			continue
		}

		path := filepath.Join(b.OutputDir, name)
		if err := os.Remove(path); err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Failed to remove old report bundle")
			continue
		}
		removed = append(removed, path)
	}

	return removed, nil
}

// Create writes a new bundle containing every log file and returns its path
func (b *Bundler) Create(ctx context.Context) (string, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "report.create")
	defer span.Finish()

	files, err := b.FindLogFiles()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w in '%s'", ErrNoLogFiles, b.LogDir())
	}
	span.SetTag("files", len(files))

	if err := os.MkdirAll(b.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	target := filepath.Join(b.OutputDir, Prefix+b.now().Format(bundleTimeLayout)+Extension)
	if err := writeZip(target, files); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to write report bundle: %w", err)
	}

	log.Info().Str("bundle", target).Int("files", len(files)).Msg("Report bundle created")

	return target, nil
}

func (b *Bundler) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func writeZip(target string, files []string) error {
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, file := range files {
		if err := addFile(w, file); err != nil {
			w.Close()
			return err
		}
	}

	if err := w.Close(); err != nil {
		return err
	}
	return f.Close()
}

func addFile(w *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Method = zip.Deflate

	dst, err := w.CreateHeader(hdr)
	if err != nil {
		return err
	}

	_, err = io.Copy(dst, src)
	return err
}
