package backup

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/nvandessel/chromaroot/internal/palette"
	"github.com/nvandessel/chromaroot/internal/store"
)

// FormatVersion is the snapshot header version.
const FormatVersion = 1

// MaxDecompressedSize bounds the decompressed palette payload (16MB).
const MaxDecompressedSize = 16 * 1024 * 1024

const (
	filePrefix = "chromaroot-backup-"
	fileExt    = ".crb"
)

// Header is the plain-text first line of a snapshot file. The rest of the
// file is a gzip-compressed YAML palette document.
//
// Checksum covers the payload bytes. Digest covers only swatch names, seeds
// and colors, so two snapshots of an unchanged palette share a digest.
type Header struct {
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	Checksum    string    `json:"checksum"`
	Digest      string    `json:"digest,omitempty"`
	SwatchCount int       `json:"swatch_count"`
	Compressed  bool      `json:"compressed"`
}

func writeSnapshot(ctx context.Context, s store.PaletteStore, path string) (*Header, error) {
	var compressed bytes.Buffer
	gzw, err := gzip.NewWriterLevel(&compressed, gzip.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("creating gzip writer: %w", err)
	}
	swatches, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing palette: %w", err)
	}
	if err := store.EncodeYAML(gzw, swatches); err != nil {
		return nil, fmt.Errorf("exporting palette: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, fmt.Errorf("closing gzip writer: %w", err)
	}

	header := &Header{
		Version:     FormatVersion,
		CreatedAt:   time.Now().UTC(),
		Checksum:    checksum(compressed.Bytes()),
		Digest:      paletteDigest(swatches),
		SwatchCount: len(swatches),
		Compressed:  true,
	}

	headerBytes, err := json.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("marshaling header: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(headerBytes, '\n')); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	if _, err := f.Write(compressed.Bytes()); err != nil {
		return nil, fmt.Errorf("writing compressed payload: %w", err)
	}

	return header, nil
}

// ReadHeader reads only the header line of a snapshot file.
func ReadHeader(path string) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return decodeHeader(bufio.NewReader(f))
}

// VerifyChecksum checks the integrity of a snapshot without decompressing it.
func VerifyChecksum(path string) error {
	_, _, err := openVerified(path)
	return err
}

func readSnapshot(path string) ([]palette.Swatch, error) {
	_, compressed, err := openVerified(path)
	if err != nil {
		return nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gzr.Close()

	decompressed, err := io.ReadAll(io.LimitReader(gzr, MaxDecompressedSize+1))
	if err != nil {
		return nil, fmt.Errorf("decompressing payload: %w", err)
	}
	if int64(len(decompressed)) > MaxDecompressedSize {
		return nil, fmt.Errorf("decompressed payload exceeds maximum size of %d bytes", MaxDecompressedSize)
	}

	return store.DecodeYAML(bytes.NewReader(decompressed))
}

// openVerified reads the header and payload of a snapshot and checks the checksum.
func openVerified(path string) (*Header, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	header, err := decodeHeader(reader)
	if err != nil {
		return nil, nil, err
	}

	compressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("reading compressed payload: %w", err)
	}

	if actual := checksum(compressed); actual != header.Checksum {
		return nil, nil, fmt.Errorf("checksum mismatch: expected %s, got %s", header.Checksum, actual)
	}

	return header, compressed, nil
}

func decodeHeader(r *bufio.Reader) (*Header, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("reading header line: %w", err)
	}

	var header Header
	if err := json.Unmarshal(bytes.TrimSpace(line), &header); err != nil {
		return nil, fmt.Errorf("parsing header: %w", err)
	}
	if header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported backup version %d", header.Version)
	}

	return &header, nil
}

func checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(hash[:])
}

// paletteDigest hashes the name, seed and display color of each swatch in
// list order.
func paletteDigest(swatches []palette.Swatch) string {
	hash := sha256.New()
	for _, sw := range swatches {
		fmt.Fprintf(hash, "%s\t%s\t%s\n", sw.Name, sw.Seed, sw.CSS)
	}
	return "sha256:" + hex.EncodeToString(hash.Sum(nil))
}
