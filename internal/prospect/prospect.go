package prospect

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zlib"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/pixil98/go-prospect/internal/property"
	"github.com/pixil98/go-prospect/internal/storage"
)

var ErrInvalidProspect = errors.New("invalid prospect")

const (
	pathBlob             = "ProspectBlob.BinaryBlob"
	pathCompression      = "ProspectBlob.CompressionAlgorithm"
	pathUncompressed     = "ProspectBlob.UncompressedLength"
	pathTotalLength      = "ProspectBlob.TotalLength"
	compressionAlgorithm = "Zlib"
)

// Prospect is a loaded save. The JSON header is kept as raw bytes and edited
// by path so that fields this package does not know about survive a save.
type Prospect struct {
	header []byte
	blob   *property.Document
}

// New assembles a prospect from a JSON header and a decoded blob. The blob
// fields are written into the header on Marshal.
func New(header []byte, blob *property.Document) *Prospect {
	return &Prospect{header: header, blob: blob}
}

// Load reads and parses the prospect file at path.
func Load(path string) (*Prospect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prospect: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	slog.Debug("loaded prospect", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return p, nil
}

// Parse decodes a prospect from its JSON form.
func Parse(data []byte) (*Prospect, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not a json document", ErrInvalidProspect)
	}

	blob := gjson.GetBytes(data, pathBlob)
	if !blob.Exists() {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidProspect, pathBlob)
	}

	if algo := gjson.GetBytes(data, pathCompression); algo.Exists() && algo.String() != compressionAlgorithm {
		return nil, fmt.Errorf("%w: unsupported compression %q", ErrInvalidProspect, algo.String())
	}

	compressed, err := base64.StdEncoding.DecodeString(blob.String())
	if err != nil {
		return nil, fmt.Errorf("%w: decoding blob: %v", ErrInvalidProspect, err)
	}

	raw, err := inflate(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: inflating blob: %v", ErrInvalidProspect, err)
	}

	if n := gjson.GetBytes(data, pathUncompressed); n.Exists() && n.Int() != int64(len(raw)) {
		slog.Warn("blob length mismatch", "expected", n.Int(), "actual", len(raw))
	}

	doc, err := property.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding blob: %w", err)
	}

	header := make([]byte, len(data))
	copy(header, data)

	return New(header, doc), nil
}

// Marshal re-encodes the blob and returns the complete JSON document.
func (p *Prospect) Marshal() ([]byte, error) {
	raw, err := p.blob.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding blob: %w", err)
	}

	compressed, err := deflate(raw)
	if err != nil {
		return nil, fmt.Errorf("compressing blob: %w", err)
	}

	out := p.header
	sets := []struct {
		path  string
		value any
	}{
		{pathBlob, base64.StdEncoding.EncodeToString(compressed)},
		{pathUncompressed, len(raw)},
		{pathTotalLength, len(compressed)},
	}
	for _, s := range sets {
		out, err = sjson.SetBytes(out, s.path, s.value)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", s.path, err)
		}
	}

	return out, nil
}

// Save writes the prospect to path atomically.
func (p *Prospect) Save(path string) error {
	data, err := p.Marshal()
	if err != nil {
		return err
	}

	if err := storage.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("saving prospect: %w", err)
	}

	slog.Info("saved prospect", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return nil
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	// Ignoring close error - reader is in-memory, error is not actionable
	defer func() { _ = zr.Close() }()

	return io.ReadAll(zr)
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
