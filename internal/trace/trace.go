// Package trace loads recorded cache access traces from disk.
package trace

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Format names a trace file layout.
type Format string

const (
	// FormatKeys is one key per line.
	FormatKeys Format = "keys"
	// FormatOps is "key,GET" or "key,SET" per line.
	FormatOps Format = "ops"
	// FormatCSV2 is a CSV file with a header whose second column is the key.
	FormatCSV2 Format = "csv2"
)

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("unknown trace format")

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Op represents a single cache operation from a trace.
type Op struct {
	Key string
	Set bool
}

// Spec identifies a trace on the command line or in a profile.
type Spec struct {
	Name   string `toml:"name"`
	Format Format `toml:"format"`
	Path   string `toml:"path"`
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatKeys, FormatOps, FormatCSV2:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ParseSpec parses "name=format:path".
func ParseSpec(s string) (Spec, error) {
	name, rest, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return Spec{}, fmt.Errorf("trace %q: want name=format:path", s)
	}
	format, path, ok := strings.Cut(rest, ":")
	if !ok || path == "" {
		return Spec{}, fmt.Errorf("trace %q: want name=format:path", s)
	}
	f, err := ParseFormat(format)
	if err != nil {
		return Spec{}, fmt.Errorf("trace %q: %w", s, err)
	}
	return Spec{Name: name, Format: f, Path: path}, nil
}

// Load reads the trace described by spec.
func (s Spec) Load() ([]Op, error) {
	return Load(s.Path, s.Format)
}

// Load reads and parses the trace at path. Files ending in .zst or .zstd,
// or starting with the zstd magic number, are decompressed.
func Load(path string, format Format) ([]Op, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	r, closeFn, err := decompress(f, path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	ops, err := Parse(r, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ops, nil
}

func decompress(f io.Reader, path string) (io.Reader, func(), error) {
	br := bufio.NewReaderSize(f, 1<<20)
	magic, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("read trace: %w", err)
	}
	if !strings.HasSuffix(path, ".zst") && !strings.HasSuffix(path, ".zstd") && !bytes.Equal(magic, zstdMagic) {
		return br, func() {}, nil
	}

	decoder, err := zstd.NewReader(br)
	if err != nil {
		return nil, nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return decoder, decoder.Close, nil
}

// Parse reads ops from r in the given format. Blank and malformed lines
// are skipped.
func Parse(r io.Reader, format Format) ([]Op, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	var ops []Op
	if format == FormatCSV2 {
		// header
		scanner.Scan()
	}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		op, ok := parseLine(line, format)
		if ok {
			ops = append(ops, op)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan trace: %w", err)
	}
	return ops, nil
}

func parseLine(line string, format Format) (Op, bool) {
	switch format {
	case FormatOps:
		key, op, ok := strings.Cut(line, ",")
		if !ok || key == "" {
			return Op{}, false
		}
		switch strings.ToUpper(op) {
		case "GET":
			return Op{Key: key}, true
		case "SET":
			return Op{Key: key, Set: true}, true
		}
		return Op{}, false
	case FormatCSV2:
		_, rest, ok := strings.Cut(line, ",")
		if !ok {
			return Op{}, false
		}
		key, _, _ := strings.Cut(rest, ",")
		if key == "" {
			return Op{}, false
		}
		return Op{Key: key}, true
	default:
		return Op{Key: line}, true
	}
}

// Unique returns the number of distinct keys in ops.
func Unique(ops []Op) int {
	seen := make(map[string]struct{}, len(ops)/4)
	for _, op := range ops {
		seen[op.Key] = struct{}{}
	}
	return len(seen)
}

// EntrySize estimates the bytes one cached entry of this trace occupies in a
// byte-budgeted cache: the key stored twice (as key and value) plus
// per-entry overhead.
func EntrySize(ops []Op) int {
	const overhead = 32
	if len(ops) == 0 {
		return overhead
	}
	total := 0
	for _, op := range ops {
		total += len(op.Key)
	}
	return 2*total/len(ops) + overhead
}
