package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"langengine/internal/fileutil"
)

// ErrUnsupportedFormat reports a settings file extension without a codec.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

const lockRetryDelay = 25 * time.Millisecond

type codec struct {
	name      string
	unmarshal func([]byte, any) error
	marshal   func(any) ([]byte, error)
}

var codecs = map[string]codec{
	".toml": {name: "toml", unmarshal: toml.Unmarshal, marshal: toml.Marshal},
	".yaml": {name: "yaml", unmarshal: yaml.Unmarshal, marshal: yaml.Marshal},
	".yml":  {name: "yaml", unmarshal: yaml.Unmarshal, marshal: yaml.Marshal},
	".json": {name: "json", unmarshal: unmarshalJSON, marshal: marshalJSON},
}

// unmarshalJSON keeps numbers as json.Number so integers beyond 2^53 written
// by the host survive a rewrite.
func unmarshalJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}

// marshalJSON matches the two-space layout the host writes for user_settings.json.
func marshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// File stores the code under LanguageKey in a settings document. Other keys
// in the document are preserved on write. Writers hold an exclusive flock on
// "<path>.lock" and replace the document atomically.
type File struct {
	path  string
	codec codec

	// mu serializes in-process access; a single flock handle is not reentrant.
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFile returns a file store for path. The format follows the extension.
func NewFile(path string) (*File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("file store: path is empty")
	}
	c, ok := codecs[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("file store %s: %w (use .toml, .yaml, .yml, or .json)", path, ErrUnsupportedFormat)
	}
	return &File{path: path, codec: c, lock: flock.New(path + ".lock")}, nil
}

// Path returns the settings document location.
func (f *File) Path() string { return f.path }

func (f *File) Describe() string { return "file:" + f.path }

func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lock.Close()
}

func (f *File) Load(ctx context.Context) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := os.Stat(filepath.Dir(f.path)); errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err := f.acquire(ctx, false); err != nil {
		return "", false, err
	}
	defer f.lock.Unlock() //nolint:errcheck

	doc, err := f.read()
	if err != nil {
		return "", false, err
	}
	value, ok := doc[LanguageKey]
	if !ok || value == nil {
		return "", false, nil
	}
	code, ok := value.(string)
	if !ok {
		return "", false, fmt.Errorf("file store %s: %q is %T, want string", f.path, LanguageKey, value)
	}
	return code, true, nil
}

func (f *File) Save(ctx context.Context, code string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("file store: create directory: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.acquire(ctx, true); err != nil {
		return err
	}
	defer f.lock.Unlock() //nolint:errcheck

	doc, err := f.read()
	if err != nil {
		return err
	}
	doc[LanguageKey] = code

	data, err := f.codec.marshal(doc)
	if err != nil {
		return fmt.Errorf("file store: encode %s: %w", f.codec.name, err)
	}
	if err := fileutil.WriteFileAtomic(f.path, data, 0o644); err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	return nil
}

func (f *File) acquire(ctx context.Context, exclusive bool) error {
	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = f.lock.TryLockContext(ctx, lockRetryDelay)
	} else {
		ok, err = f.lock.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return fmt.Errorf("file store: lock %s: %w", f.path, err)
	}
	if !ok {
		return fmt.Errorf("file store: lock %s: not acquired", f.path)
	}
	return nil
}

func (f *File) read() (map[string]any, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file store: read %s: %w", f.path, err)
	}
	doc := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := f.codec.unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("file store: decode %s: %w", f.path, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}
