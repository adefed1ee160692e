package repositories

import (
	"context"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileKV stores each key as one file under Dir.
type FileKV struct {
	Dir string

	mu sync.Mutex
}

func NewFileKV(dir string) *FileKV {
	return &FileKV{Dir: dir}
}

// file names are hex so session ids never escape Dir
func (f *FileKV) path(key string) string {
	return filepath.Join(f.Dir, hex.EncodeToString([]byte(key))+".json")
}

func (f *FileKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, storageErr("get", key, err)
	}
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageErr("get", key, err)
	}
	return data, true, nil
}

func (f *FileKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return storageErr("set", key, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return storageErr("set", key, err)
	}
	tmp, err := os.CreateTemp(f.Dir, ".kv-*")
	if err != nil {
		return storageErr("set", key, err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return storageErr("set", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return storageErr("set", key, err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		os.Remove(tmp.Name())
		return storageErr("set", key, err)
	}
	return nil
}
