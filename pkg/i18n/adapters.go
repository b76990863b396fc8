package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// TranslationAdapter defines how messages are loaded.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter uses an in-memory map as the message source.
type MapAdapter struct {
	Data map[string]map[string]any
}

// Load implements the TranslationAdapter interface.
func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FileAdapter loads messages from a single file on disk.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter creates a new FileAdapter instance.
// A nil parser is resolved from the file extension when loading.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	if path == "" {
		return nil
	}
	return &FileAdapter{parser: parser, path: path}
}

// Load implements the TranslationAdapter interface.
func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	parser := a.parser
	if parser == nil {
		parser = ParserFor(a.path)
	}
	if parser == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, a.path)
	}

	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	messages, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, err)
	}
	return messages, nil
}

// FSAdapter loads every supported message file from a directory of an fs.FS.
// It serves embed.FS as well as os.DirFS. Files are read in lexical order,
// so later files override earlier ones key by key.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

// NewFSAdapter creates a new FSAdapter instance. dir defaults to ".".
func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	if fsys == nil {
		return nil
	}
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir}
}

// Load implements the TranslationAdapter interface.
func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || ParserFor(entry.Name()) == nil {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMessageFiles, a.dir)
	}
	sort.Strings(names)

	all := make(map[string]map[string]any)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		filePath := path.Join(a.dir, name)
		content, err := fs.ReadFile(a.fsys, filePath)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, fmt.Errorf("%s: %w", filePath, err))
		}

		messages, err := ParserFor(name).Parse(ctx, content)
		if err != nil {
			return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", filePath, err))
		}
		mergeInto(all, messages)
	}

	return all, nil
}

// NewPathAdapter returns a FileAdapter for a file path and an FSAdapter
// rooted at the directory otherwise.
func NewPathAdapter(p string) (TranslationAdapter, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	if info.IsDir() {
		return NewFSAdapter(os.DirFS(filepath.Clean(p)), "."), nil
	}
	if ParserFor(p) == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, p)
	}
	return NewFileAdapter(nil, p), nil
}

// MultiAdapter merges several adapters. Later adapters override earlier
// ones key by key; nested groups are merged recursively.
type MultiAdapter struct {
	adapters []TranslationAdapter
}

// NewMultiAdapter creates a MultiAdapter. Nil adapters are skipped.
func NewMultiAdapter(adapters ...TranslationAdapter) *MultiAdapter {
	m := &MultiAdapter{}
	for _, a := range adapters {
		if a != nil {
			m.adapters = append(m.adapters, a)
		}
	}
	return m
}

// Load implements the TranslationAdapter interface.
func (m *MultiAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	all := make(map[string]map[string]any)
	for _, a := range m.adapters {
		messages, err := a.Load(ctx)
		if err != nil {
			return nil, err
		}
		mergeInto(all, messages)
	}
	return all, nil
}

func mergeInto(dst, src map[string]map[string]any) {
	for lang, messages := range src {
		if dst[lang] == nil {
			dst[lang] = make(map[string]any, len(messages))
		}
		deepMerge(dst[lang], messages)
	}
}

func deepMerge(dst, src map[string]any) {
	for k, v := range src {
		srcGroup, srcIsGroup := v.(map[string]any)
		dstGroup, dstIsGroup := dst[k].(map[string]any)
		if srcIsGroup && dstIsGroup {
			merged := make(map[string]any, len(dstGroup)+len(srcGroup))
			deepMerge(merged, dstGroup)
			deepMerge(merged, srcGroup)
			dst[k] = merged
			continue
		}
		dst[k] = v
	}
}
