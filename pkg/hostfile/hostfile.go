// Package hostfile applies in-memory transformations to the markdown file
// that receives generated index blocks. The file is read and rewritten
// under an advisory lock, and only after the new content has been fully
// computed.
package hostfile

import (
	"os"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/pkg/errors"
	"github.com/rogpeppe/go-internal/lockedfile"
)

// TransformFunc computes new file content from the current content. An
// absent file is presented as empty content.
type TransformFunc func(content string) (string, error)

// Change records the content of a file before and after a transformation
type Change struct {
	Path    string
	Before  string
	After   string
	Existed bool
	Written bool
}

// Changed reports whether the transformation altered the content
func (c *Change) Changed() bool {
	return c.Before != c.After
}

// Diff renders the change as a unified diff, or an empty string when the
// content is unchanged
func (c *Change) Diff() string {
	if !c.Changed() {
		return ""
	}
	return udiff.Unified(c.Path, c.Path, c.Before, c.After)
}

// Read returns the content of path. A missing file is reported as empty
// content with exists set to false; any other error is returned.
func Read(path string) (content string, exists bool, err error) {
	data, err := lockedfile.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "failed to read %s", path)
	}
	return string(data), true, nil
}

// Preview computes the transformation of path without writing anything
func Preview(path string, transform TransformFunc) (*Change, error) {
	content, exists, err := Read(path)
	if err != nil {
		return nil, err
	}

	after, err := transform(content)
	if err != nil {
		return nil, err
	}

	return &Change{Path: path, Before: content, After: after, Existed: exists}, nil
}

// Update applies transform to path under a file lock and writes the result
// when it differs from the current content. A missing file is created only
// if the transformation produces content.
func Update(path string, transform TransformFunc) (*Change, error) {
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to stat %s", path)
		}
		return create(path, transform)
	}

	change := &Change{Path: path, Existed: true}
	err := lockedfile.Transform(path, func(data []byte) ([]byte, error) {
		change.Before = string(data)

		after, err := transform(change.Before)
		if err != nil {
			return nil, err
		}
		change.After = after
		return []byte(after), nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update %s", path)
	}

	change.Written = change.Changed()
	return change, nil
}

func create(path string, transform TransformFunc) (*Change, error) {
	after, err := transform("")
	if err != nil {
		return nil, err
	}

	change := &Change{Path: path, After: after}
	if after == "" {
		return change, nil
	}

	if err := lockedfile.Write(path, strings.NewReader(after), 0o644); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", path)
	}
	change.Written = true
	return change, nil
}
