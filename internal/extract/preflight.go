// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/nlepage/go-tarfs"
)

type (
	// Report summarizes an archive checked by Preflight.
	Report struct {
		Entries    int
		Compressed bool

		members fs.FS
	}

	member struct {
		name     string
		typeflag byte
		linkname string
	}
)

// Preflight checks that archive is a readable, optionally gzip-compressed,
// tar stream whose members all stay inside the extraction directory. Links
// count as members: hard link targets and symlink targets resolved against
// the link's directory must stay inside as well, and no member may be
// written through a symlink.
func Preflight(archive string) (Report, error) {
	var rep Report

	members, compressed, err := readMembers(archive)
	if err != nil {
		return rep, &ExtractionError{Archive: archive, Err: err}
	}
	rep.Compressed = compressed
	if err := checkMembers(members); err != nil {
		return rep, &ExtractionError{Archive: archive, Err: err}
	}

	f, err := os.Open(archive)
	if err != nil {
		return rep, &ExtractionError{Archive: archive, Err: err}
	}
	defer func() { _ = f.Close() }()

	r, closeFn, _, err := maybeGzip(f)
	if err != nil {
		return rep, &ExtractionError{Archive: archive, Err: err}
	}
	defer func() { _ = closeFn() }()

	tfs, err := tarfs.New(r)
	if err != nil {
		return rep, &ExtractionError{Archive: archive, Err: fmt.Errorf("unable to read tar: %w", err)}
	}
	err = fs.WalkDir(tfs, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p != "." {
			rep.Entries++
		}
		return nil
	})
	if err != nil {
		return rep, &ExtractionError{Archive: archive, Err: err}
	}
	rep.members = tfs
	return rep, nil
}

// Has reports whether the archive holds an entry at the slash-separated
// name. Links count as entries.
func (r Report) Has(name string) bool {
	if r.members == nil || !fs.ValidPath(name) || name == "." {
		return false
	}
	entries, err := fs.ReadDir(r.members, path.Dir(name))
	if err != nil {
		return false
	}
	base := path.Base(name)
	for _, e := range entries {
		if e.Name() == base {
			return true
		}
	}
	return false
}

func checkMembers(members []member) error {
	nonDirs := map[string]byte{}
	for _, m := range members {
		if !isSafeMember(m.name) {
			return fmt.Errorf("%w: %s", ErrUnsafeMember, m.name)
		}
		clean := path.Clean(strings.ReplaceAll(m.name, `\`, "/"))
		for dir := path.Dir(clean); dir != "."; dir = path.Dir(dir) {
			switch typeflag, ok := nonDirs[dir]; {
			case !ok:
			case typeflag == tar.TypeSymlink:
				return fmt.Errorf("%w: %s is written through symlink %s", ErrUnsafeMember, m.name, dir)
			default:
				return fmt.Errorf("%s: parent %s is not a directory", m.name, dir)
			}
		}

		switch m.typeflag {
		case tar.TypeDir:
			continue
		case tar.TypeLink:
			if !isSafeMember(m.linkname) {
				return fmt.Errorf("%w: %s links to %s", ErrUnsafeMember, m.name, m.linkname)
			}
		case tar.TypeSymlink:
			target := strings.ReplaceAll(m.linkname, `\`, "/")
			if target == "" || path.IsAbs(target) || !isSafeMember(path.Join(path.Dir(clean), target)) {
				return fmt.Errorf("%w: %s points to %s", ErrUnsafeMember, m.name, m.linkname)
			}
		}
		nonDirs[clean] = m.typeflag
	}
	return nil
}

// readMembers lists raw headers; tarfs normalizes names, which would hide
// escaping entries.
func readMembers(archive string) (members []member, compressed bool, err error) {
	f, err := os.Open(archive)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = f.Close() }()

	r, closeFn, compressed, err := maybeGzip(f)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = closeFn() }()

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return members, compressed, nil
		}
		if err != nil {
			return nil, compressed, fmt.Errorf("unable to read tar: %w", err)
		}
		members = append(members, member{name: hdr.Name, typeflag: hdr.Typeflag, linkname: hdr.Linkname})
	}
}

// maybeGzip wraps r in a gzip reader when it starts with the gzip magic number.
func maybeGzip(r io.Reader) (io.Reader, func() error, bool, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, false, err
	}
	if len(magic) == 2 && magic[0] == 0x1F && magic[1] == 0x8B {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, true, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gz, gz.Close, true, nil
	}
	return br, func() error { return nil }, false, nil
}

func isSafeMember(name string) bool {
	name = strings.ReplaceAll(name, `\`, "/")
	if name == "" || strings.HasPrefix(name, "/") {
		return false
	}
	clean := path.Clean(name)
	return clean != ".." && !strings.HasPrefix(clean, "../")
}
