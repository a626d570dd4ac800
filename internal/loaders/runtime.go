// SPDX-License-Identifier: MPL-2.0

package loaders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// RuntimeFile is the collection runtime metadata file.
const RuntimeFile = "meta/runtime.yml"

// ErrRuntimeFile marks a malformed runtime file or requires_ansible value.
var ErrRuntimeFile = errors.New("invalid runtime metadata")

var (
	pep440Compatible = regexp.MustCompile(`~=\s*([0-9]+(?:\.[0-9]+)*)`)
	pep440Equal      = regexp.MustCompile(`==\s*`)
	pep440Pre        = regexp.MustCompile(`(?i)([0-9])[-_.]?(alpha|beta|preview|pre|rc|a|b|c)[-_.]?([0-9]*)`)
	pep440Dev        = regexp.MustCompile(`(?i)([0-9])[-_.]?dev[-_.]?([0-9]*)`)
	pep440Post       = regexp.MustCompile(`(?i)([0-9])[-_.]?post[-_.]?([0-9]*)`)

	preReleaseLabels = map[string]string{
		"a": "alpha", "alpha": "alpha",
		"b": "beta", "beta": "beta",
		"c": "rc", "rc": "rc", "pre": "rc", "preview": "rc",
	}
)

type (
	// RuntimeFileLoader reads requires_ansible from meta/runtime.yml.
	RuntimeFileLoader struct {
		root string
	}

	runtimeFile struct {
		RequiresAnsible *string `yaml:"requires_ansible"`
	}
)

// NewRuntimeFileLoader returns a loader for the collection at root.
func NewRuntimeFileLoader(root string) *RuntimeFileLoader {
	return &RuntimeFileLoader{root: root}
}

// RequiresAnsible returns the declared constraint, or nil when the file or
// key is absent. The value is returned as written once it parses as a
// version constraint.
func (l *RuntimeFileLoader) RequiresAnsible() (*string, error) {
	data, err := readInRoot(l.root, filepath.FromSlash(RuntimeFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRuntimeFile, RuntimeFile, err)
	}

	var rf runtimeFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRuntimeFile, RuntimeFile, err)
	}
	if rf.RequiresAnsible == nil {
		return nil, nil
	}
	if _, err := ParseConstraint(*rf.RequiresAnsible); err != nil {
		return nil, fmt.Errorf("%w: %s: requires_ansible %q: %w", ErrRuntimeFile, RuntimeFile, *rf.RequiresAnsible, err)
	}
	return rf.RequiresAnsible, nil
}

// ParseConstraint parses a PEP 440 style specifier such as ">=2.9,<2.11",
// "~=2.10" or ">=2.15.0rc1" into a semver constraint. Pre-release and dev
// segments become semver pre-releases; post releases become build metadata.
func ParseConstraint(specifier string) (*semver.Constraints, error) {
	translated := normalizeReleaseSegments(specifier)
	translated = pep440Compatible.ReplaceAllStringFunc(translated, func(m string) string {
		v := pep440Compatible.FindStringSubmatch(m)[1]
		if countDots(v) >= 2 {
			return "~" + v
		}
		return "^" + v
	})
	translated = pep440Equal.ReplaceAllString(translated, "=")
	return semver.NewConstraint(translated)
}

// normalizeReleaseSegments rewrites "2.15.0rc1" as "2.15.0-rc.1",
// "2.16.0.dev2" as "2.16.0-dev.2" and "2.9.0.post1" as "2.9.0+post.1".
func normalizeReleaseSegments(specifier string) string {
	out := pep440Pre.ReplaceAllStringFunc(specifier, func(m string) string {
		sub := pep440Pre.FindStringSubmatch(m)
		return sub[1] + "-" + preReleaseLabels[strings.ToLower(sub[2])] + "." + orZero(sub[3])
	})
	out = pep440Dev.ReplaceAllStringFunc(out, func(m string) string {
		sub := pep440Dev.FindStringSubmatch(m)
		return sub[1] + "-dev." + orZero(sub[2])
	})
	return pep440Post.ReplaceAllStringFunc(out, func(m string) string {
		sub := pep440Post.FindStringSubmatch(m)
		return sub[1] + "+post." + orZero(sub[2])
	})
}

func orZero(n string) string {
	if n == "" {
		return "0"
	}
	return n
}

func countDots(s string) int {
	n := 0
	for _, c := range s {
		if c == '.' {
			n++
		}
	}
	return n
}

func readInRoot(root, name string) ([]byte, error) {
	rt, err := os.OpenRoot(root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rt.Close() }()
	return rt.ReadFile(name)
}
