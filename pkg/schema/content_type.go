// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Content types recognized in collections and roles.
const (
	ContentTypeRole         ContentType = "role"
	ContentTypeModule       ContentType = "module"
	ContentTypeModuleUtils  ContentType = "module_utils"
	ContentTypeAction       ContentType = "action"
	ContentTypeBecome       ContentType = "become"
	ContentTypeCache        ContentType = "cache"
	ContentTypeCallback     ContentType = "callback"
	ContentTypeCliconf      ContentType = "cliconf"
	ContentTypeConnection   ContentType = "connection"
	ContentTypeDocFragments ContentType = "doc_fragments"
	ContentTypeFilter       ContentType = "filter"
	ContentTypeHttpapi      ContentType = "httpapi"
	ContentTypeInventory    ContentType = "inventory"
	ContentTypeLookup       ContentType = "lookup"
	ContentTypeNetconf      ContentType = "netconf"
	ContentTypeShell        ContentType = "shell"
	ContentTypeStrategy     ContentType = "strategy"
	ContentTypeTerminal     ContentType = "terminal"
	ContentTypeTest         ContentType = "test"
	ContentTypeVars         ContentType = "vars"
)

// ErrInvalidContentType is the sentinel error wrapped by InvalidContentTypeError.
var ErrInvalidContentType = errors.New("invalid content type")

var contentTypes = []ContentType{
	ContentTypeRole,
	ContentTypeModule,
	ContentTypeModuleUtils,
	ContentTypeAction,
	ContentTypeBecome,
	ContentTypeCache,
	ContentTypeCallback,
	ContentTypeCliconf,
	ContentTypeConnection,
	ContentTypeDocFragments,
	ContentTypeFilter,
	ContentTypeHttpapi,
	ContentTypeInventory,
	ContentTypeLookup,
	ContentTypeNetconf,
	ContentTypeShell,
	ContentTypeStrategy,
	ContentTypeTerminal,
	ContentTypeTest,
	ContentTypeVars,
}

type (
	// ContentType classifies a content unit found inside an artifact.
	ContentType string

	// InvalidContentTypeError is returned for values outside the fixed set.
	InvalidContentTypeError struct {
		Value ContentType
	}
)

// Error implements the error interface.
func (e *InvalidContentTypeError) Error() string {
	return fmt.Sprintf("invalid content type %q", e.Value)
}

// Unwrap returns ErrInvalidContentType for errors.Is.
func (e *InvalidContentTypeError) Unwrap() error { return ErrInvalidContentType }

// ContentTypes returns every known content type.
func ContentTypes() []ContentType {
	out := make([]ContentType, len(contentTypes))
	copy(out, contentTypes)
	return out
}

// Validate returns an error if ct is not a known content type.
func (ct ContentType) Validate() error {
	for _, known := range contentTypes {
		if ct == known {
			return nil
		}
	}
	return &InvalidContentTypeError{Value: ct}
}

// IsPlugin reports whether ct is loaded from a plugin source file.
// Roles are directories and module_utils carry no documentation.
func (ct ContentType) IsPlugin() bool {
	return ct != ContentTypeRole && ct != ContentTypeModuleUtils && ct.Validate() == nil
}

// IsPowerShellCapable reports whether units of ct may be written in
// PowerShell (.ps1 or .psm1) as well as Python.
func (ct ContentType) IsPowerShellCapable() bool {
	return ct == ContentTypeModule || ct == ContentTypeModuleUtils
}

// String returns the wire value.
func (ct ContentType) String() string { return string(ct) }

// ContentTypeForPluginDir maps a directory under a collection's plugins/
// to its content type: "modules" is module, every other known plugin
// directory is named after its type.
func ContentTypeForPluginDir(dir string) (ContentType, bool) {
	if dir == "modules" {
		return ContentTypeModule, true
	}
	ct := ContentType(dir)
	if ct == ContentTypeRole || ct == ContentTypeModule || ct.Validate() != nil {
		return "", false
	}
	return ct, true
}

// ContentTypeForRoleDir maps a top-level directory of a standalone role to
// its content type: library is module, module_utils is module_utils and
// <type>_plugins is that plugin type.
func ContentTypeForRoleDir(dir string) (ContentType, bool) {
	switch dir {
	case "library":
		return ContentTypeModule, true
	case "module_utils":
		return ContentTypeModuleUtils, true
	}
	base, ok := strings.CutSuffix(dir, "_plugins")
	if !ok {
		return "", false
	}
	ct := ContentType(base)
	if !ct.IsPlugin() || ct == ContentTypeModule {
		return "", false
	}
	return ct, true
}
