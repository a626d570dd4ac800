// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"galaxy-importer/internal/extract"
	"galaxy-importer/internal/loaders"
	"galaxy-importer/internal/testrunner"
	"galaxy-importer/pkg/artifact"
	"galaxy-importer/pkg/schema"
)

func (r *run) importRole(ctx context.Context) (*schema.ImportResult, testrunner.Target, error) {
	var target testrunner.Target

	id := r.req.Identity
	if id.Namespace == "" || id.Name == "" || id.Version == "" {
		return nil, target, errorf(ErrValidation, r.req.Source.String(),
			"role archives must be named <namespace>-<name>-<version>%s", artifact.ArchiveSuffix)
	}

	root := r.workdir.Root()
	if !hasRoleMeta(r.report, id) {
		return nil, target, errorf(ErrRoleMetadataNotFound, "meta/main.yml",
			"No meta/main.yml found in role at %s", filepath.Join(root, id.RoleSubPath()))
	}
	if err := r.extractTo(ctx, root); err != nil {
		return nil, target, err
	}

	roleDir := filepath.Join(root, id.RoleSubPath())
	meta, err := loadRoleMeta(roleDir, id)
	if err != nil {
		return nil, target, err
	}
	if err := matchFilename(id, meta.Identity()); err != nil {
		return nil, target, err
	}

	contents, err := r.loadContents(ctx, roleDir, loaders.NewDocStrings())
	if err != nil {
		return nil, target, err
	}

	r.logger.Info("Role Artifact loading complete")

	requires := meta.MinAnsibleVersion
	target = testrunner.Target{Root: roleDir, Archive: r.archive, FQCN: meta.Namespace + "." + meta.Name}
	return &schema.ImportResult{
		Metadata:        meta,
		Contents:        summaries(contents),
		RequiresAnsible: &requires,
		ArtifactType:    artifact.TypeRole,
	}, target, nil
}

func loadRoleMeta(roleDir string, id artifact.Identity) (*schema.RoleMetadata, error) {
	metaPath, err := loaders.FindRoleMetaFile(roleDir)
	if err != nil {
		return nil, newError(ErrRoleMetadata, roleDir, err)
	}
	if metaPath == "" {
		return nil, errorf(ErrRoleMetadataNotFound, "meta/main.yml", "No meta/main.yml found in role at %s", roleDir)
	}

	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, newError(ErrRoleMetadata, metaPath, err)
	}
	meta, err := schema.ParseRoleMeta(data, id)
	if err != nil {
		return nil, newError(ErrRoleMetadata, "meta/"+filepath.Base(metaPath), fmt.Errorf("%s: %w", filepath.Base(metaPath), err))
	}
	return meta, nil
}

// hasRoleMeta reports whether the archive carries a metadata file for the
// role before anything is extracted.
func hasRoleMeta(rep extract.Report, id artifact.Identity) bool {
	for _, name := range schema.RoleMetaFileNames {
		if rep.Has(path.Join(id.RoleSubPath(), "meta", name)) {
			return true
		}
	}
	return false
}
