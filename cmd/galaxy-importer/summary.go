// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"galaxy-importer/pkg/schema"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// renderSummary renders the identity and contents of an import result.
func renderSummary(res *schema.ImportResult) string {
	id := res.Metadata.Identity()
	title := TitleStyle.Render(fmt.Sprintf("%s.%s", id.Namespace, id.Name)) +
		SubtitleStyle.Render(fmt.Sprintf(" %s (%s)", id.Version, res.ArtifactType))

	if len(res.Contents) == 0 {
		return title + "\n" + SubtitleStyle.Render("(no content found)")
	}

	rows := make([][]string, 0, len(res.Contents))
	for _, c := range res.Contents {
		desc := ""
		if c.Description != nil {
			desc = *c.Description
		}
		rows = append(rows, []string{string(c.ContentType), c.Name, desc})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return summaryHeaderStyle
			}
			return summaryCellStyle
		}).
		Headers("TYPE", "NAME", "DESCRIPTION").
		Rows(rows...)

	footer := SubtitleStyle.Render(fmt.Sprintf("%d content item(s)", len(res.Contents)))
	if res.RequiresAnsible != nil {
		footer += SubtitleStyle.Render(", requires ansible " + *res.RequiresAnsible)
	}
	return title + "\n" + t.String() + "\n" + footer
}
