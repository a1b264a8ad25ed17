package view

import (
	"fmt"
	"strings"

	"github.com/linecard/ship/pkg/convention/pipeline"
	"github.com/linecard/ship/pkg/convention/release"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Left)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1, 0, 0).Align(lipgloss.Left)
	markStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f6be00"))
	labelStyle  = lipgloss.NewStyle().Faint(true)
)

// Releases renders releases as a borderless table. deployedDigest marks the image the function runs.
func Releases(releases []release.ReleaseSummary, deployedDigest string) string {
	var rows [][]string

	for _, r := range releases {
		var marks []string
		if r.Current {
			marks = append(marks, "configured")
		}
		if deployedDigest != "" && r.Digest == deployedDigest {
			marks = append(marks, "deployed")
		}

		rows = append(rows, []string{
			orDash(strings.Join(r.Tags, ",")),
			shortDigest(r.Digest),
			orDash(r.Pushed),
			orDash(r.Released),
			strings.Join(marks, ","),
		})
	}

	t := table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == 0:
				return headerStyle
			case col == 4:
				return markStyle
			default:
				return cellStyle
			}
		}).
		Headers("TAGS", "DIGEST", "PUSHED", "AGE", "").
		Rows(rows...)

	return t.String()
}

// Plan renders the ordered step list with the image and function it targets.
func Plan(steps []string, result pipeline.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("image:"), result.ImageRef)
	if result.Function != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("function:"), result.Function)
	}

	for i, step := range steps {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, step)
	}

	return b.String()
}

func shortDigest(digest string) string {
	_, hex, found := strings.Cut(digest, ":")
	if !found || len(hex) < 12 {
		return orDash(digest)
	}
	return hex[:12]
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
