//go:build !js && !wasm

// Package bwconsole renders the "list" subcommand's block inventory as a
// lipgloss table or tree when BLOCKWATCH_TERMINAL_MODE is set and stdout
// is a terminal (spec.md §6 supplement); the default JSON rendering path
// never touches this package.
package bwconsole

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/blockwatch-dev/blockwatch/pkg/bwstyles"
	"github.com/blockwatch-dev/blockwatch/pkg/logger"
	"github.com/blockwatch-dev/blockwatch/pkg/tty"
)

var consoleLog = logger.New("bwconsole:bwconsole")

// TerminalModeEnabled reports whether BLOCKWATCH_TERMINAL_MODE requests
// styled rendering and stdout is actually a terminal.
func TerminalModeEnabled(envValue string) bool {
	return envValue != "" && envValue != "0" && tty.IsStdoutTerminal()
}

func applyStyle(style lipgloss.Style, text string) string {
	if tty.IsStdoutTerminal() {
		return style.Render(text)
	}
	return text
}

// TableConfig configures a per-file block table.
type TableConfig struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTable renders one file's detected blocks as a bordered table,
// styled the way the list subcommand presents them interactively.
func RenderTable(config TableConfig) string {
	if len(config.Headers) == 0 {
		consoleLog.Print("no headers provided for block table rendering")
		return ""
	}
	consoleLog.Printf("rendering block table: title=%s rows=%d", config.Title, len(config.Rows))

	var out strings.Builder
	if config.Title != "" {
		out.WriteString(applyStyle(bwstyles.FilePath, config.Title))
		out.WriteString("\n")
	}

	styleFunc := func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return bwstyles.TableHeader.PaddingLeft(1).PaddingRight(1)
		}
		if row%2 == 0 {
			return bwstyles.TableCell.PaddingLeft(1).PaddingRight(1)
		}
		return lipgloss.NewStyle().
			Foreground(bwstyles.ColorForeground).
			Background(bwstyles.ColorTableAltRow).
			PaddingLeft(1).
			PaddingRight(1)
	}

	t := table.New().
		Headers(config.Headers...).
		Rows(config.Rows...).
		Border(bwstyles.RoundedBorder).
		BorderStyle(bwstyles.TableBorder).
		StyleFunc(styleFunc)

	out.WriteString(t.String())
	out.WriteString("\n")
	return out.String()
}

// TreeNode is a node in the file/block hierarchy rendered by RenderTree.
type TreeNode struct {
	Value    string
	Children []TreeNode
}

// RenderTree renders a file -> blocks hierarchy, falling back to plain
// box-drawing text when stdout isn't a terminal.
func RenderTree(root TreeNode) string {
	if !tty.IsStdoutTerminal() {
		return renderTreePlain(root, "", true)
	}
	return buildLipglossTree(root).String()
}

func buildLipglossTree(node TreeNode) *tree.Tree {
	t := tree.Root(node.Value).
		EnumeratorStyle(bwstyles.TreeEnumerator).
		ItemStyle(bwstyles.TreeNode)

	if len(node.Children) > 0 {
		children := make([]any, len(node.Children))
		for i, child := range node.Children {
			if len(child.Children) > 0 {
				children[i] = buildLipglossTree(child)
			} else {
				children[i] = child.Value
			}
		}
		t.Child(children...)
	}
	return t
}

func renderTreePlain(node TreeNode, prefix string, isLast bool) string {
	var out strings.Builder

	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if prefix == "" {
		out.WriteString(node.Value + "\n")
	} else {
		out.WriteString(prefix + connector + node.Value + "\n")
	}

	for i, child := range node.Children {
		childIsLast := i == len(node.Children)-1
		childPrefix := prefix
		if prefix != "" {
			if isLast {
				childPrefix = prefix + "    "
			} else {
				childPrefix = prefix + "│   "
			}
		}
		out.WriteString(renderTreePlain(child, childPrefix, childIsLast))
	}
	return out.String()
}
