package dispatchers

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/y3pio/unicon/internal/ui/style"
)

// commandDisplayOrder defines explicit ordering within categories.
// Commands not listed appear alphabetically after listed ones.
var commandDisplayOrder = map[string]int{
	// run the pipeline
	"fetch":  1,
	"import": 2,
	"commit": 3,
	// inspect state
	"status": 1,
	// config commands
	"config get":   1,
	"config set":   2,
	"config unset": 3,
	"config list":  4,
	// info
	"version": 1,
}

// formatUsage styles the usage line with the command in Info color and the rest muted.
func formatUsage(usage string) string {
	cmdEnd := len(usage)
	for i, c := range usage {
		if c == '[' || c == '<' {
			cmdEnd = i
			break
		}
	}

	cmd := strings.TrimSpace(usage[:cmdEnd])
	rest := ""
	if cmdEnd < len(usage) {
		rest = usage[cmdEnd:]
	}

	if rest == "" {
		return style.Info(cmd)
	}
	return style.Info(cmd) + " " + style.Muted(rest)
}

func collectLeafCommands(node *DispatchNode, out *[]*DispatchNode) {
	if node.Action != nil {
		*out = append(*out, node)
		return
	}

	for _, child := range node.Children {
		collectLeafCommands(child, out)
	}
}

// HelpAction generates help output for a command node.
func HelpAction(node *DispatchNode, root *DispatchNode) CommandFunc {
	return func(_ []string, _ *ParsedFlags) error {
		var out bytes.Buffer

		if node == root {
			writeRootHelp(&out, root)
		} else {
			writeCommandHelp(&out, node)
		}

		fmt.Print(out.String())
		return nil
	}
}

func writeRootHelp(out *bytes.Buffer, root *DispatchNode) {
	out.WriteString("unicon - ")
	out.WriteString(root.Summary)
	out.WriteString("\n\n")

	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage(root.Usage))
	out.WriteString("\n\n")

	grouped := make(map[CommandCategory][]*DispatchNode)

	var leaves []*DispatchNode
	for _, child := range root.Children {
		collectLeafCommands(child, &leaves)
	}

	for _, cmd := range leaves {
		grouped[cmd.Category] = append(grouped[cmd.Category], cmd)
	}

	for _, cat := range categoryOrder {
		cmds := grouped[cat]
		if len(cmds) == 0 {
			continue
		}

		out.WriteString(style.Header(cat.String()))
		out.WriteString("\n")

		sort.Slice(cmds, func(i, j int) bool {
			nameI := strings.Join(cmds[i].Path[1:], " ")
			nameJ := strings.Join(cmds[j].Path[1:], " ")
			orderI, hasI := commandDisplayOrder[nameI]
			orderJ, hasJ := commandDisplayOrder[nameJ]
			if hasI && hasJ {
				return orderI < orderJ
			}
			if hasI {
				return true
			}
			if hasJ {
				return false
			}
			return nameI < nameJ
		})

		for _, cmd := range cmds {
			name := strings.Join(cmd.Path[1:], " ")
			out.WriteString(fmt.Sprintf("   %-16s %s\n", name, cmd.Summary))
		}
		out.WriteString("\n")
	}

	out.WriteString("Run 'unicon help <command>' for details on a command.\n")
}

func writeCommandHelp(out *bytes.Buffer, node *DispatchNode) {
	out.WriteString(strings.Join(node.Path, " "))
	out.WriteString(" - ")
	out.WriteString(node.Summary)
	out.WriteString("\n\n")

	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage(node.Usage))
	out.WriteString("\n")

	if len(node.Args) > 0 {
		out.WriteString("\nARGUMENTS\n")
		for _, a := range node.Args {
			marker := ""
			if !a.Required {
				marker = " (optional)"
			}
			out.WriteString(fmt.Sprintf("   %-16s %s%s\n", a.Name, a.Description, marker))
		}
	}

	if len(node.Flags) > 0 {
		out.WriteString("\nFLAGS\n")
		for _, f := range node.Flags {
			name := strings.Join(f.Names, ", ")
			if f.ValueHint != "" {
				name += "=" + f.ValueHint
			}
			out.WriteString(fmt.Sprintf("   %-24s %s\n", name, f.Description))
		}
	}

	if len(node.Children) > 0 {
		out.WriteString("\nCOMMANDS\n")
		names := make([]string, 0, len(node.Children))
		for name := range node.Children {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out.WriteString(fmt.Sprintf("   %-16s %s\n", name, node.Children[name].Summary))
		}
	}
}
