package console

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nerrad567/gray-logic-hub/internal/command"
	"github.com/nerrad567/gray-logic-hub/internal/hub"
	"github.com/nerrad567/gray-logic-hub/internal/strategy"
)

func renderCatalog(w io.Writer, userID string, catalog command.Catalog) {
	fmt.Fprintf(w, "User %s has the following commands available:\n", userID)
	for i, name := range catalog.Names() {
		fmt.Fprintf(w, "%d: %s\n", i, name)
	}
}

func renderStrategy(w io.Writer, catalog command.Catalog, indices []int) {
	fmt.Fprintln(w, "Current strategy:")
	if len(indices) == 0 {
		fmt.Fprintln(w, "  (empty)")
		return
	}
	for _, i := range indices {
		if cmd, ok := catalog.At(i); ok {
			fmt.Fprintf(w, "  %s\n", cmd.Name())
			continue
		}
		fmt.Fprintf(w, "  #%d (no longer in catalog)\n", i)
	}
}

func renderExecution(w io.Writer, exec *strategy.Execution) {
	fmt.Fprintf(w, "Execution %s (%s, %s) in %dms\n", exec.ID, exec.Mode, exec.Status, exec.DurationMS)
	for _, step := range exec.Steps {
		fmt.Fprintf(w, "  #%d ", step.Index)
		renderResult(w, step.Result, 1)
	}
	renderIndices(w, "rejected", exec.Rejected)
	renderIndices(w, "no longer in catalog", exec.Skipped)
}

func renderIndices(w io.Writer, label string, indices []int) {
	if len(indices) == 0 {
		return
	}
	parts := make([]string, len(indices))
	for i, n := range indices {
		parts[i] = strconv.Itoa(n)
	}
	fmt.Fprintf(w, "  %s: %s\n", label, strings.Join(parts, ", "))
}

// renderResult prints one result line, then its message, versions and
// macro children indented one level deeper. The caller has written the
// line prefix.
func renderResult(w io.Writer, res command.Result, depth int) {
	fmt.Fprintf(w, "%s [%s]\n", res.Command, res.Status)
	pad := strings.Repeat("  ", depth+1)
	if res.Message != "" {
		for _, line := range strings.Split(res.Message, "\n") {
			fmt.Fprintf(w, "%s%s\n", pad, line)
		}
	}
	for _, v := range res.Versions {
		fmt.Fprintf(w, "%s%s\n", pad, v)
	}
	for _, child := range res.Children {
		fmt.Fprint(w, pad)
		renderResult(w, child, depth+1)
	}
}

func renderDevices(w io.Writer, infos []hub.DeviceInfo) {
	for _, info := range infos {
		fmt.Fprintf(w, "%d: %s\n", info.Index, info.Version)
	}
}

func renderDevice(w io.Writer, info hub.DeviceInfo) {
	fmt.Fprintf(w, "%s (%s)\n", info.Version, info.Kind)
	fmt.Fprintf(w, "  operations: %s\n", strings.Join(info.Operations, ", "))

	keys := make([]string, 0, len(info.State))
	for k := range info.State {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %v\n", k, info.State[k])
	}
}
