package cmd

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/jimezsa/opptrack/internal/export"
	"github.com/muesli/termenv"
)

// resolveFormat picks the output format. Global --json and --plain win;
// an output file defaults to its extension, then CSV; a terminal gets a
// table and a pipe gets CSV.
func resolveFormat(ctx *Context, format string, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if strings.TrimSpace(format) != "" {
		return export.ParseFormat(format)
	}
	if outputPath != "" {
		if guessed, ok := export.FormatForPath(outputPath); ok {
			return guessed, nil
		}
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

// openOutput returns ctx.Out, or a created file when path is set.
func openOutput(ctx *Context, path string) (io.Writer, func() error, error) {
	if strings.TrimSpace(path) == "" {
		return ctx.Out, func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

func writeOptions(ctx *Context, writer io.Writer, links string) export.WriteOptions {
	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	return export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && isTTY(writer),
		LinkStyle:    linkStyle,
	}
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
