// package formatter shapes resolved playlists and diagnostic reports for
// output (path lists, M3U, human-readable error reports)
package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"trackfort/internal/library"
	"trackfort/internal/query"
	"trackfort/internal/resolve"
	"trackfort/internal/ui"
)

// ListOptions controls path rendering for FormatPaths.
type ListOptions struct {
	StripPrefix    string // removed from the front of each path when present
	PrependPrefix  string // added to the front of each path
	NullTerminated bool   // terminate entries with NUL instead of newline
}

// FormatPaths renders the playlist as one path per entry.
func FormatPaths(p *resolve.Playlist, opts ListOptions) []byte {
	terminator := byte('\n')
	if opts.NullTerminated {
		terminator = 0
	}

	var buf bytes.Buffer
	for _, path := range p.Paths() {
		if opts.StripPrefix != "" {
			path = strings.TrimPrefix(path, opts.StripPrefix)
		}
		buf.WriteString(opts.PrependPrefix + path)
		buf.WriteByte(terminator)
	}
	return buf.Bytes()
}

// ExportToM3U renders the playlist in extended M3U format.
func ExportToM3U(p *resolve.Playlist) []byte {
	var buf bytes.Buffer
	buf.WriteString("#EXTM3U\n")
	for _, pt := range p.Tracks {
		artist := pt.Track.Tag(library.TagArtist)
		title := pt.Track.Tag(library.TagTitle)
		if title != "" {
			if artist != "" {
				buf.WriteString(fmt.Sprintf("#EXTINF:-1,%s - %s\n", artist, title))
			} else {
				buf.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", title))
			}
		}
		buf.WriteString(pt.Track.Path)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// RenderReport renders every diagnostic in the report, one block per failing
// line, with enough context to fix the playlist in a single pass.
func RenderReport(report *resolve.Report, palette *ui.Palette) string {
	if palette == nil {
		palette = ui.DefaultPalette()
	}

	var b strings.Builder
	for _, d := range report.Diagnostics {
		b.WriteString(palette.Err(fmt.Sprintf("line %d", d.Line)))
		b.WriteString(": ")
		b.WriteString(describe(d.Err))
		b.WriteString("\n  ")
		b.WriteString(palette.Help(d.Text))
		b.WriteByte('\n')

		var over *resolve.OverMatchError
		if errors.As(d.Err, &over) {
			for _, candidate := range over.Candidates {
				b.WriteString("  ")
				b.WriteString(palette.Warn("match: " + candidate))
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

// describe produces the one-line failure summary for a diagnostic error.
func describe(err error) string {
	var (
		parseErr *query.ParseError
		under    *resolve.UnderMatchError
		over     *resolve.OverMatchError
	)
	switch {
	case errors.As(err, &parseErr):
		return "parse error: " + parseErr.Reason
	case errors.As(err, &under):
		if under.Actual == 0 {
			return fmt.Sprintf("no matches (expected %d)", under.Expected)
		}
		return fmt.Sprintf("matched %d tracks, expected %d", under.Actual, under.Expected)
	case errors.As(err, &over):
		return fmt.Sprintf("ambiguous: matched %d tracks, expected %d", over.Actual, over.Expected)
	default:
		return err.Error()
	}
}
