package refactor

import (
	"strings"

	"rubyfactor/pkg/buffer"
	"rubyfactor/pkg/config"
	"rubyfactor/pkg/types"
)

// bindingMarker detects lines that already carry a let binding. New
// bindings are appended after existing ones, never interleaved.
const bindingMarker = "let("

// effectiveMode applies the per-invocation inversion flag to the
// configured placement mode.
func effectiveMode(cfg *config.Config, invert bool) types.PlacementMode {
	if invert {
		return cfg.PlacementMode.Opposite()
	}
	return cfg.PlacementMode
}

// findAnchor locates the anchor line for the given mode: the first
// matching line in the buffer for top placement, the nearest matching
// line at or before anchorLoc for closest placement. Returns the offset
// of the anchor line start, or an AnchorNotFound error.
func findAnchor(buf *buffer.Buffer, cfg *config.Config, mode types.PlacementMode, anchorLoc int) (int, error) {
	var at int
	if mode == types.PlacementTop {
		at = buf.FindLineForward(cfg.AnchorPattern, 0)
	} else {
		at = buf.FindLineBackward(cfg.AnchorPattern, anchorLoc)
	}
	if at < 0 {
		return 0, &types.RefactorError{
			Type:    types.AnchorNotFound,
			Message: "no line matches the anchor pattern " + cfg.AnchorPattern.String(),
		}
	}
	return at, nil
}

// ValidateAnchor checks that an anchor line exists for the given mode
// without touching the buffer. Orchestrators call this before deleting
// anything so a missing anchor never loses text.
func ValidateAnchor(buf *buffer.Buffer, cfg *config.Config, mode types.PlacementMode, anchorLoc int) error {
	_, err := findAnchor(buf, cfg, mode, anchorLoc)
	return err
}

// ResolvePlacement finds the insertion point for a new binding: one
// line past the anchor line, then past every contiguous line already
// holding a binding. The insertion line is re-indented so inserted text
// picks up the surrounding indentation; the returned offset is the
// start of that line's content after the re-indent.
func ResolvePlacement(buf *buffer.Buffer, cfg *config.Config, mode types.PlacementMode, anchorLoc int) (int, error) {
	anchor, err := findAnchor(buf, cfg, mode, anchorLoc)
	if err != nil {
		return 0, err
	}

	at := buf.NextLineOffset(anchor)
	if at == buf.Len() && (buf.Len() == 0 || !strings.HasSuffix(buf.String(), "\n")) {
		// The anchor is an unterminated last line; open a line below it.
		buf.Insert(buf.Len(), "\n")
		at = buf.Len()
	}
	for at < buf.Len() && strings.Contains(buf.LineText(at), bindingMarker) {
		at = buf.NextLineOffset(at)
	}

	return buf.ReindentLine(at), nil
}
