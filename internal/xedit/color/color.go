package color

import (
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	xerrors "github.com/navicore/xedit/internal/xedit/errors"
)

// named is the palette of colour names SET COLOR recognizes
// beyond raw hex. It mirrors the eight colours a 3270-style terminal
// could address plus a handful of common aliases.
var named = map[string]string{
	"BLUE":    "#0000ff",
	"RED":     "#ff0000",
	"PINK":    "#ff69b4",
	"GREEN":   "#00ff00",
	"TURQ":    "#40e0d0",
	"YELLOW":  "#ffff00",
	"WHITE":   "#ffffff",
	"BLACK":   "#000000",
	"ORANGE":  "#ff8800",
	"GREY":    "#808080",
	"GRAY":    "#808080",
	"DEFAULT": "#ffffff",
}

// Resolve validates name (a palette name or a "#rrggbb" hex string) and
// returns its canonical lowercase hex form.
func Resolve(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", xerrors.New(xerrors.InvalidCommand, "color name must not be empty")
	}

	upper := strings.ToUpper(trimmed)
	if hex, ok := named[upper]; ok {
		return hex, nil
	}

	c, err := colorful.Hex(trimmed)
	if err != nil {
		return "", xerrors.Newf(xerrors.InvalidCommand, "unknown color: %s", name)
	}
	return c.Hex(), nil
}

// Names returns the recognized palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
