package profile

import (
	"io/fs"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/navicore/xedit/internal/xedit/command"
	xerrors "github.com/navicore/xedit/internal/xedit/errors"
	"github.com/navicore/xedit/internal/xedit/editor"
)

// Settings is the decoded shape of a PROFILE.toml file. Every field is a
// pointer (or nil-able map/slice) so Apply can tell "absent" from "set
// to the zero value".
type Settings struct {
	Trunc  *int    `toml:"trunc"`
	Zone   []int   `toml:"zone"`
	Number *bool   `toml:"number"`
	Prefix *bool   `toml:"prefix"`
	Scale  *bool   `toml:"scale"`
	Case   *string `toml:"case"`
	Wrap   *bool   `toml:"wrap"`
	Hex    *bool   `toml:"hex"`
	Stay   *bool   `toml:"stay"`
	Shadow *bool   `toml:"shadow"`
	Verify []int   `toml:"verify"`

	MacroPath []string          `toml:"macro_path"`
	Colors    map[string]string `toml:"colors"`
	PfKeys    map[string]string `toml:"pf_keys"`
}

// Loader reads a PROFILE.toml file, with its filesystem swappable for
// tests via Option.
type Loader struct {
	fs fs.FS
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS overrides the filesystem Load reads from, defaulting to the OS
// filesystem (osFS), which opens paths exactly as given.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) { l.fs = fsys }
}

// NewLoader returns a Loader reading from the OS filesystem unless
// overridden with WithFS.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{fs: osFS{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and decodes path. A missing file reports xerrors.FileNotFound
// so callers can treat it as "no profile configured" rather than a hard
// failure.
func (l *Loader) Load(path string) (*Settings, error) {
	data, err := fs.ReadFile(l.fs, path)
	if err != nil {
		return nil, xerrors.FileNotFoundf(path)
	}
	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, xerrors.Wrap(xerrors.Io, err)
	}
	return &s, nil
}

// osFS adapts the OS filesystem to fs.FS for absolute and
// working-directory-relative paths, which fs.FS's "no leading slash, no
// dot-dot" rules otherwise reject.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) { return os.Open(name) }

// Load is the package-level convenience wrapping NewLoader().Load, for
// callers that don't need a custom filesystem.
func Load(path string) (*Settings, error) {
	return NewLoader().Load(path)
}

// Apply pushes every present Settings field onto ed through the same
// SET command path a user would type, so validation (color names, ...)
// stays in one place. It applies every field it can and
// returns the first error encountered, if any.
func Apply(ed *editor.Editor, s *Settings) error {
	if s == nil {
		return nil
	}

	var firstErr error
	exec := func(sc command.SetCommand) {
		if _, err := ed.Execute(command.Command{Kind: command.Set, Set: sc}); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if s.Trunc != nil {
		exec(command.SetCommand{Kind: command.SetTrunc, N: *s.Trunc})
	}
	if len(s.Zone) == 2 {
		exec(command.SetCommand{Kind: command.SetZone, ZoneLeft: s.Zone[0], ZoneRight: s.Zone[1]})
	}
	if s.Number != nil {
		exec(command.SetCommand{Kind: command.SetNumber, Bool: *s.Number})
	}
	if s.Prefix != nil {
		exec(command.SetCommand{Kind: command.SetPrefix, Bool: *s.Prefix})
	}
	if s.Scale != nil {
		exec(command.SetCommand{Kind: command.SetScale, Bool: *s.Scale})
	}
	if s.Case != nil {
		cs, ok := caseSettingFor(*s.Case)
		if !ok && firstErr == nil {
			firstErr = xerrors.Newf(xerrors.InvalidCommand, "PROFILE: invalid case setting: %s", *s.Case)
		} else if ok {
			exec(command.SetCommand{Kind: command.SetCase, Case: cs})
		}
	}
	if s.Wrap != nil {
		exec(command.SetCommand{Kind: command.SetWrap, Bool: *s.Wrap})
	}
	if s.Hex != nil {
		exec(command.SetCommand{Kind: command.SetHex, Bool: *s.Hex})
	}
	if s.Stay != nil {
		exec(command.SetCommand{Kind: command.SetStay, Bool: *s.Stay})
	}
	if s.Shadow != nil {
		exec(command.SetCommand{Kind: command.SetShadow, Bool: *s.Shadow})
	}
	if len(s.Verify) == 2 {
		exec(command.SetCommand{Kind: command.SetVerify, VerifyStart: s.Verify[0], VerifyEnd: s.Verify[1]})
	}
	for area, color := range s.Colors {
		ca, ok := command.ParseColorArea(area)
		if !ok {
			if firstErr == nil {
				firstErr = xerrors.Newf(xerrors.InvalidCommand, "PROFILE: unknown colour area: %s", area)
			}
			continue
		}
		exec(command.SetCommand{Kind: command.SetColor, ColorArea: ca, ColorName: color})
	}

	for slot, text := range s.PfKeys {
		n, err := strconv.Atoi(slot)
		if err != nil || n < 1 || n > 24 {
			if firstErr == nil {
				firstErr = xerrors.Newf(xerrors.InvalidCommand, "PROFILE: invalid PF key slot: %s", slot)
			}
			continue
		}
		exec(command.SetCommand{Kind: command.SetPf, N: n, PfText: text})
	}

	if len(s.MacroPath) > 0 {
		ed.SetMacroPath(s.MacroPath)
	}

	return firstErr
}

func caseSettingFor(s string) (command.CaseSetting, bool) {
	switch s {
	case "MIXED", "mixed":
		return command.CaseMixed, true
	case "UPPER", "upper":
		return command.CaseUpper, true
	case "RESPECT", "respect":
		return command.CaseRespect, true
	case "IGNORE", "ignore":
		return command.CaseIgnore, true
	default:
		return 0, false
	}
}
