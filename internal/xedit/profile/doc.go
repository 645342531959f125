// Package profile loads PROFILE.toml, the startup settings file a host
// reads before handing control to the user: truncation column, zone,
// display toggles, case sensitivity, colour overrides, PF key bindings,
// and the macro search path. original_source has no equivalent — XEDIT
// traditionally carries these as a PROFILE XEDIT macro instead — so this
// is a supplemental, config-file-shaped alternative grounded on the
// teacher's functional-options loader convention.
package profile
