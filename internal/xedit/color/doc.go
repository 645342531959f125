// Package color validates and normalizes the colour names accepted by
// SET COLOR. Both a small named palette and raw "#rrggbb"
// hex strings are accepted; everything is normalized to canonical hex via
// go-colorful so downstream code only ever compares hex strings.
package color
