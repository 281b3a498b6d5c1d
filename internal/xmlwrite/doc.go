// Package xmlwrite serializes dom trees, either as written (raw) or in
// Canonical XML 1.0 form without comments.
package xmlwrite
