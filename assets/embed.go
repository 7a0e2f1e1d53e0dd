// Package assets embeds the default image set and its manifest.
package assets

import "embed"

// ManifestPath is the manifest's name inside FS.
const ManifestPath = "manifest.yaml"

// FS holds manifest.yaml and the images it lists.
//
//go:embed manifest.yaml images
var FS embed.FS
