// Weave - a wallpaper and colour scheme manager
//
// Weave imports wallpapers, extracts their dominant colours, and pairs
// them with colour schemes by perceptual similarity.
package main

import (
	"github.com/jmylchreest/weave/internal/cli"
)

func main() {
	cli.Execute()
}
