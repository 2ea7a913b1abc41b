package main

import (
	"github.com/danielkitchener/ComicShelf/cmd/comicshelf/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	commands.Execute()
}
