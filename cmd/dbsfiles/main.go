// Command dbsfiles is a command-line client for the DBS file service.
package main

import "github.com/ShinyNito/FunkDBS/internal/cli"

func main() {
	cli.Execute()
}
