// main is the entry point of the records command-line tool. Every run
// loads the persisted list, applies one command and saves.
//
//	records --config=config/local.yaml list --query=ali
//	records --config=config/local.yaml add --name=Ann --dept=CS --age=20 --marks=88
//	records --config=config/local.yaml delete 2 --yes
package main

import (
	"os"

	"github.com/aanand-mishra/student-records/internal/cli"
	"github.com/aanand-mishra/student-records/internal/storage/backend"
)

func main() {
	if err := cli.NewRootCmd(backend.Open).Execute(); err != nil {
		os.Exit(1)
	}
}
