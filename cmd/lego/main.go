// Command lego runs declarative queries over JSON or YAML record files.
//
//	lego run --data people.json --plan engineers.yaml --pretty
//	lego explain --plan engineers.yaml
package main

import (
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
