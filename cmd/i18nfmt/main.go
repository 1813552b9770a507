package main

import (
	"github.com/Samk13/i18n-invenio-formatter/internal/cli"
)

var version = "dev"

func main() {
	cli.Execute(version)
}
