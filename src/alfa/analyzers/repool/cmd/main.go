package main

import (
	"github.com/amarbel-llc/xpatch/src/alfa/analyzers/repool"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(repool.Analyzer)
}
