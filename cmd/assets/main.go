// Command assets fetches the texture atlas and block definition data the
// renderer consumes into a local cache directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	get "github.com/hashicorp/go-getter"
)

func main() {
	var (
		base = flag.String("base", "https://github.com/PrismarineJS/minecraft-assets.git", "base url")
		ver  = flag.String("version", "1.8.8", "asset pack version")
		out  = flag.String("o", "./data", "output dir path")
	)
	flag.Parse()

	if *out == "" {
		panic("output dir path required")
	}

	if *ver == "" {
		panic("version required")
	}

	path := fmt.Sprintf("%s/assets-%s", *out, *ver)

	if err := os.RemoveAll(path); err != nil {
		panic(err)
	}

	log.Default().Printf("start downloading assets %s", path)

	url := fmt.Sprintf("git::%s//data/%s", *base, *ver)

	if err := get.Get(path, url); err != nil {
		panic(err)
	}

	log.Default().Printf("done downloading assets %s", path)
}
