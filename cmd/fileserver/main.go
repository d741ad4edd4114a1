// Command fileserver serves .html files from a local directory.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/f4ah6o/htmlserve/internal/cli"
	"github.com/f4ah6o/htmlserve/internal/config"
	"github.com/f4ah6o/htmlserve/internal/log"
	"github.com/f4ah6o/htmlserve/internal/pages"
)

func main() {
	cli.Execute(cli.NewCommand("fileserver", "Serve HTML files from a directory",
		func(cfg config.Config) (http.Handler, error) {
			h, err := pages.New(pages.Options{Root: cfg.Root, Confine: cfg.Confine})
			if err != nil {
				return nil, err
			}
			if _, err := os.Stat(h.Root()); os.IsNotExist(err) {
				return nil, fmt.Errorf("directory does not exist: %s", h.Root())
			}
			if !cfg.Confine {
				log.Warnf("Path confinement disabled: requests may read files outside %s", h.Root())
			}
			return h, nil
		}))
}
