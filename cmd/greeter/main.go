// Command greeter answers every request with a hello page.
package main

import (
	"net/http"

	"github.com/f4ah6o/htmlserve/internal/cli"
	"github.com/f4ah6o/htmlserve/internal/config"
	"github.com/f4ah6o/htmlserve/internal/greeter"
)

func main() {
	cli.Execute(cli.NewCommand("greeter", "Serve a Hello World page for every request",
		func(config.Config) (http.Handler, error) {
			return greeter.Handler(), nil
		}))
}
