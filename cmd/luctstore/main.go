package main

import (
	"context"
	"log"

	"github.com/dalemusser/waffle/app"

	"github.com/dalemusser/luctportal/internal/app/bootstrap"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.StoreHooks); err != nil {
		log.Fatal(err)
	}
}
