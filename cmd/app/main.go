package main

import (
	"github.com/NidaEsenn/CineMatch/internal/app"
	"github.com/NidaEsenn/CineMatch/internal/config"
)

func main() {
	app.Go(config.Load())
}
