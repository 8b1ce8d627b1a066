package main

import (
	"log"

	"github.com/Garsondee/Dark-Vision/internal/render"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	ebiten.SetWindowTitle("Dark Vision")
	ebiten.SetWindowSize(1280, 800)
	if err := ebiten.RunGame(render.New()); err != nil {
		log.Fatal(err)
	}
}
