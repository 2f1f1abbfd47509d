//go:build tinygo

package main

import (
	"regis3d/app"
	"regis3d/hal"
)

func main() {
	app.Run(hal.New())
}
