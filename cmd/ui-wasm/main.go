//go:build js && wasm

package main

import "github.com/Its-donkey/solar-site/internal/ui/wasm"

func main() {
	wasm.RunApp()
}
