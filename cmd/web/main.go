package main

import "beatbattle_backend/internal/app"

func main() {
	app.Run()
}
