package main

import "github.com/Freeeeeet/vmk_schedule_bot/internal/cli"

func main() {
	cli.Execute()
}
