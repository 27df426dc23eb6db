package main

import "github.com/jkwon-dev/interviewkit/cmd"

func main() {
	cmd.Execute()
}
