package main

import "github.com/jsphweid/arckit/cmd"

func main() {
	cmd.Execute()
}
