package main

import "github.com/bitmark-inc/community-aid/cli"

func main() {
	cli.Execute()
}
