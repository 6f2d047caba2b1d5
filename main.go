package main

import "github.com/wangdayong228/dross-manager-client/cmd"

func main() {
	cmd.Execute()
}
