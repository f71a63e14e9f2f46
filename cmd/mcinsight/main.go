/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/materials-commons/mcinsight/cmd/mcinsight/cmd"

func main() {
	cmd.Execute()
}
