/*
Copyright © 2026 dgextractor authors
*/
package main

import "dgextractor/cmd"

func main() {
	cmd.Execute()
}
