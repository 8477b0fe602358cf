// @title Event Registration API
// @version 1.0
// @description Create events, register attendees under capacity and duplicate rules, and list events in any timezone.
// @BasePath /api/v1
package main

import "eventregistration/cmd/api/cmd"

func main() {
	cmd.Execute()
}
