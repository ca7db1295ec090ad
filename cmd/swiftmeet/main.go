// @title SwiftMeet API
// @version 1.0
// @description Volunteering events catalog with capacity-limited signups.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import "swiftmeet/internal/cli"

func main() {
	cli.Execute()
}
