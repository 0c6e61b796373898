package main

import (
	_ "farm-market-session/docs" // <-- required to register swagger spec

	"farm-market-session/cmd"
)

// @title           Farm Market Session API
// @version         1.0
// @description     Holds the marketplace frontend's authenticated session.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.email   support@swagger.io

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host            localhost:4000
// @BasePath        /api/v1
func main() {
	cmd.Execute()
}
