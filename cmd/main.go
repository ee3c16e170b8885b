// cmd/main.go
package main

import (
	"meetbook-api/app"
)

// @title           MeetBook API
// @version         1.0
// @description     Meeting scheduling backend with real-time session tokens.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:3001
// @BasePath  /
func main() {
	app.Run()
}
