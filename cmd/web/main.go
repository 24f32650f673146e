// @title           Markbook API
// @version         1.0
// @description     Teacher markbook backend: register, assessments, evidence and premium subscriptions.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /

package main

import "markbook_backend/internal/app"

func main() {
	app.Run()
}
