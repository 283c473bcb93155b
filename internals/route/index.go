// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	accountingRoute "schoolms_backend/internals/features/accounting/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	log.Println("[INFO] setting up accounting routes...")
	api := app.Group("/api/v1")
	accountingRoute.AccountingRoutes(api, db)
}
