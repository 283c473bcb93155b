// file: internals/features/accounting/route/accounting_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolms_backend/internals/configs"
	"schoolms_backend/internals/constants"
	"schoolms_backend/internals/features/accounting/controller"
	middlewares "schoolms_backend/internals/middlewares"
	authMiddleware "schoolms_backend/internals/middlewares/auth"
)

// AccountingRoutes mounts the fee-structure and accounting read surface under
// /api/v1. Reads are open (upstream gateway handles tenant auth); structure
// mutations require a staff bearer token.
func AccountingRoutes(api fiber.Router, db *gorm.DB) {
	accounting := controller.NewAccountingHandler(db)
	fees := controller.NewFeeStructureHandler(db)

	acc := api.Group("/accounting")
	acc.Get("/class", accounting.ListClasses)
	acc.Get("/fee-structure/:class_id", accounting.GetClassFeeStructure)
	acc.Get("/scholarships/:student_id", accounting.ListScholarships)
	acc.Get("/charges-and-fines/:student_id", accounting.ListChargesAndFines)

	structures := api.Group("/fees/structures")
	structures.Get("/list", fees.ListStructures)
	structures.Get("/as-of/:class_id", fees.ResolveAsOf)
	structures.Get("/:id/history", fees.GetStructureHistory)

	staff := structures.Group("",
		middlewares.MutationRateLimiter(),
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:        configs.JWTSecret,
			RequiredRoles: constants.FeeStructureWriters,
		}))
	staff.Post("/", fees.CreateStructure)
	staff.Post("/:id/revise", fees.ReviseStructure)
	staff.Patch("/:id/status", fees.UpdateStatus)
}
