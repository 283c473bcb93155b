// file: internals/features/accounting/controller/accounting_controller.go
package controller

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolms_backend/internals/features/accounting/dto"
	"schoolms_backend/internals/features/accounting/service"
	helper "schoolms_backend/internals/helpers"
)

/* =======================================================
   ACCOUNTING READ PATHS
======================================================= */

type AccountingHandler struct {
	Service *service.FeeStructureService
}

func NewAccountingHandler(db *gorm.DB) *AccountingHandler {
	return &AccountingHandler{Service: service.NewFeeStructureService(db)}
}

// GET /api/v1/accounting/class
func (h *AccountingHandler) ListClasses(c *fiber.Ctx) error {
	classes, err := h.Service.ListActiveClasses(c.UserContext())
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonOK(c, "active classes", dto.ToClassResponses(classes))
}

// GET /api/v1/accounting/fee-structure/:class_id?academic_year=
// Thin delegate into the listing layer, pinned to one class.
func (h *AccountingHandler) GetClassFeeStructure(c *fiber.Ctx) error {
	classID, err := parseUUIDParam(c, "class_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid class_id")
	}

	paging := helper.ResolvePaging(c, 20, 100)
	in := service.ListStructuresInput{
		ClassID: &classID,
		Page:    paging.Page,
		PerPage: paging.PerPage,
	}
	if raw := strings.TrimSpace(c.Query("academic_year", c.Query("academicYear"))); raw != "" {
		in.AcademicYear = &raw
	}

	rows, total, err := h.Service.ListStructures(c.UserContext(), in)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonList(c, "class fee structures", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// GET /api/v1/accounting/scholarships/:student_id?startDate=&endDate=
func (h *AccountingHandler) ListScholarships(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid student_id")
	}

	start, okStart := parseDateQuery(c, "startDate")
	end, okEnd := parseDateQuery(c, "endDate")
	if !okStart || !okEnd {
		return helper.JsonError(c, http.StatusBadRequest, "startDate and endDate are required (YYYY-MM-DD)")
	}

	rows, err := h.Service.ListScholarshipAssignments(c.UserContext(), studentID, start, end)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonOK(c, "scholarship assignments", dto.ToScholarshipAssignmentResponses(rows))
}

// GET /api/v1/accounting/charges-and-fines/:student_id?startDate=&endDate=
func (h *AccountingHandler) ListChargesAndFines(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid student_id")
	}

	start, okStart := parseDateQuery(c, "startDate")
	end, okEnd := parseDateQuery(c, "endDate")
	if !okStart || !okEnd {
		return helper.JsonError(c, http.StatusBadRequest, "startDate and endDate are required (YYYY-MM-DD)")
	}

	rows, err := h.Service.ListChargeAssignments(c.UserContext(), studentID, start, end)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonOK(c, "charge assignments", dto.ToChargeAssignmentResponses(rows))
}
