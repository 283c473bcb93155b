// file: internals/features/accounting/controller/fee_structure_controller.go
package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolms_backend/internals/features/accounting/dto"
	"schoolms_backend/internals/features/accounting/service"
	helper "schoolms_backend/internals/helpers"
)

/* =======================================================
   BOOTSTRAP & HELPERS
======================================================= */

type FeeStructureHandler struct {
	Service *service.FeeStructureService
}

func NewFeeStructureHandler(db *gorm.DB) *FeeStructureHandler {
	return &FeeStructureHandler{Service: service.NewFeeStructureService(db)}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}

func parseDateQuery(c *fiber.Ctx, name string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// jsonServiceError maps the service error taxonomy to transport statuses.
func jsonServiceError(c *fiber.Ctx, err error) error {
	switch {
	case service.IsNotFound(err):
		return helper.JsonError(c, http.StatusNotFound, err.Error())
	case service.IsConflict(err):
		return helper.JsonError(c, http.StatusConflict, err.Error())
	case service.IsValidation(err):
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
}

/* =======================================================
   LISTING
======================================================= */

// GET /api/v1/fees/structures/list?classId=&academicYear=&page=&pageSize=
// (snake_case aliases accepted)
func (h *FeeStructureHandler) ListStructures(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	in := service.ListStructuresInput{Page: paging.Page, PerPage: paging.PerPage}
	if raw := strings.TrimSpace(c.Query("class_id", c.Query("classId"))); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid class_id")
		}
		in.ClassID = &id
	}
	if raw := strings.TrimSpace(c.Query("academic_year", c.Query("academicYear"))); raw != "" {
		in.AcademicYear = &raw
	}

	rows, total, err := h.Service.ListStructures(c.UserContext(), in)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonList(c, "fee structures", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* =======================================================
   CREATE / REVISE / STATUS / HISTORY
======================================================= */

// POST /api/v1/fees/structures
func (h *FeeStructureHandler) CreateStructure(c *fiber.Ctx) error {
	var in dto.CreateFeeStructureRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	created, err := h.Service.CreateStructure(c.UserContext(), in)
	if err != nil {
		return jsonServiceError(c, err)
	}

	responses := make([]dto.FeeStructureResponse, 0, len(created))
	for _, cs := range created {
		responses = append(responses, dto.ToFeeStructureResponse(cs.Structure, cs.Items, cs.History))
	}
	return helper.JsonCreated(c, "fee structure created", dto.CreateStructurePayload(responses))
}

// POST /api/v1/fees/structures/:id/revise
func (h *FeeStructureHandler) ReviseStructure(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var in dto.ReviseFeeStructureRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	result, err := h.Service.ReviseStructure(c.UserContext(), id, in)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "fee structure revised", dto.RevisionResponse{
		FeeStructureID: result.FeeStructureID,
		Version:        result.Version,
		TotalAnnual:    result.TotalAnnual,
	})
}

// PATCH /api/v1/fees/structures/:id/status
func (h *FeeStructureHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	var in dto.UpdateFeeStructureStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	structure, err := h.Service.UpdateStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "fee structure status updated", structure)
}

// GET /api/v1/fees/structures/:id/history
func (h *FeeStructureHandler) GetStructureHistory(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid id")
	}

	history, err := h.Service.GetStructureHistory(c.UserContext(), id)
	if err != nil {
		return jsonServiceError(c, err)
	}

	responses := make([]dto.HistoryResponse, 0, len(history))
	for _, hst := range history {
		resp, derr := dto.ToHistoryResponse(hst)
		if derr != nil {
			return helper.JsonError(c, http.StatusInternalServerError, derr.Error())
		}
		responses = append(responses, resp)
	}
	return helper.JsonOK(c, "fee structure history", responses)
}

/* =======================================================
   AS-OF RESOLUTION
======================================================= */

// GET /api/v1/fees/structures/as-of/:class_id?date=YYYY-MM-DD
func (h *FeeStructureHandler) ResolveAsOf(c *fiber.Ctx) error {
	classID, err := parseUUIDParam(c, "class_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid class_id")
	}

	forDate, ok := parseDateQuery(c, "date")
	if !ok {
		forDate = time.Now().UTC()
	}

	view, err := h.Service.ResolveStructureAsOf(c.UserContext(), classID, forDate)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonOK(c, "fee structure as of "+forDate.Format("2006-01-02"), view)
}
