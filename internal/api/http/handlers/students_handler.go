package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/CaioVictor3/Bus-Manager-App/internal/api/dto"
	"github.com/CaioVictor3/Bus-Manager-App/internal/domain"
	"github.com/CaioVictor3/Bus-Manager-App/internal/service"
	apperrors "github.com/CaioVictor3/Bus-Manager-App/pkg/util"
)

// StudentsHandler exposes roster CRUD and the presence partition.
type StudentsHandler struct {
	roster *service.RosterService
}

// NewStudentsHandler constructs handler.
func NewStudentsHandler(roster *service.RosterService) *StudentsHandler {
	return &StudentsHandler{roster: roster}
}

// List handles GET /students. The presence query parameter narrows the
// collection to the present or absent partition.
func (h *StudentsHandler) List(c *fiber.Ctx) error {
	var students []domain.Student
	switch c.Query("presence") {
	case "present":
		students = h.roster.PresentStudents()
	case "absent":
		students = h.roster.AbsentStudents()
	case "":
		students = h.roster.Students()
	default:
		return apperrors.NewValidationError("presence must be present or absent", nil)
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"students": students,
		"total":    len(students),
	}})
}

// Create handles POST /students.
func (h *StudentsHandler) Create(c *fiber.Ctx) error {
	var req dto.AddStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := domain.NewStudentInput{
		Name:      req.Name,
		Phone:     req.Phone,
		AddressGo: req.AddressGo.ToDomain(),
	}
	if req.AddressReturn != nil {
		addr := req.AddressReturn.ToDomain()
		input.AddressReturn = &addr
	}

	student, err := h.roster.AddStudent(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"student": student}})
}

// Update handles PATCH /students/:id.
func (h *StudentsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	student, err := h.roster.UpdateStudent(c.UserContext(), c.Params("id"), req.ToPatch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"student": student}})
}

// Delete handles DELETE /students/:id. Deleting an unknown id succeeds.
func (h *StudentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.roster.DeleteStudent(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// TogglePresence handles POST /students/:id/presence/toggle.
func (h *StudentsHandler) TogglePresence(c *fiber.Ctx) error {
	student, err := h.roster.ToggleStudentPresence(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"student": student}})
}
