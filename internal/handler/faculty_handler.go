package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tndevelopers2024/scribe-api/internal/service"
	"github.com/tndevelopers2024/scribe-api/internal/utils"
)

// FacultyHandler serves reviewer-facing roster and student record endpoints.
type FacultyHandler struct {
	service service.FacultyService
	logger  zerolog.Logger
}

// NewFacultyHandler builds a faculty handler instance.
func NewFacultyHandler(service service.FacultyService, logger zerolog.Logger) *FacultyHandler {
	return &FacultyHandler{
		service: service,
		logger:  logger.With().Str("component", "faculty_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *FacultyHandler) Register(router fiber.Router) {
	router.Get("/students", h.myStudents)
	router.Get("/students/:facultyId", h.facultyStudents)
	router.Get("/faculties", h.myFaculties)
	router.Get("/student/:studentId", h.studentRecord)
}

func (h *FacultyHandler) myStudents(c *fiber.Ctx) error {
	students, err := h.service.MyStudents(c.Context(), actorFromContext(c))
	if err != nil {
		return mapServiceError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *FacultyHandler) facultyStudents(c *fiber.Ctx) error {
	facultyID, err := parseUintParam(c, "facultyId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	students, err := h.service.FacultyStudents(c.Context(), actorFromContext(c), facultyID)
	if err != nil {
		return mapServiceError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *FacultyHandler) myFaculties(c *fiber.Ctx) error {
	faculties, err := h.service.MyFaculties(c.Context(), actorFromContext(c))
	if err != nil {
		return mapServiceError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "faculties retrieved", faculties)
}

func (h *FacultyHandler) studentRecord(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	record, err := h.service.StudentRecord(c.Context(), actorFromContext(c), studentID)
	if err != nil {
		return mapServiceError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "student record retrieved", record)
}
