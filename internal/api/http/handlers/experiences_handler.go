package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fronzypie/share-your-experience/internal/api/dto"
	"github.com/fronzypie/share-your-experience/internal/auth"
	"github.com/fronzypie/share-your-experience/internal/service"
	"github.com/fronzypie/share-your-experience/pkg/util"
)

// ExperiencesHandler exposes the /api/experiences endpoints.
type ExperiencesHandler struct {
	service *service.ExperienceService
}

// NewExperiencesHandler constructs handler.
func NewExperiencesHandler(experienceService *service.ExperienceService) *ExperiencesHandler {
	return &ExperiencesHandler{service: experienceService}
}

// List handles GET /api/experiences.
func (h *ExperiencesHandler) List(c *fiber.Ctx) error {
	params := service.ListParams{
		Page:    parseQueryInt(c.Query("page"), 1),
		PerPage: parseQueryInt(c.Query("per_page"), 0),
		SortBy:  c.Query("sort_by", "date_desc"),
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		params.Difficulty = &difficulty
	}
	if offer := c.Query("offer_received"); offer != "" {
		offerBool := strings.EqualFold(offer, "true")
		params.OfferReceived = &offerBool
	}
	if search := c.Query("search"); search != "" {
		params.Search = &search
	}

	result, err := h.service.List(c.Context(), params)
	if err != nil {
		return err
	}

	items := make([]dto.ExperienceResponse, 0, len(result.Experiences))
	for i := range result.Experiences {
		items = append(items, dto.NewExperienceResponse(&result.Experiences[i]))
	}
	return c.JSON(dto.ExperienceListResponse{
		Experiences: items,
		Total:       result.Total,
		Page:        result.Page,
		PerPage:     result.PerPage,
		Pages:       result.Pages,
		HasNext:     result.HasNext,
		HasPrev:     result.HasPrev,
	})
}

// Get handles GET /api/experiences/:id.
func (h *ExperiencesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	exp, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"experience": dto.NewExperienceResponse(exp)})
}

// Create handles POST /api/experiences.
func (h *ExperiencesHandler) Create(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return util.NewUnauthorized("Unauthorized")
	}
	var req dto.ExperienceRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("No data provided")
	}

	exp, err := h.service.Create(c.Context(), userID, req.Data())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":    "Experience created successfully",
		"experience": dto.NewExperienceResponse(exp),
	})
}

// Update handles PUT /api/experiences/:id.
func (h *ExperiencesHandler) Update(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return util.NewUnauthorized("Unauthorized")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.ExperienceRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("No data provided")
	}

	exp, err := h.service.Update(c.Context(), id, userID, req.Data())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":    "Experience updated successfully",
		"experience": dto.NewExperienceResponse(exp),
	})
}

// Delete handles DELETE /api/experiences/:id.
func (h *ExperiencesHandler) Delete(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return util.NewUnauthorized("Unauthorized")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), id, userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Experience deleted successfully"})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, util.NewNotFound("Experience")
	}
	return id, nil
}

// parseQueryInt keeps whatever integer the caller sent, including
// out-of-range values the service rejects; absent or non-numeric
// values fall back to def.
func parseQueryInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}
