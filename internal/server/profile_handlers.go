package server

import (
	"devconnect/internal/middleware"
	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpsertProfileRequest represents the create-or-update profile request body.
// Skills arrive as a comma-separated string, matching the client form.
type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Website        string `json:"website"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// ExperienceRequest represents an employment entry request body.
type ExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationRequest represents a schooling entry request body.
type EducationRequest struct {
	School      string `json:"school"`
	Degree      string `json:"degree"`
	From        string `json:"from"`
	To          string `json:"to"`
	Description string `json:"description"`
}

// GetMyProfile handles GET /api/profile/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetByUserID(c.Context(), currentUserID(c))
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("There is no profile for this user"))
		}
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}
	return c.JSON(profile)
}

// GetProfileByUser handles GET /api/profile/user/:id
func (s *Server) GetProfileByUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	profile, err := s.profileService.GetByUserID(c.Context(), userID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Profile not found"))
		}
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}
	return c.JSON(profile)
}

// GetProfiles handles GET /api/profile
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.ListProfiles(c.Context())
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}
	return c.JSON(profiles)
}

// UpsertProfile handles POST /api/profile
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req UpsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpsertProfile(c.Context(), service.UpsertProfileInput{
		UserID:         currentUserID(c),
		Company:        req.Company,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Website:        req.Website,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}
	return c.JSON(profile)
}

// AddExperience handles PUT /api/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req ExperienceRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	from, err := parseDate(req.From)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}
	to, err := parseDate(req.To)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	exp := models.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Current:     req.Current,
		Description: req.Description,
		To:          to,
	}
	if from != nil {
		exp.From = *from
	}

	profile, err := s.profileService.AddExperience(c.Context(), currentUserID(c), exp)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}
	return c.JSON(profile)
}

// DeleteExperience handles DELETE /api/profile/experience/:id
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	entryID, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}

	profile, err := s.profileService.RemoveExperience(c.Context(), currentUserID(c), entryID)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req EducationRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	from, err := parseDate(req.From)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}
	to, err := parseDate(req.To)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	edu := models.Education{
		School:      req.School,
		Degree:      req.Degree,
		Description: req.Description,
		To:          to,
	}
	if from != nil {
		edu.From = *from
	}

	profile, err := s.profileService.AddEducation(c.Context(), currentUserID(c), edu)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}
	return c.JSON(profile)
}

// DeleteEducation handles DELETE /api/profile/education/:id
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	entryID, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}

	profile, err := s.profileService.RemoveEducation(c.Context(), currentUserID(c), entryID)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(profile)
}

// GetGithubRepos handles GET /api/profile/github/:username
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	repos, err := s.profileService.LookupGithubRepositories(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(repos)
}

// DeleteProfileAndUser handles DELETE /api/profile, removing the caller's
// profile and account.
func (s *Server) DeleteProfileAndUser(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if err := s.profileService.DeleteProfileAndUser(c.Context(), userID); err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	middleware.Logger.InfoContext(c.Context(), "user deleted", "user_id", userID)
	return c.JSON(fiber.Map{"msg": "User deleted"})
}
