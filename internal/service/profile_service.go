package service

import (
	"context"
	"strings"

	"devconnect/internal/cache"
	"devconnect/internal/github"
	"devconnect/internal/middleware"
	"devconnect/internal/models"
	"devconnect/internal/repository"
)

// RepositoryLister fetches a user's public repositories from an external host.
type RepositoryLister interface {
	ListRepositories(ctx context.Context, username string) ([]github.Repository, error)
}

// ProfileService owns profile creation/merge, experience/education sub-list
// mutation, and social-link normalization.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	repoLister  RepositoryLister
}

// UpsertProfileInput is the partial field set for create-or-update. Company,
// location, status and skills are required; the rest only overwrite stored
// values when provided non-empty.
type UpsertProfileInput struct {
	UserID         uint
	Company        string
	Location       string
	Status         string
	Skills         string // comma-separated
	Website        string
	Bio            string
	GithubUsername string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

// NewProfileService creates a profile service.
func NewProfileService(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	repoLister RepositoryLister,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		repoLister:  repoLister,
	}
}

// splitSkills turns "a, b , c" into ["a","b","c"], dropping empty elements.
func splitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// normalizeURL rewrites scheme-less values to https://. Empty stays empty.
func normalizeURL(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.Contains(v, "://") {
		return "https://" + v
	}
	return v
}

// UpsertProfile validates, then creates the caller's profile or merges the
// provided fields over the stored ones. Validation runs before the
// create/merge branch is chosen, and the post-merge state is returned.
func (s *ProfileService) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	if strings.TrimSpace(in.Company) == "" {
		return nil, models.NewValidationError("Please enter your company")
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, models.NewValidationError("Please enter your location")
	}
	if strings.TrimSpace(in.Status) == "" {
		return nil, models.NewValidationError("Status is required")
	}
	skills := splitSkills(in.Skills)
	if len(skills) == 0 {
		return nil, models.NewValidationError("Skills is required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		if !models.IsCode(err, models.CodeNotFound) {
			return nil, err
		}
		profile = &models.Profile{UserID: in.UserID}
	}

	profile.Company = strings.TrimSpace(in.Company)
	profile.Location = strings.TrimSpace(in.Location)
	profile.Status = strings.TrimSpace(in.Status)
	profile.Skills = skills

	if in.Website != "" {
		profile.Website = normalizeURL(in.Website)
	}
	if in.Bio != "" {
		profile.Bio = in.Bio
	}
	if in.GithubUsername != "" {
		profile.GithubUsername = strings.TrimSpace(in.GithubUsername)
	}
	if in.Youtube != "" {
		profile.Social.Youtube = normalizeURL(in.Youtube)
	}
	if in.Twitter != "" {
		profile.Social.Twitter = normalizeURL(in.Twitter)
	}
	if in.Facebook != "" {
		profile.Social.Facebook = normalizeURL(in.Facebook)
	}
	if in.Linkedin != "" {
		profile.Social.Linkedin = normalizeURL(in.Linkedin)
	}
	if in.Instagram != "" {
		profile.Social.Instagram = normalizeURL(in.Instagram)
	}

	if profile.ID == 0 {
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
	} else {
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			return nil, err
		}
	}

	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// GetByUserID returns the profile for the given user, NotFound when absent.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// ListProfiles returns all profiles with their owning users preloaded.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// DeleteProfileAndUser removes the caller's profile, then the user record.
// The two steps are not atomic: if the user delete fails after the profile
// delete succeeded, the gap is logged and surfaced, not rolled back.
func (s *ProfileService) DeleteProfileAndUser(ctx context.Context, userID uint) error {
	if err := s.profileRepo.Delete(ctx, userID); err != nil && !models.IsCode(err, models.CodeNotFound) {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		middleware.Logger.ErrorContext(ctx, "user delete failed after profile delete",
			"user_id", userID, "error", err)
		return err
	}
	return nil
}

// AddExperience prepends a new employment entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, exp models.Experience) (*models.Profile, error) {
	if strings.TrimSpace(exp.Title) == "" {
		return nil, models.NewValidationError("Please enter your job title")
	}
	if strings.TrimSpace(exp.Company) == "" {
		return nil, models.NewValidationError("Please enter your company name")
	}
	if strings.TrimSpace(exp.Location) == "" {
		return nil, models.NewValidationError("Please enter your work location")
	}
	if exp.From.IsZero() {
		return nil, models.NewValidationError("Please enter your start date")
	}
	if exp.Current {
		exp.To = nil
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp.ID = 0
	exp.ProfileID = profile.ID
	if err := s.profileRepo.AddExperience(ctx, &exp); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// RemoveExperience deletes the entry with the given id from the caller's profile.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, entryID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveExperience(ctx, profile.ID, entryID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// AddEducation prepends a new schooling entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, edu models.Education) (*models.Profile, error) {
	if strings.TrimSpace(edu.School) == "" {
		return nil, models.NewValidationError("Please enter your school")
	}
	if edu.From.IsZero() {
		return nil, models.NewValidationError("Please enter your start date")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu.ID = 0
	edu.ProfileID = profile.ID
	if err := s.profileRepo.AddEducation(ctx, &edu); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// RemoveEducation deletes the entry with the given id from the caller's
// profile. The lookup runs against the education list, not experience.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, entryID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveEducation(ctx, profile.ID, entryID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// LookupGithubRepositories fetches the user's recent public repositories.
// Results are cached briefly; failures are lookup errors, never server faults.
func (s *ProfileService) LookupGithubRepositories(ctx context.Context, username string) ([]github.Repository, error) {
	if strings.TrimSpace(username) == "" {
		return nil, models.NewValidationError("Username is required")
	}

	var repos []github.Repository
	key := cache.GithubReposKey(username)
	if found, _ := cache.GetJSON(ctx, key, &repos); found {
		return repos, nil
	}

	repos, err := s.repoLister.ListRepositories(ctx, username)
	if err != nil {
		return nil, err
	}

	_ = cache.SetJSON(ctx, key, repos, cache.GithubTTL)
	return repos, nil
}
