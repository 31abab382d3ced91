package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnect-backend/src/services"
	"github.com/theleywin/devconnect-backend/src/validation"
)

type ProfileController struct {
	profiles *services.ProfileService
}

func NewProfileController(profiles *services.ProfileService) *ProfileController {
	return &ProfileController{profiles: profiles}
}

// GetOwnProfile returns the authenticated user's profile
func (pc *ProfileController) GetOwnProfile(c *fiber.Ctx) error {
	profile, err := pc.profiles.GetOwnProfile(c.UserContext(), currentUser(c).Id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// GetProfiles returns every profile with its owner's name and avatar
func (pc *ProfileController) GetProfiles(c *fiber.Ctx) error {
	profiles, err := pc.profiles.ListProfiles(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(profiles)
}

// GetProfileByHandle returns the profile with the given handle
func (pc *ProfileController) GetProfileByHandle(c *fiber.Ctx) error {
	profile, err := pc.profiles.GetProfileByHandle(c.UserContext(), c.Params("handle"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// GetProfileByUserID returns the profile owned by the given user
func (pc *ProfileController) GetProfileByUserID(c *fiber.Ctx) error {
	profile, err := pc.profiles.GetProfileByUserID(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// UpsertProfile creates the profile (201) or merges the sent fields into it (200)
func (pc *ProfileController) UpsertProfile(c *fiber.Ctx) error {
	var in validation.ProfileInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	profile, created, err := pc.profiles.UpsertProfile(c.UserContext(), currentUser(c).Id, in)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(profile)
}

// AddExperience prepends an experience entry to the authenticated user's profile
func (pc *ProfileController) AddExperience(c *fiber.Ctx) error {
	var in validation.ExperienceInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	profile, err := pc.profiles.AddExperience(c.UserContext(), currentUser(c).Id, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// AddEducation prepends an education entry to the authenticated user's profile
func (pc *ProfileController) AddEducation(c *fiber.Ctx) error {
	var in validation.EducationInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	profile, err := pc.profiles.AddEducation(c.UserContext(), currentUser(c).Id, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// RemoveExperience deletes an experience entry by id
func (pc *ProfileController) RemoveExperience(c *fiber.Ctx) error {
	profile, err := pc.profiles.RemoveExperience(c.UserContext(), currentUser(c).Id, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// RemoveEducation deletes an education entry by id
func (pc *ProfileController) RemoveEducation(c *fiber.Ctx) error {
	profile, err := pc.profiles.RemoveEducation(c.UserContext(), currentUser(c).Id, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// DeleteAccount removes the profile and the user
func (pc *ProfileController) DeleteAccount(c *fiber.Ctx) error {
	if err := pc.profiles.DeleteAccount(c.UserContext(), currentUser(c).Id); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
