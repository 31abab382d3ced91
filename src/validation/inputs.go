package validation

import (
	"encoding/json"
	"strings"
)

type RegisterInput struct {
	Name      string `json:"name" form:"name" validate:"required,min=2,max=30"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required,min=6,max=30"`
	Password2 string `json:"password2" form:"password2" validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// ProfileInput is a profile create/update request. Nil fields were absent from the request.
type ProfileInput struct {
	Handle         *string   `json:"handle" form:"handle" validate:"required,min=2,max=40"`
	Company        *string   `json:"company" form:"company"`
	Website        *string   `json:"website" form:"website" validate:"omitempty,url"`
	Location       *string   `json:"location" form:"location"`
	Status         *string   `json:"status" form:"status" validate:"required,min=1"`
	Skills         SkillList `json:"skills" form:"skills" validate:"required,min=1"`
	Bio            *string   `json:"bio" form:"bio"`
	GithubUsername *string   `json:"githubusername" form:"githubusername"`
	Youtube        *string   `json:"youtube" form:"youtube" validate:"omitempty,url"`
	Twitter        *string   `json:"twitter" form:"twitter" validate:"omitempty,url"`
	Facebook       *string   `json:"facebook" form:"facebook" validate:"omitempty,url"`
	Linkedin       *string   `json:"linkedin" form:"linkedin" validate:"omitempty,url"`
	Instagram      *string   `json:"instagram" form:"instagram" validate:"omitempty,url"`
}

type ExperienceInput struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Company     string `json:"company" form:"company" validate:"required"`
	Location    string `json:"location" form:"location"`
	From        string `json:"from" form:"from" validate:"required,date"`
	To          string `json:"to" form:"to" validate:"omitempty,date"`
	Current     bool   `json:"current" form:"current"`
	Description string `json:"description" form:"description"`
}

type EducationInput struct {
	School       string `json:"school" form:"school" validate:"required"`
	Degree       string `json:"degree" form:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldofstudy" form:"fieldofstudy" validate:"required"`
	From         string `json:"from" form:"from" validate:"required,date"`
	To           string `json:"to" form:"to" validate:"omitempty,date"`
	Current      bool   `json:"current" form:"current"`
	Description  string `json:"description" form:"description"`
}

// PostInput is used for posts and comments.
type PostInput struct {
	Text   string `json:"text" form:"text" validate:"required,min=10,max=300"`
	Name   string `json:"name" form:"name"`
	Avatar string `json:"avatar" form:"avatar"`
}

// SkillList accepts either a comma separated string or a JSON array of strings.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = SplitSkills(text)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = SkillList(list).Normalize()
	return nil
}

// Normalize splits every element on commas and drops blanks. A non-nil input yields a non-nil result.
func (s SkillList) Normalize() SkillList {
	if s == nil {
		return nil
	}
	out := SkillList{}
	for _, item := range s {
		out = append(out, SplitSkills(item)...)
	}
	return out
}

// SplitSkills turns "js, go,,rust" into [js go rust].
func SplitSkills(text string) SkillList {
	out := SkillList{}
	for _, part := range strings.Split(text, ",") {
		if skill := strings.TrimSpace(part); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}
