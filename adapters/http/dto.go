package http

import "time"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// UpsertProfileRequest is a sparse field set; only handle, status and
// skills are mandatory, everything else is patch-if-present.
type UpsertProfileRequest struct {
	Handle         string `json:"handle" binding:"required"`
	Status         string `json:"status" binding:"required"`
	Skills         string `json:"skills" binding:"required"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type AddExperienceRequest struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from" binding:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type AddEducationRequest struct {
	School       string     `json:"school" binding:"required"`
	Degree       string     `json:"degree" binding:"required"`
	FieldOfStudy string     `json:"fieldofstudy" binding:"required"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

type CreatePostRequest struct {
	Text string `json:"text" binding:"required"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
