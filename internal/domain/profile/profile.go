package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrHandleTaken     = errors.New("handle already exists")
	ErrEntryNotFound   = errors.New("entry not found")
)

// Experience and Education are sub-documents: they have no identity
// outside their parent profile.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Profile struct {
	UserID         uuid.UUID    `json:"user"`
	Handle         string       `json:"handle"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         SocialLinks  `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	CreatedAt      time.Time    `json:"date"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// SplitSkills turns the comma-separated skills field into a trimmed,
// ordered list. Empty segments are dropped.
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// AddExperience prepends the entry so the sequence stays
// most-recent-first.
func (p *Profile) AddExperience(e Experience) {
	p.Experience = append([]Experience{e}, p.Experience...)
}

func (p *Profile) AddEducation(e Education) {
	p.Education = append([]Education{e}, p.Education...)
}

// RemoveExperience deletes the entry with the given id. Unlike the
// usual splice-at-indexOf approach, a missing id is an explicit error.
func (p *Profile) RemoveExperience(id uuid.UUID) error {
	for i, e := range p.Experience {
		if e.ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

func (p *Profile) RemoveEducation(id uuid.UUID) error {
	for i, e := range p.Education {
		if e.ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	Update(ctx context.Context, p *Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	FindByHandle(ctx context.Context, handle string) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	// DeleteWithUser removes the profile and its user atomically.
	DeleteWithUser(ctx context.Context, userID uuid.UUID) error
}
