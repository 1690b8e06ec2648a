package response

import (
	"blogify/internal/core/domain/user"
	"time"
)

// PictureURL resolves a stored profile picture into a public URL.
type PictureURL func(name user.ImageFile) string

type User struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	PictureURL string    `json:"picture_url"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) FromDomainUser(du user.User, pictureURL PictureURL) {
	u.ID = int64(du.ID)
	u.Username = string(du.Username)
	u.Email = string(du.Email)
	u.PictureURL = pictureURL(du.Picture())
	u.CreatedAt = du.CreatedAt
}

// PublicUser is what other users may see about an account.
type PublicUser struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	PictureURL string `json:"picture_url"`
}

func (u *PublicUser) FromDomainUser(du user.User, pictureURL PictureURL) {
	u.ID = int64(du.ID)
	u.Username = string(du.Username)
	u.PictureURL = pictureURL(du.Picture())
}
