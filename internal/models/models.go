package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
)

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID          string         `json:"postId" db:"post_id"`
	Slug            string         `json:"slug" db:"slug"`
	Title           string         `json:"title" db:"title"`
	Body            string         `json:"body" db:"body"`
	Author          string         `json:"author" db:"author"`
	Sports          pq.StringArray `json:"sports" db:"sports"`
	Leagues         pq.StringArray `json:"leagues" db:"leagues"`
	HeaderImage     string         `json:"headerImage" db:"header_image"`
	ImageAlt        string         `json:"imageAlt" db:"image_alt"`
	IsFeatured      bool           `json:"isFeatured" db:"is_featured"`
	MetaTitle       string         `json:"metaTitle" db:"meta_title"`
	MetaDescription string         `json:"metaDescription" db:"meta_description"`
	Keywords        pq.StringArray `json:"keywords" db:"keywords"`
	OgTitle         string         `json:"ogTitle" db:"og_title"`
	OgDescription   string         `json:"ogDescription" db:"og_description"`
	OgImage         string         `json:"ogImage" db:"og_image"`
	ReadTime        int            `json:"readTime" db:"read_time"`
	LikeCount       int            `json:"likeCount" db:"like_count"`
	DislikeCount    int            `json:"dislikeCount" db:"dislike_count"`
	LikedBy         pq.StringArray `json:"-" db:"liked_by"`
	DislikedBy      pq.StringArray `json:"-" db:"disliked_by"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
}

// Reactions is the counter pair returned after a like or dislike.
type Reactions struct {
	LikeCount    int `json:"likeCount" db:"like_count"`
	DislikeCount int `json:"dislikeCount" db:"dislike_count"`
}

type Comment struct {
	CommentID     string    `json:"commentId" db:"comment_id"`
	PostID        string    `json:"postId" db:"post_id"`
	AuthorID      string    `json:"authorId" db:"author_id"`
	Author        string    `json:"author" db:"author"`
	Body          string    `json:"-" db:"body"`
	SanitizedBody string    `json:"body" db:"sanitized_body"`
	LikeCount     int       `json:"likeCount" db:"like_count"`
	DislikeCount  int       `json:"dislikeCount" db:"dislike_count"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

type Image struct {
	ImageID     string    `json:"imageId" db:"image_id"`
	PostID      string    `json:"postId" db:"post_id"`
	ObjectName  string    `json:"-" db:"object_name"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	ContentType string    `json:"contentType" db:"content_type"`
	Size        int64     `json:"size" db:"size"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type ContactMessage struct {
	MessageID string    `json:"messageId" db:"message_id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
