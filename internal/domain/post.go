package domain

import "time"

// Post types carried by the platform.
const (
	PostTypeArticle = "article"
	PostTypeRecipe  = "recipe"
	PostTypeProduct = "product"
	PostTypeMedia   = "media"
	PostTypeMenu    = "menu"
)

// Post is a versioned content item (article, recipe, product, ...).
// WorkflowStatus mirrors the status of the active/draft version for
// cheap list filtering; the versions table is the source of truth.
type Post struct {
	ID             uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostType       string     `gorm:"column:post_type;type:varchar(30);index;default:article" json:"post_type"`
	Title          string     `gorm:"column:title;type:varchar(255)" json:"title"`
	Summary        string     `gorm:"column:summary;type:text" json:"summary"`
	Content        string     `gorm:"column:content;type:mediumtext" json:"content"`
	SEOTitle       string     `gorm:"column:seo_title;type:varchar(255)" json:"seo_title"`
	SEODescription string     `gorm:"column:seo_description;type:text" json:"seo_description"`
	Status         string     `gorm:"column:status;type:varchar(20);index;default:draft" json:"status"`
	WorkflowStatus Status     `gorm:"column:workflow_status;type:varchar(20);index;default:draft" json:"workflow_status"`
	AuthorID       string     `gorm:"column:author_id;type:varchar(50);index" json:"author_id"`
	ActiveVersionID *uint64   `gorm:"column:active_version_id" json:"active_version_id,omitempty"`
	DraftVersionID  *uint64   `gorm:"column:draft_version_id" json:"draft_version_id,omitempty"`
	PublishedAt    *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Categories []Category `gorm:"many2many:post_categories" json:"categories,omitempty"`
	Tags       []Tag      `gorm:"many2many:post_tags" json:"tags,omitempty"`
}

func (Post) TableName() string { return "posts" }

// Post statuses (distinct from workflow statuses; a post is either live
// or not).
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// VersionableFields lists the snapshot keys a post accepts. Snapshot
// keys outside this list (plus category_ids/tag_ids) are ignored on
// apply.
func (p *Post) VersionableFields() []string {
	return []string{"title", "summary", "content", "seo_title", "seo_description"}
}

// BuildSnapshot captures the post's current versionable field values
// plus its taxonomy id lists.
func (p *Post) BuildSnapshot() Snapshot {
	catIDs := make([]uint64, len(p.Categories))
	for i, c := range p.Categories {
		catIDs[i] = c.ID
	}
	tagIDs := make([]uint64, len(p.Tags))
	for i, t := range p.Tags {
		tagIDs[i] = t.ID
	}
	return Snapshot{
		"title":           p.Title,
		"summary":         p.Summary,
		"content":         p.Content,
		"seo_title":       p.SEOTitle,
		"seo_description": p.SEODescription,
		"category_ids":    catIDs,
		"tag_ids":         tagIDs,
	}
}

// ApplySnapshot copies known versionable fields from the snapshot onto
// the post. Unknown keys are ignored; taxonomy id lists are handled by
// the caller since they touch join tables.
func (p *Post) ApplySnapshot(s Snapshot) {
	if v, ok := s.GetString("title"); ok {
		p.Title = v
	}
	if v, ok := s.GetString("summary"); ok {
		p.Summary = v
	}
	if v, ok := s.GetString("content"); ok {
		p.Content = v
	}
	if v, ok := s.GetString("seo_title"); ok {
		p.SEOTitle = v
	}
	if v, ok := s.GetString("seo_description"); ok {
		p.SEODescription = v
	}
}

// PostResponse is the API shape of a post.
type PostResponse struct {
	ID              uint64     `json:"id"`
	PostType        string     `json:"post_type"`
	Title           string     `json:"title"`
	Summary         string     `json:"summary"`
	Content         string     `json:"content"`
	SEOTitle        string     `json:"seo_title,omitempty"`
	SEODescription  string     `json:"seo_description,omitempty"`
	Status          string     `json:"status"`
	WorkflowStatus  Status     `json:"workflow_status"`
	AuthorID        string     `json:"author_id"`
	ActiveVersionID *uint64    `json:"active_version_id,omitempty"`
	DraftVersionID  *uint64    `json:"draft_version_id,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	Categories      []Category `json:"categories"`
	Tags            []Tag      `json:"tags"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToResponse converts a post to its API shape.
func (p *Post) ToResponse() *PostResponse {
	return &PostResponse{
		ID:              p.ID,
		PostType:        p.PostType,
		Title:           p.Title,
		Summary:         p.Summary,
		Content:         p.Content,
		SEOTitle:        p.SEOTitle,
		SEODescription:  p.SEODescription,
		Status:          p.Status,
		WorkflowStatus:  p.WorkflowStatus,
		AuthorID:        p.AuthorID,
		ActiveVersionID: p.ActiveVersionID,
		DraftVersionID:  p.DraftVersionID,
		PublishedAt:     p.PublishedAt,
		Categories:      p.Categories,
		Tags:            p.Tags,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// CreatePostRequest create post payload
type CreatePostRequest struct {
	PostType       string   `json:"post_type"`
	Title          string   `json:"title" binding:"required"`
	Summary        string   `json:"summary"`
	Content        string   `json:"content"`
	SEOTitle       string   `json:"seo_title"`
	SEODescription string   `json:"seo_description"`
	CategoryIDs    []uint64 `json:"category_ids"`
	TagIDs         []uint64 `json:"tag_ids"`
}

// UpdatePostRequest update post payload (partial)
type UpdatePostRequest struct {
	Title          *string   `json:"title"`
	Summary        *string   `json:"summary"`
	Content        *string   `json:"content"`
	SEOTitle       *string   `json:"seo_title"`
	SEODescription *string   `json:"seo_description"`
	CategoryIDs    *[]uint64 `json:"category_ids"`
	TagIDs         *[]uint64 `json:"tag_ids"`
}
