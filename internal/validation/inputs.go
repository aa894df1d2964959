package validation

// LoginInput is the login request body. Its values are not validated here:
// a malformed email or blank password is just a credential that does not match.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PostInput is the create-post payload.
type PostInput struct {
	Title      string `json:"title" validate:"required,min=3"`
	Content    string `json:"content" validate:"required,min=1"`
	IsFeatured Bool   `json:"isFeatured"`
	Tags       Tags   `json:"tags"`
}

// PostPatch is a partial post. Absent fields are nil and left untouched.
type PostPatch struct {
	Title      *string `json:"title" validate:"omitnil,min=3"`
	Content    *string `json:"content" validate:"omitnil,min=1"`
	IsFeatured *Bool   `json:"isFeatured"`
	Tags       *Tags   `json:"tags"`
}

// ProjectInput is the create-project payload.
type ProjectInput struct {
	Title      string  `json:"title" validate:"required,min=3"`
	Content    string  `json:"content" validate:"required,min=1"`
	IsFeatured Bool    `json:"isFeatured"`
	Tags       Tags    `json:"tags"`
	LiveURL    *string `json:"liveUrl" validate:"omitnil,url"`
	RepoURL    *string `json:"repoUrl" validate:"omitnil,url"`
}

// ProjectPatch is a partial project.
type ProjectPatch struct {
	Title      *string `json:"title" validate:"omitnil,min=3"`
	Content    *string `json:"content" validate:"omitnil,min=1"`
	IsFeatured *Bool   `json:"isFeatured"`
	Tags       *Tags   `json:"tags"`
	LiveURL    *string `json:"liveUrl" validate:"omitnil,url"`
	RepoURL    *string `json:"repoUrl" validate:"omitnil,url"`
}
